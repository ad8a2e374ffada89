// Package taxonomy is a read-only index of US GAAP XBRL elements used to label journal lines.
package taxonomy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

//go:embed elements.json
var elementsJSON []byte

// Element is one taxonomy concept.
type Element struct {
	Name          string `json:"name"`
	StandardLabel string `json:"standard_label"`
	Balance       string `json:"balance,omitempty"`
	PeriodType    string `json:"period_type,omitempty"`
}

// Index looks elements up by name. It is safe for concurrent use once built.
type Index struct {
	byName map[string]Element
}

// NewIndex builds an index from a JSON array of elements.
func NewIndex(data []byte) (*Index, error) {
	var elements []Element
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("decoding taxonomy elements: %w", err)
	}
	idx := &Index{byName: make(map[string]Element, len(elements))}
	for i, el := range elements {
		if el.Name == "" || el.StandardLabel == "" {
			return nil, fmt.Errorf("taxonomy element %d needs a name and a standard label", i)
		}
		if _, dup := idx.byName[el.Name]; dup {
			return nil, fmt.Errorf("taxonomy element %s defined twice", el.Name)
		}
		idx.byName[el.Name] = el
	}
	return idx, nil
}

// Lookup returns the element with the given name.
func (i *Index) Lookup(name string) (Element, bool) {
	el, ok := i.byName[name]
	return el, ok
}

// StandardLabel returns the standard label of the named element.
func (i *Index) StandardLabel(name string) (string, bool) {
	el, ok := i.byName[name]
	if !ok {
		return "", false
	}
	return el.StandardLabel, true
}

// Names returns every element name in sorted order.
func (i *Index) Names() []string {
	names := make([]string, 0, len(i.byName))
	for n := range i.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var (
	defaultOnce  sync.Once
	defaultIndex *Index
	defaultErr   error
)

// Default returns the process-wide index built from the embedded element list.
// It is loaded on first use.
func Default() (*Index, error) {
	defaultOnce.Do(func() {
		defaultIndex, defaultErr = NewIndex(elementsJSON)
	})
	return defaultIndex, defaultErr
}
