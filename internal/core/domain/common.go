package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// LabelProvider resolves a taxonomy element name to its standard label.
// Implementations are read-only lookups initialised once per process.
type LabelProvider interface {
	StandardLabel(elementName string) (string, bool)
}
