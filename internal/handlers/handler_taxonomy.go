package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/holdco_books/internal/dto"
	"github.com/SscSPs/holdco_books/internal/middleware"
	"github.com/SscSPs/holdco_books/internal/taxonomy"
)

// ElementLookup resolves taxonomy elements by name.
type ElementLookup interface {
	Lookup(name string) (taxonomy.Element, bool)
	Names() []string
}

type taxonomyHandler struct {
	elements ElementLookup
}

// RegisterTaxonomyRoutes registers the read-only taxonomy lookups.
func RegisterTaxonomyRoutes(rg *gin.RouterGroup, elements ElementLookup) {
	h := &taxonomyHandler{elements: elements}

	tax := rg.Group("/taxonomy/elements")
	{
		tax.GET("", h.listElements)
		tax.GET("/:name", h.getElement)
	}
}

// listElements godoc
// @Summary List known taxonomy element names
// @Tags taxonomy
// @Produce json
// @Success 200 {array} string
// @Security BearerAuth
// @Router /taxonomy/elements [get]
func (h *taxonomyHandler) listElements(c *gin.Context) {
	c.JSON(http.StatusOK, h.elements.Names())
}

// getElement godoc
// @Summary Look up a taxonomy element
// @Tags taxonomy
// @Produce json
// @Param name path string true "Element name, e.g. Cash"
// @Success 200 {object} dto.TaxonomyElementResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /taxonomy/elements/{name} [get]
func (h *taxonomyHandler) getElement(c *gin.Context) {
	name := c.Param("name")
	el, ok := h.elements.Lookup(name)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Unknown taxonomy element", slog.String("name", name))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "taxonomy element " + name + " not found"})
		return
	}
	c.JSON(http.StatusOK, dto.TaxonomyElementResponse{
		Name:          el.Name,
		StandardLabel: el.StandardLabel,
		Balance:       el.Balance,
		PeriodType:    el.PeriodType,
	})
}
