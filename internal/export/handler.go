package export

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PoFerry/atelierculinairepof/internal/costing"
	"github.com/PoFerry/atelierculinairepof/internal/menu"
	"github.com/PoFerry/atelierculinairepof/internal/recipe"
	"github.com/PoFerry/atelierculinairepof/internal/units"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func writeCSV(c *gin.Context, data []byte, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "text/csv", data)
}

func exportStatus(err error) int {
	switch {
	case errors.Is(err, menu.ErrNotFound), errors.Is(err, recipe.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, costing.ErrDanglingReference),
		errors.Is(err, costing.ErrInvalidBatchCount),
		errors.Is(err, costing.ErrInvalidPortionCount),
		errors.Is(err, costing.ErrInvalidPurchaseFormat),
		errors.Is(err, units.ErrIncompatibleUnits):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ShoppingListCSV streams the aggregated shopping list as a download.
func (h *Handler) ShoppingListCSV(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu id"})
		return
	}

	data, filename, err := h.service.ShoppingList(c.Request.Context(), id)
	if err != nil {
		c.JSON(exportStatus(err), gin.H{"error": err.Error()})
		return
	}

	writeCSV(c, data, filename)
}

// RecipeCardCSV streams the recipe card as a download.
func (h *Handler) RecipeCardCSV(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	data, filename, err := h.service.RecipeCard(c.Request.Context(), id)
	if err != nil {
		c.JSON(exportStatus(err), gin.H{"error": err.Error()})
		return
	}

	writeCSV(c, data, filename)
}

// PublishShoppingList uploads the shopping list CSV to object storage.
func (h *Handler) PublishShoppingList(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu id"})
		return
	}

	url, err := h.service.PublishShoppingList(c.Request.Context(), id)
	if errors.Is(err, ErrNoStorage) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(exportStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
