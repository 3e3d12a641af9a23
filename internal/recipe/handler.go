package recipe

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/PoFerry/atelierculinairepof/internal/costing"
	"github.com/PoFerry/atelierculinairepof/internal/units"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type lineRequest struct {
	IngredientID int             `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

type recipeRequest struct {
	Name         string        `json:"name"`
	Category     string        `json:"category"`
	Servings     int           `json:"servings"`
	Instructions string        `json:"instructions"`
	Lines        []lineRequest `json:"lines"`
}

func (req recipeRequest) input() Input {
	in := Input{
		Name:         req.Name,
		Category:     req.Category,
		Servings:     req.Servings,
		Instructions: req.Instructions,
	}
	for _, l := range req.Lines {
		in.Lines = append(in.Lines, LineInput{
			IngredientID: l.IngredientID,
			Quantity:     l.Quantity,
			Unit:         l.Unit,
		})
	}
	return in
}

func (h *Handler) Create(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	rec, err := h.service.Create(c.Request.Context(), req.input())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	rec, err := h.service.Update(c.Request.Context(), id, req.input())
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	rec, err := h.service.Get(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *Handler) List(c *gin.Context) {
	recipes, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	err = h.service.Delete(c.Request.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrReferenced):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "recipe deleted"})
	}
}

// Cost returns the computed total and per-portion cost for a recipe.
func (h *Handler) Cost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	rc, err := h.service.Cost(c.Request.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, units.ErrIncompatibleUnits),
		errors.Is(err, costing.ErrInvalidPortionCount),
		errors.Is(err, costing.ErrInvalidPurchaseFormat),
		errors.Is(err, costing.ErrDanglingReference):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe_id":   rc.RecipeID,
		"total_cost":  rc.Total,
		"per_portion": rc.PerPortion,
		"lines":       rc.Lines,
	})
}
