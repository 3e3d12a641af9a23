package inventory

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/PoFerry/atelierculinairepof/internal/ingredient"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type movementRequest struct {
	IngredientID int             `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	Type         string          `json:"movement_type"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Note         string          `json:"note"`
}

func (h *Handler) AddMovement(c *gin.Context) {
	var req movementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	m, err := h.service.Add(c.Request.Context(), Input{
		IngredientID: req.IngredientID,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		Type:         req.Type,
		UnitCost:     req.UnitCost,
		Note:         req.Note,
	})
	if errors.Is(err, ingredient.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, m)
}

func (h *Handler) ListMovements(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))

	movements, err := h.service.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"movements": movements})
}

func (h *Handler) CurrentStock(c *gin.Context) {
	levels, err := h.service.CurrentStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": levels})
}
