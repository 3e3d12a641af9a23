package ingredient

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type ingredientRequest struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	SupplierID    *int            `json:"supplier_id"`
	SupplierCode  string          `json:"supplier_code"`
	PackSize      decimal.Decimal `json:"pack_size"`
	PackUnit      string          `json:"pack_unit"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	BaseUnit      string          `json:"base_unit"`
}

func (req ingredientRequest) input() Input {
	return Input{
		Name:          req.Name,
		Category:      req.Category,
		SupplierID:    req.SupplierID,
		SupplierCode:  req.SupplierCode,
		PackSize:      req.PackSize,
		PackUnit:      req.PackUnit,
		PurchasePrice: req.PurchasePrice,
		BaseUnit:      req.BaseUnit,
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ing, err := h.service.Create(c.Request.Context(), req.input())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ing)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ing, err := h.service.Update(c.Request.Context(), id, req.input())
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ing)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	ing, err := h.service.Get(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ing)
}

func (h *Handler) List(c *gin.Context) {
	ingredients, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
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
		c.JSON(http.StatusOK, gin.H{"message": "ingredient deleted"})
	}
}
