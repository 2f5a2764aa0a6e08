package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/optcg-tools/catalog/backend/internal/catalog"
)

type CatalogHandler struct {
	service *catalog.Service
}

func NewCatalogHandler(service *catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// GetSets returns every set as a JSON array. An empty database yields [].
func (h *CatalogHandler) GetSets(c *gin.Context) {
	sets, err := h.service.ListSets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sets)
}

// GetCards returns every card as a JSON array. An empty database yields [].
func (h *CatalogHandler) GetCards(c *gin.Context) {
	cards, err := h.service.ListCards()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cards)
}

// GetCard returns a single card by its card code.
func (h *CatalogHandler) GetCard(c *gin.Context) {
	card, err := h.service.GetCard(c.Param("id"))
	if errors.Is(err, catalog.ErrCardNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, card)
}
