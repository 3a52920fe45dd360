package handlers

import (
	"net/http"
	"strconv"

	"menusync/internal/menu"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MenuHandler serves the generated menu and search over it.
type MenuHandler struct {
	menu *menu.Service
	log  *logrus.Logger
}

func NewMenuHandler(m *menu.Service, log *logrus.Logger) *MenuHandler {
	return &MenuHandler{menu: m, log: log}
}

func (h *MenuHandler) Current(c *gin.Context) {
	structure, err := h.menu.Current()
	if err != nil {
		h.log.WithError(err).Error("failed to get current menu")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, structure)
}

func (h *MenuHandler) ByCategory(c *gin.Context) {
	bucket, err := h.menu.ByCategory(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bucket)
}

func (h *MenuHandler) Featured(c *gin.Context) {
	products, err := h.menu.Featured()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]gin.H, 0, len(products))
	for _, p := range products {
		items = append(items, formatProduct(p))
	}
	c.JSON(http.StatusOK, gin.H{"featured": items, "count": len(items)})
}

func (h *MenuHandler) Categories(c *gin.Context) {
	categories, err := h.menu.Categories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *MenuHandler) Stats(c *gin.Context) {
	stats, err := h.menu.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *MenuHandler) Regenerate(c *gin.Context) {
	structure, err := h.menu.Generate()
	if err != nil {
		h.log.WithError(err).Error("menu regeneration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"version":      structure.Version,
		"generated_at": structure.GeneratedAt,
		"stats":        structure.Stats,
	})
}

func (h *MenuHandler) Search(c *gin.Context) {
	filters := menu.Filters{
		Category:      c.Query("category"),
		Provider:      c.Query("provider"),
		AvailableOnly: c.Query("available") == "true",
	}
	if raw := c.Query("max_price"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price"})
			return
		}
		filters.MaxPrice = &maxPrice
	}

	results, err := h.menu.Search(c.Query("q"), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}
