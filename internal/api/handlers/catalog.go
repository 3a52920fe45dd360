package handlers

import (
	"net/http"

	"menusync/internal/cache"
	"menusync/internal/models"
	"menusync/internal/registry"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CatalogHandler serves read-only views over the product cache.
type CatalogHandler struct {
	cache    *cache.Cache
	registry *registry.Registry
	log      *logrus.Logger
}

func NewCatalogHandler(c *cache.Cache, r *registry.Registry, log *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{cache: c, registry: r, log: log}
}

func (h *CatalogHandler) List(c *gin.Context) {
	products := h.cache.GetAll()
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

func (h *CatalogHandler) ByProvider(c *gin.Context) {
	providerID := c.Param("id")
	if _, err := h.registry.Get(providerID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	products := h.cache.GetByProvider(providerID)
	c.JSON(http.StatusOK, gin.H{
		"provider": providerID,
		"products": products,
		"count":    len(products),
	})
}

func (h *CatalogHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"providers": h.cache.Status()})
}

func (h *CatalogHandler) Stats(c *gin.Context) {
	statuses := h.cache.Status()
	perProvider := make(map[string]int, len(statuses))
	active := 0
	for _, s := range statuses {
		perProvider[s.ProviderID] = s.ProductCount
		if s.Active {
			active++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_products":   h.cache.Size(),
		"total_providers":  len(statuses),
		"active_providers": active,
		"cache_sizes":      perProvider,
	})
}

// formatProduct is used by handlers that return presentation-ready prices.
func formatProduct(p models.Product) gin.H {
	return gin.H{
		"product":         p,
		"formatted_price": models.FormatPrice(p.Price, p.Currency),
	}
}
