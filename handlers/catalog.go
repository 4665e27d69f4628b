package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rently/models"
	"rently/services/catalog"
)

// CatalogHandler serves the vehicle, plan and add-on catalogs.
type CatalogHandler struct {
	Service catalog.Service
	Logger  *zap.Logger
}

func NewCatalogHandler(service catalog.Service, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Service: service, Logger: logger}
}

// ListVehicles searches the catalog with query-string filters.
func (h *CatalogHandler) ListVehicles(c *gin.Context) {
	var filter models.VehicleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter", "details": err.Error()})
		return
	}

	vehicles, err := h.Service.ListVehicles(c.Request.Context(), filter)
	if err != nil {
		h.Logger.Error("vehicle search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search vehicles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles, "count": len(vehicles)})
}

// GetVehicle fetches one catalog entry.
func (h *CatalogHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.Service.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// GetProtectionPlans returns the coverage tiers.
func (h *CatalogHandler) GetProtectionPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": h.Service.ProtectionPlans()})
}

// GetAddOns returns the add-on catalog.
func (h *CatalogHandler) GetAddOns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"addons": h.Service.AddOns(c.Request.Context())})
}
