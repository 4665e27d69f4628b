package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rently/models"
	"rently/services/catalog"
)

// FavoritesHandler manages a user's saved vehicles.
type FavoritesHandler struct {
	Store   *catalog.FavoritesStore
	Catalog catalog.Service
	Logger  *zap.Logger
}

func NewFavoritesHandler(store *catalog.FavoritesStore, catalogSvc catalog.Service, logger *zap.Logger) *FavoritesHandler {
	return &FavoritesHandler{Store: store, Catalog: catalogSvc, Logger: logger}
}

func currentUserID(c *gin.Context) (string, bool) {
	val, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}

// List returns the user's favorite vehicles, hydrated from the catalog.
// Entries no longer in the catalog are skipped.
func (h *FavoritesHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}

	ids, err := h.Store.List(c.Request.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to list favorites", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load favorites"})
		return
	}

	vehicles := make([]models.Vehicle, 0, len(ids))
	for _, id := range ids {
		vehicle, err := h.Catalog.GetVehicle(c.Request.Context(), id)
		if err != nil {
			continue
		}
		vehicles = append(vehicles, *vehicle)
	}
	c.JSON(http.StatusOK, gin.H{"favorites": vehicles})
}

// Add marks a vehicle as a favorite.
func (h *FavoritesHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}
	vehicleID := c.Param("id")
	if _, err := h.Catalog.GetVehicle(c.Request.Context(), vehicleID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
		return
	}
	if err := h.Store.Add(c.Request.Context(), userID, vehicleID); err != nil {
		h.Logger.Error("failed to add favorite", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "added"})
}

// Remove unmarks a vehicle.
func (h *FavoritesHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}
	if err := h.Store.Remove(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.Logger.Error("failed to remove favorite", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
