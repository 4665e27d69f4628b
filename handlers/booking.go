package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rently/services/booking"
	"rently/services/rentalapi"
)

// BookingHandler exposes the wizard over HTTP.
type BookingHandler struct {
	Service booking.WizardService
	Logger  *zap.Logger
}

func NewBookingHandler(service booking.WizardService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: service, Logger: logger}
}

// StartSession creates a new booking draft, optionally seeded with a car.
func (h *BookingHandler) StartSession(c *gin.Context) {
	var input struct {
		CarID string `json:"carId"`
	}
	// Body is optional; an empty session is valid.
	_ = c.ShouldBindJSON(&input)

	sessionID, draft, err := h.Service.StartSession(c.Request.Context(), input.CarID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionID": sessionID, "draft": draft})
}

// GetDraft returns the accumulated draft for a session.
func (h *BookingHandler) GetDraft(c *gin.Context) {
	sessionID := c.Param("sessionID")
	draft, err := h.Service.GetDraft(c.Request.Context(), sessionID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if draft == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionID": sessionID, "draft": draft})
}

// UpdateStep merges a partial step update into the draft.
func (h *BookingHandler) UpdateStep(c *gin.Context) {
	sessionID := c.Param("sessionID")
	stepKey := c.Param("stepKey")

	var partial map[string]any
	if err := c.ShouldBindJSON(&partial); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	draft, err := h.Service.UpdateStep(c.Request.Context(), sessionID, stepKey, partial)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionID": sessionID, "draft": draft})
}

// GetQuote derives the live price breakdown from the draft.
func (h *BookingHandler) GetQuote(c *gin.Context) {
	sessionID := c.Param("sessionID")
	quote, err := h.Service.Quote(c.Request.Context(), sessionID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionID": sessionID, "quote": quote})
}

// Confirm submits the booking upstream and hands off to payment.
func (h *BookingHandler) Confirm(c *gin.Context) {
	sessionID := c.Param("sessionID")
	conf, intent, err := h.Service.Confirm(c.Request.Context(), sessionID)
	if err != nil {
		// A payment failure after a successful submission still reports the
		// confirmation so the client can retry payment for that booking.
		if conf != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"booking": conf,
				"error":   "payment could not be initiated, please retry",
			})
			return
		}
		h.renderError(c, err)
		return
	}
	resp := gin.H{"booking": conf}
	if intent != nil {
		resp["payment"] = intent
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel discards the draft.
func (h *BookingHandler) Cancel(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.Service.Cancel(c.Request.Context(), sessionID); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// renderError maps service errors onto the taxonomy: field-scoped validation,
// auth redirect, wizard invariants, then generic failure.
func (h *BookingHandler) renderError(c *gin.Context, err error) {
	var validation *rentalapi.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation failed",
			"fields": validation.Fields,
		})
		return
	}

	var authErr *rentalapi.AuthRequiredError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    "authentication required",
			"redirect": authErr.Redirect,
		})
		return
	}

	var wizardErr *booking.WizardError
	if errors.As(err, &wizardErr) {
		status := http.StatusBadRequest
		switch wizardErr.Code {
		case "draftNotFound":
			status = http.StatusNotFound
		case "stepNotReachable", "incompleteDraft":
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": wizardErr.Message, "code": wizardErr.Code})
		return
	}

	var apiErr *rentalapi.APIError
	if errors.As(err, &apiErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Error()})
		return
	}

	h.Logger.Error("booking request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
}
