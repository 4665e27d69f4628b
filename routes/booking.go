package routes

import (
	"github.com/gin-gonic/gin"

	"rently/handlers"
)

// RegisterBookingRoutes registers all endpoints for the booking wizard.
func RegisterBookingRoutes(api *gin.RouterGroup, h *handlers.BookingHandler) {
	booking := api.Group("/booking")
	{
		booking.POST("/session", h.StartSession)                           // start a draft
		booking.GET("/session/:sessionID", h.GetDraft)                     // read accumulated state
		booking.PUT("/session/:sessionID/step/:stepKey", h.UpdateStep)     // merge a partial step
		booking.GET("/session/:sessionID/quote", h.GetQuote)               // live price breakdown
		booking.POST("/session/:sessionID/confirm", h.Confirm)             // submit + payment handoff
		booking.DELETE("/session/:sessionID", h.Cancel)                    // discard the draft
	}
}
