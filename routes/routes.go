package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	userRepo "rently/database/repository/user"
	"rently/handlers"
	"rently/middleware"
)

// HandlerBundle groups everything route registration needs.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	Booking   *handlers.BookingHandler
	Catalog   *handlers.CatalogHandler
	Favorites *handlers.FavoritesHandler
	Auth      *handlers.AuthHandler
}

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, h *HandlerBundle) {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	api := r.Group("/api")

	// Public catalog.
	catalogGroup := api.Group("/catalog")
	{
		catalogGroup.GET("/vehicles", h.Catalog.ListVehicles)
		catalogGroup.GET("/vehicles/:id", h.Catalog.GetVehicle)
		catalogGroup.GET("/plans", h.Catalog.GetProtectionPlans)
		catalogGroup.GET("/addons", h.Catalog.GetAddOns)
	}

	// Accounts.
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", h.Auth.SignUp)
		authGroup.POST("/signin", h.Auth.SignIn)
		authGroup.POST("/signout", middleware.JWTAuthMiddleware(h.UserRepo), h.Auth.SignOut)
	}

	// Favorites require a signed-in user.
	favGroup := api.Group("/favorites", middleware.JWTAuthMiddleware(h.UserRepo))
	{
		favGroup.GET("", h.Favorites.List)
		favGroup.POST("/:id", h.Favorites.Add)
		favGroup.DELETE("/:id", h.Favorites.Remove)
	}

	RegisterBookingRoutes(api, h.Booking)
}
