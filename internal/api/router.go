package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/turfgrid/turf-booking-backend/internal/auth"
	"github.com/turfgrid/turf-booking-backend/internal/booking"
	bookingHttp "github.com/turfgrid/turf-booking-backend/internal/booking/http"
	"github.com/turfgrid/turf-booking-backend/internal/conversation"
	conversationHttp "github.com/turfgrid/turf-booking-backend/internal/conversation/http"
	"github.com/turfgrid/turf-booking-backend/internal/ledger"
	ledgerHttp "github.com/turfgrid/turf-booking-backend/internal/ledger/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction        bool
	ProdOrigins         string
	BookingService      booking.Service
	ConversationService conversation.Service
	LedgerService       ledger.Service
	JWTManager          *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: validates the JWT carrying the verified caller identity.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// ownerMiddleware: restricts facility-owner routes.
	ownerMiddleware := auth.RequireRole(auth.RoleOwner)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	conversationHandler := conversationHttp.NewHandler(cfg.ConversationService)
	ledgerHandler := ledgerHttp.NewHandler(cfg.LedgerService)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, ownerMiddleware)
		conversationHttp.RegisterRoutes(v1, conversationHandler, authMiddleware)
		ledgerHttp.RegisterRoutes(v1, ledgerHandler, authMiddleware, ownerMiddleware)
	}

	return r
}
