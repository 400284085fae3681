package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/turfgrid/turf-booking-backend/internal/api"
	"github.com/turfgrid/turf-booking-backend/internal/auth"
	"github.com/turfgrid/turf-booking-backend/internal/booking"
	"github.com/turfgrid/turf-booking-backend/internal/conversation"
	"github.com/turfgrid/turf-booking-backend/internal/ledger"
	"github.com/turfgrid/turf-booking-backend/internal/payment"
	"github.com/turfgrid/turf-booking-backend/internal/slot"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Logger       *zap.Logger
	JWTSecret    string
	JWTTTL       time.Duration

	RazorpayKeyID     string
	RazorpayKeySecret string
	Currency          string

	Policy booking.Policy
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Slot Module (availability guard)
	slotRepo := slot.NewPgxRepository(cfg.DBPool)
	guard := slot.NewGuard(slotRepo)

	// Payment Module
	paymentRepo := payment.NewPgxRepository(cfg.DBPool)

	// The gateway is injected once here; a missing configuration means a nil
	// gateway and the degraded behavior documented on the booking service.
	var gateway payment.Gateway
	if g := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret); g != nil {
		gateway = g
	}

	// Ledger Module
	ledgerRepo := ledger.NewPgxRepository(cfg.DBPool)
	ledgerService := ledger.NewService(ledgerRepo, cfg.Logger)

	// Booking Module (orchestrator)
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(
		guard,
		bookingRepo,
		paymentRepo,
		gateway,
		ledgerService,
		cfg.Policy,
		cfg.Currency,
		cfg.Logger,
	)

	// Conversation Gate
	conversationService := conversation.NewService(bookingService)

	// API Router Config
	routerParams := api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		BookingService:      bookingService,
		ConversationService: conversationService,
		LedgerService:       ledgerService,
		JWTManager:          jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
