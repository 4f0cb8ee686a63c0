package server

import (
	"github.com/gin-gonic/gin"

	"timehair/internal/config"
	"timehair/internal/database"
	"timehair/internal/middleware"
	"timehair/internal/modules/auth"
	"timehair/internal/modules/ledger"
	"timehair/internal/modules/maintenance"
	"timehair/internal/modules/member"
	"timehair/internal/modules/reservation"
	"timehair/internal/modules/seat"
	"timehair/internal/modules/staff"
	"timehair/internal/pkg/jwt"
	"timehair/internal/realtime"
)

// NewRouter wires every module onto one gin engine. The hub receives the
// seat lifecycle events and serves them on /api/ws/seats.
func NewRouter(cfg *config.Config, store *database.Store, tokens *jwt.Service, hub *realtime.Hub) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	authHandler := auth.NewHandler(auth.NewService(auth.NewStoreUsers(store), tokens))
	memberHandler := member.NewHandler(member.NewService(store))
	staffHandler := staff.NewHandler(staff.NewService(store))
	reservationHandler := reservation.NewHandler(reservation.NewService(store))
	ledgerHandler := ledger.NewHandler(ledger.NewService(store))
	maintenanceHandler := maintenance.NewHandler(maintenance.NewService(store))
	seatHandler := seat.NewHandler(seat.NewService(
		store,
		ledger.NewRecorder(),
		reservation.StatusSync{},
		member.Stamper{},
		hub,
	))
	boardHandler := realtime.NewHandler(hub, tokens)

	api := r.Group("/api")
	{
		// public
		authHandler.RegisterPublicRoutes(api)
		boardHandler.RegisterRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(tokens))
		{
			authHandler.RegisterProtectedRoutes(protected)
			memberHandler.RegisterRoutes(protected)
			staffHandler.RegisterRoutes(protected)
			seatHandler.RegisterRoutes(protected)
			reservationHandler.RegisterRoutes(protected)
			ledgerHandler.RegisterRoutes(protected)
			maintenanceHandler.RegisterRoutes(protected)
		}
	}

	return r
}
