// internal/wire/wire.go
package wire

import (
	"net/http"

	"travelo-booking/internal/adaptor"
	"travelo-booking/internal/data/repository"
	"travelo-booking/internal/notifier"
	"travelo-booking/internal/provider"
	"travelo-booking/internal/usecase"
	"travelo-booking/pkg/middleware"
	"travelo-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes services, handlers and routes.
func Wiring(
	repo *repository.Repository,
	providers *provider.Registry,
	notify notifier.Notifier,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, providers, notify, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAvailability(r, handler.Availability, config, logger)
	wireCheckout(r, handler.Checkout, config, logger)
	wirePayment(r, handler.Payment, config, logger)
	wireBooking(r, handler.Booking, config, logger)
	wireVoucher(r, handler.Voucher, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
