package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/ijalalfrz/skyswap-booking-client/internal/app/config"
	"github.com/ijalalfrz/skyswap-booking-client/internal/app/dto"
	"github.com/ijalalfrz/skyswap-booking-client/internal/app/endpoints"
	httptransport "github.com/ijalalfrz/skyswap-booking-client/internal/pkg/transport/http"
)

// MakeHTTPRouter builds the HTTP router of the session view.
func MakeHTTPRouter(
	cfg *config.Config,
	endpts endpoints.Endpoints,
) *chi.Mux {
	// Initialize Router
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	session := endpts.SessionEndpoint

	router.Route("/api/v1/session", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.AccessLog(slog.Default()),
			httptransport.CORSMiddleware(cfg.HTTP.AllowedOrigins),
			httptransport.Recoverer(slog.Default()),
			render.SetContentType(render.ContentTypeJSON),
		)

		router.Get("/", httptransport.MakeHandlerFunc(
			session.Snapshot,
			httptransport.DecodeEmpty,
			httptransport.ResponseWithBody,
		))

		router.Post("/navigate", httptransport.MakeHandlerFunc(
			session.Navigate,
			httptransport.DecodeRequest[dto.NavigateRequest],
			httptransport.ResponseWithBody,
		))

		router.Post("/catalog/reload", httptransport.MakeHandlerFunc(
			session.ReloadCatalog,
			httptransport.DecodeEmpty,
			httptransport.ResponseWithBody,
		))

		router.Post("/search", httptransport.MakeHandlerFunc(
			session.Search,
			httptransport.DecodeRequest[dto.Query],
			httptransport.ResponseWithBody,
		))

		router.Post("/bookings", httptransport.MakeHandlerFunc(
			session.StartBooking,
			httptransport.DecodeRequest[dto.StartBookingRequest],
			httptransport.CreatedResponse,
		))

		router.Post("/passengers", httptransport.MakeHandlerFunc(
			session.AddPassenger,
			httptransport.DecodeEmpty,
			httptransport.CreatedResponse,
		))

		router.Put("/passengers/{index}", httptransport.MakeHandlerFunc(
			session.UpdatePassenger,
			decodeUpdatePassengerRequest,
			httptransport.ResponseWithBody,
		))

		router.Post("/payment/continue", httptransport.MakeHandlerFunc(
			session.ContinueToPayment,
			httptransport.DecodeEmpty,
			httptransport.ResponseWithBody,
		))

		router.Post("/payment", httptransport.MakeHandlerFunc(
			session.SubmitPayment,
			httptransport.DecodeRequest[dto.PaymentData],
			httptransport.ResponseWithBody,
		))

		router.Post("/book-another", httptransport.MakeHandlerFunc(
			session.BookAnother,
			httptransport.DecodeEmpty,
			httptransport.ResponseWithBody,
		))

		router.Get("/receipt", httptransport.MakeHandlerFunc(
			session.Receipt,
			httptransport.DecodeEmpty,
			httptransport.ReceiptResponse,
		))

		router.Post("/receipt/export", httptransport.MakeHandlerFunc(
			session.ExportReceipt,
			httptransport.DecodeEmpty,
			httptransport.CreatedResponse,
		))
	})

	return router
}
