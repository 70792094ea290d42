// Package handler implements the HTTP handlers for the Itinera API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, plan.go, exchange.go) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sejin-oh/itinera/internal/domain"
	"github.com/sejin-oh/itinera/internal/planner"
	"github.com/sejin-oh/itinera/internal/service"
	"github.com/sejin-oh/itinera/internal/stats"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or routing service.
type TripServicer interface {
	Create(ctx context.Context, name, startDate string) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Edit(ctx context.Context, id uuid.UUID, cmd planner.Command) (domain.Trip, error)
	Recalculate(ctx context.Context, id uuid.UUID) (domain.Trip, bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlanServicer defines the derived-view operations the plan handlers depend on.
type PlanServicer interface {
	PlanDay(ctx context.Context, tripID, dayID uuid.UUID) (service.DayPlan, error)
	Totals(ctx context.Context, tripID uuid.UUID) (stats.TripTotals, error)
}

// ExchangeServicer defines the import/export operations the exchange handlers
// depend on.
type ExchangeServicer interface {
	Export(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Import(ctx context.Context, doc domain.Trip) (domain.Trip, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	trips    TripServicer
	plans    PlanServicer
	exchange ExchangeServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, plans PlanServicer, exchange ExchangeServicer) *Server {
	return &Server{trips: trips, plans: plans, exchange: exchange}
}

// Routes mounts every endpoint on a fresh chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/import", s.ImportTrip)

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)

			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Delete("/", s.DeleteTrip)
				r.Put("/name", s.RenameTrip)
				r.Put("/start-date", s.SetStartDate)
				r.Put("/cover", s.SetCover)
				r.Get("/totals", s.TripTotals)
				r.Post("/recalculate", s.RecalculateTrip)
				r.Get("/export", s.ExportTrip)

				r.Post("/days", s.AddDay)
				r.Route("/days/{dayID}", func(r chi.Router) {
					r.Delete("/", s.RemoveDay)
					r.Get("/plan", s.PlanDay)
					r.Post("/stops", s.AddStop)
					r.Put("/stops/order", s.ReorderStops)
					r.Patch("/stops/{stopID}", s.UpdateStop)
					r.Delete("/stops/{stopID}", s.RemoveStop)
					r.Put("/segments/{gap}/mode", s.SetSegmentMode)
				})
			})
		})
	})

	return r
}

// Health implements GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
