package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	_ "github.com/mwalczyk/sleep-sentinel/docs"
	"github.com/mwalczyk/sleep-sentinel/internal/api/handler"
	"github.com/mwalczyk/sleep-sentinel/internal/api/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	nightHandler    *handler.NightHandler
	syncHandler     *handler.SyncHandler
	summaryHandler  *handler.SummaryHandler
	settingsHandler *handler.SettingsHandler
	exportHandler   *handler.ExportHandler
	insightsHandler *handler.InsightsHandler
	motionHandler   *handler.MotionHandler
}

func NewRouter(
	nightHandler *handler.NightHandler,
	syncHandler *handler.SyncHandler,
	summaryHandler *handler.SummaryHandler,
	settingsHandler *handler.SettingsHandler,
	exportHandler *handler.ExportHandler,
	insightsHandler *handler.InsightsHandler,
	motionHandler *handler.MotionHandler,
) *Router {
	return &Router{
		nightHandler:    nightHandler,
		syncHandler:     syncHandler,
		summaryHandler:  summaryHandler,
		settingsHandler: settingsHandler,
		exportHandler:   exportHandler,
		insightsHandler: insightsHandler,
		motionHandler:   motionHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Get("/nights", rt.nightHandler.List)
		r.Post("/samples", rt.nightHandler.Ingest)
		r.Post("/activities", rt.motionHandler.Ingest)

		r.Post("/sync", rt.syncHandler.Trigger)
		r.Post("/reset", rt.syncHandler.Reset)

		r.Get("/summary", rt.summaryHandler.Get)
		r.Get("/recommendations", rt.summaryHandler.Recommendations)

		r.Get("/settings", rt.settingsHandler.Get)
		r.Put("/settings", rt.settingsHandler.Update)

		r.Route("/export", func(r chi.Router) {
			r.Get("/nights.csv", rt.exportHandler.Nights)
			r.Get("/weekly.csv", rt.exportHandler.Weekly)
		})

		r.Get("/insights", rt.insightsHandler.Get)
	})

	return r
}
