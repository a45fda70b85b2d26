// Sleep Sentinel API
//
// REST API that aggregates raw sleep samples into canonical nights with
// weekly analytics, coaching recommendations, CSV export and narrative
// insights.
//
//	@title			Sleep Sentinel API
//	@version		1.0
//	@description	Ingest raw sleep samples, reconcile them into one record per night, and analyze weekly patterns.
//
//	@BasePath	/v1
//
//	@tag.name			nights
//	@tag.description	Night collection and sample ingestion endpoints
//
//	@tag.name			sync
//	@tag.description	Delta sync and reset endpoints
//
//	@tag.name			analytics
//	@tag.description	Weekly summary and recommendation endpoints
//
//	@tag.name			settings
//	@tag.description	Target schedule and reminder settings
//
//	@tag.name			export
//	@tag.description	CSV export endpoints
//
//	@tag.name			insights
//	@tag.description	LLM narrative insights endpoints
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/mwalczyk/sleep-sentinel/internal/api"
	"github.com/mwalczyk/sleep-sentinel/internal/api/handler"
	"github.com/mwalczyk/sleep-sentinel/internal/config"
	"github.com/mwalczyk/sleep-sentinel/internal/llm"
	"github.com/mwalczyk/sleep-sentinel/internal/notify"
	"github.com/mwalczyk/sleep-sentinel/internal/seed"
	"github.com/mwalczyk/sleep-sentinel/internal/service"
	"github.com/mwalczyk/sleep-sentinel/internal/source"
	"github.com/mwalczyk/sleep-sentinel/internal/store"
	"github.com/mwalczyk/sleep-sentinel/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()

	// Initialize tracing (no-op without an OTLP endpoint)
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "sleep-sentinel")
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer shutdownTracer(ctx)

	// Select persistence driver
	var persistentStore store.PersistentStore
	switch cfg.StoreDriver {
	case "postgres":
		db, err := config.NewDatabase(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		persistentStore, err = store.NewGormStore(db)
		if err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Println("Using postgres persistence")
	default:
		persistentStore, err = store.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to open data directory: %v", err)
		}
		log.Printf("Using file persistence in %s", cfg.DataDir)
	}

	// Select reminder delivery
	var scheduler notify.Scheduler = notify.NoopScheduler{}
	if cfg.RemindersDesktop {
		scheduler = notify.NewDesktopScheduler()
	}

	// Initialize the in-process sources backing the ingest API
	journal := source.NewJournal()
	activityLog := source.NewActivityLog()

	// Initialize services
	nightService := service.NewNightService(persistentStore, scheduler)
	if err := nightService.Bootstrap(); err != nil {
		log.Fatalf("Failed to load persisted state: %v", err)
	}
	syncService := service.NewSyncService(nightService, journal, cfg.SyncLookbackDays)
	analyticsService := service.NewAnalyticsService(nightService)
	recommendationService := service.NewRecommendationService()
	motionService := service.NewMotionService(nightService, activityLog)

	// Initialize OpenAI client (may be nil if not configured)
	openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIInsightsModel)
	if openaiClient == nil {
		log.Println("Warning: OpenAI API key not configured, insights endpoint will be unavailable")
	}

	insightsService := newInsightsService(analyticsService, recommendationService, openaiClient)

	if cfg.Seed {
		log.Println("Seeding journal with sample data (SEED=true)...")
		seed.Run(journal)
		if _, err := syncService.FetchDelta(ctx); err != nil {
			log.Fatalf("Failed to apply seeded samples: %v", err)
		}
	}

	// Initialize handlers
	nightHandler := handler.NewNightHandler(nightService, journal, syncService)
	syncHandler := handler.NewSyncHandler(syncService)
	summaryHandler := handler.NewSummaryHandler(analyticsService, recommendationService)
	settingsHandler := handler.NewSettingsHandler(nightService)
	exportHandler := handler.NewExportHandler(nightService, analyticsService)
	insightsHandler := handler.NewInsightsHandler(insightsService)
	motionHandler := handler.NewMotionHandler(activityLog, motionService)

	// Setup router
	router := api.NewRouter(nightHandler, syncHandler, summaryHandler, settingsHandler, exportHandler, insightsHandler, motionHandler)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// newInsightsService keeps the nil-client case explicit: a nil *OpenAIClient
// must not become a non-nil interface value.
func newInsightsService(
	analytics service.AnalyticsService,
	recommendations service.RecommendationService,
	client *llm.OpenAIClient,
) service.InsightsService {
	if client == nil {
		return service.NewInsightsService(analytics, recommendations, nil)
	}
	return service.NewInsightsService(analytics, recommendations, client)
}
