package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"event-discovery-be/internal/config"
	"event-discovery-be/internal/dto"
	"event-discovery-be/internal/pkg/logger"
	"event-discovery-be/internal/repository/implementation"
	"event-discovery-be/internal/service"
	"event-discovery-be/pkg/database"
	"event-discovery-be/pkg/embedding"
	"event-discovery-be/pkg/ranking"

	"github.com/fatih/color"
)

// Runs a batch of sample queries through the full retrieval pipeline and
// prints the tiered results with their factor breakdowns. Pass queries as
// arguments to override the defaults.
func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}

	sysLogger := logger.NewZapLogger("logs/diagnostic.log", false)

	eventRepo := implementation.NewEventRepository(db)
	placeRepo := implementation.NewPlaceRepository(db)

	localProvider := embedding.NewOllamaProvider(cfg.Embedding.OllamaBaseURL, cfg.Embedding.OllamaModel)
	client := embedding.NewClient(embedding.Config{
		ServiceURL:      cfg.Embedding.ServiceURL,
		FallbackToLocal: cfg.Embedding.FallbackToLocal,
		Timeout:         time.Duration(cfg.Embedding.TimeoutSeconds) * time.Second,
	}, localProvider, sysLogger)

	engine := ranking.NewEngine(ranking.DefaultWeights(), ranking.DefaultTiers(), sysLogger)
	locationSvc := service.NewLocationService(placeRepo, cfg.Search.DefaultState, sysLogger)
	retrievalSvc := service.NewRetrievalService(eventRepo, locationSvc, client, engine, cfg.Search.DefaultRadius, cfg.Search.TimeWindowDays, sysLogger)

	queries := []string{
		"live music this weekend",
		"family activities in Newton tomorrow",
		"free outdoor festivals near Cambridge",
		"art classes for kids",
	}
	if len(os.Args) > 1 {
		queries = os.Args[1:]
	}

	ctx := context.Background()

	color.Cyan("🚀 Retrieval Diagnostic (%d queries)\n", len(queries))
	fmt.Println(strings.Repeat("=", 80))

	for _, query := range queries {
		color.Yellow("\nQuery: %q", query)

		started := time.Now()
		result, err := retrievalSvc.Retrieve(ctx, dto.SearchRequest{Query: query})
		if err != nil {
			color.Red("Failed: %v", err)
			continue
		}

		meta := result.Metadata
		color.Green("Considered %d candidates in %s (mode=%s)", result.TotalConsidered, time.Since(started).Round(time.Millisecond), meta.EmbeddingMode)
		if meta.LocationName != "" {
			fmt.Printf("  Location: %s (confidence %.2f)\n", meta.LocationName, meta.LocationConfidence)
		}
		if meta.DateFrom != nil {
			fmt.Printf("  Dates: %s .. %s (confidence %.2f)\n", meta.DateFrom.Format("2006-01-02"), meta.DateTo.Format("2006-01-02"), meta.DateConfidence)
		}
		if meta.FallbackUsed {
			color.Red("  Degraded: %s", meta.Error)
		}

		printTier("RECOMMENDED", result.Recommended)
		printTier("ADDITIONAL", result.Additional)
		printTier("CONTEXT", result.Context)
	}
}

func printTier(name string, events []ranking.RankedEvent) {
	if len(events) == 0 {
		return
	}
	color.Cyan("  -- %s --", name)
	for _, ranked := range events {
		distance := "n/a"
		if ranked.DistanceMiles != nil {
			distance = fmt.Sprintf("%.1fmi", *ranked.DistanceMiles)
		}
		daysUntil := "n/a"
		if ranked.DaysUntil != nil {
			daysUntil = fmt.Sprintf("%.1fd", *ranked.DaysUntil)
		}
		fmt.Printf("  %.3f  %-50s sim=%.2f loc=%.2f time=%.2f dist=%s in=%s\n",
			ranked.Score,
			truncate(ranked.Event.Title, 50),
			ranked.Factors.Semantic,
			ranked.Factors.Location,
			ranked.Factors.Time,
			distance,
			daysUntil,
		)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
