package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/elonfeng/channelpulse/internal/config"
	"github.com/elonfeng/channelpulse/internal/store"
	"github.com/elonfeng/channelpulse/pkg/analytics"
	"github.com/elonfeng/channelpulse/pkg/catalog"
	"github.com/elonfeng/channelpulse/pkg/report"
	"github.com/elonfeng/channelpulse/pkg/server"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

// newLogger builds the structured logger all commands share.
func newLogger(cfg *config.Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	return zerolog.New(os.Stderr).Level(lvl).With().
		Timestamp().
		Str("service", "channelpulse").
		Logger()
}

func analysisOptions(cfg *config.Config) analytics.Options {
	return analytics.Options{
		TopFraction: cfg.Analysis.TopFraction,
		TopKeywords: cfg.Analysis.TopKeywords,
	}
}

func buildSource(cfg *config.Config, name string) (catalog.Source, error) {
	switch name {
	case "api":
		if cfg.YouTube.APIKey == "" {
			return nil, fmt.Errorf("source api requires an API key (YOUTUBE_API_KEY or youtube.api_key)")
		}
		return catalog.NewYouTube(cfg.YouTube.APIKey), nil
	case "feed":
		return catalog.NewFeed(), nil
	default:
		return nil, fmt.Errorf("unknown source %q (want api or feed)", name)
	}
}

func runFetch(srcName string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg)

	src, err := buildSource(cfg, srcName)
	if err != nil {
		return err
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	log.Info().
		Str("source", src.Name()).
		Str("channel", cfg.YouTube.ChannelID).
		Msg("fetching catalog")

	videos, err := src.Collect(ctx, cfg.YouTube.ChannelID)
	if err != nil {
		return fmt.Errorf("collect from %s: %w", src.Name(), err)
	}

	if err := db.UpsertVideos(ctx, videos); err != nil {
		return fmt.Errorf("store videos: %w", err)
	}

	total, err := db.CountVideos(ctx)
	if err != nil {
		return fmt.Errorf("count videos: %w", err)
	}

	log.Info().
		Int("fetched", len(videos)).
		Int("total", total).
		Msg("catalog updated")
	return nil
}

func runAnalyze(jsonOutput bool, outFile string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg)

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	videos, err := db.ListVideos(ctx)
	if err != nil {
		return fmt.Errorf("list videos: %w", err)
	}

	rep, _, err := analytics.Analyze(videos, analysisOptions(cfg))
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	results, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	run := &store.Run{
		ChannelID:   cfg.YouTube.ChannelID,
		VideoCount:  rep.VideoCount,
		ResultsJSON: string(results),
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.SaveRun(ctx, run); err != nil {
		log.Warn().Err(err).Msg("could not save run history")
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	sinks := []report.Sink{report.NewConsole(os.Stdout)}
	if outFile != "" {
		sinks = append(sinks, report.NewJSONFile(outFile))
	}
	return report.NewManager(sinks).Broadcast(rep)
}

func runExport(outFile string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	videos, err := db.ListVideos(context.Background())
	if err != nil {
		return fmt.Errorf("list videos: %w", err)
	}
	if len(videos) == 0 {
		return fmt.Errorf("no videos in catalog (run: channelpulse fetch)")
	}

	out := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("create %s: %w", outFile, err)
		}
		defer f.Close()
		out = f
	}

	return report.WriteCSV(out, analytics.Derive(videos))
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg)

	if port == 0 {
		port = cfg.Server.Port
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	srv := server.New(db, analysisOptions(cfg), port, log)
	return srv.ListenAndServe()
}
