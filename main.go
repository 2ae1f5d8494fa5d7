// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/activity-board/alerts"
	"github.com/danielhkuo/activity-board/board"
	"github.com/danielhkuo/activity-board/cliparse"
	"github.com/danielhkuo/activity-board/db"
	"github.com/danielhkuo/activity-board/handlers"
	"github.com/danielhkuo/activity-board/middleware"
	"github.com/danielhkuo/activity-board/models"
	"github.com/danielhkuo/activity-board/pipeline"
	"github.com/danielhkuo/activity-board/router"
	"github.com/danielhkuo/activity-board/rules"
	"github.com/danielhkuo/activity-board/store"
	"github.com/danielhkuo/activity-board/upstream"
)

const (
	boardFile  = "kanban-data.json"
	ledgerFile = "notified-members.json"

	boardDocument  = "board"
	ledgerDocument = "alert_ledger"

	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := cliparse.LoadDotEnv(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}

func run(ctx context.Context, cfg cliparse.Config) error {
	boardStore, ledgerStore, closeStores, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer closeStores()

	ruleSet, err := rules.Load(cfg.RulesFile)
	if err != nil {
		return err
	}

	notifier, closeNotifier, err := newNotifier(cfg)
	if err != nil {
		return err
	}
	defer closeNotifier()

	ledger, err := alerts.LoadLedger(ctx, ledgerStore)
	if err != nil {
		return err
	}
	dedup := alerts.NewDeduplicator(notifier, ledger, ruleSet.ValidMembers, ruleSet.Excluded)
	if !dedup.Enabled() {
		slog.Warn("no WEBHOOK_URL or MQTT_BROKER_URL configured; submission alerts disabled")
	}

	p := pipeline.New(newSource(cfg), ruleSet, dedup, cfg.FetchTimeout)

	boardSvc, err := board.Load(ctx, boardStore, cfg.MaxCardsPerColumn)
	if err != nil {
		return err
	}

	// Create router
	mux := router.NewRouter(
		handlers.NewActivityHandler(p, cfg),
		handlers.NewBoardHandler(boardSvc, cfg),
		cfg,
	)

	// Create server
	server := &http.Server{
		Handler:      middleware.CORS(mux),
		Addr:         ":" + strconv.Itoa(cfg.Port),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.FetchTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port, "source", cfg.Source)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()

	// let in-flight alert deliveries finish before exiting
	if w, ok := notifier.(alerts.Waiter); ok {
		w.Wait()
	}
	return err
}

func newLogger(cfg cliparse.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// openStores selects JSON files under DataDir, or documents in the
// configured database when DATABASE_URL is set
func openStores(cfg cliparse.Config) (store.Store[models.Board], store.Store[[]int], func(), error) {
	if cfg.DatabaseURL == "" {
		slog.Info("Using file storage", "dir", cfg.DataDir)
		return store.NewFile[models.Board](filepath.Join(cfg.DataDir, boardFile)),
			store.NewFile[[]int](filepath.Join(cfg.DataDir, ledgerFile)),
			func() {},
			nil
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, nil, nil, err
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	return store.NewDocument[models.Board](conn, boardDocument),
		store.NewDocument[[]int](conn, ledgerDocument),
		func() { closeDB(conn) },
		nil
}

func closeDB(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		slog.Error("failed to close database", "error", err)
	}
}

func newSource(cfg cliparse.Config) upstream.Source {
	if cfg.Source == cliparse.SourceNotion {
		return upstream.NewNotionClient(cfg.NotionBaseURL, cfg.NotionDatabaseID, cfg.NotionAPIKey)
	}
	return upstream.NewTallyClient(cfg.TallyBaseURL, cfg.TallyFormID, cfg.TallyAPIKey)
}

// newNotifier returns nil when no sink is configured
func newNotifier(cfg cliparse.Config) (alerts.Notifier, func(), error) {
	var (
		sinks  alerts.Multi
		closer = func() {}
	)

	if cfg.WebhookURL != "" {
		sinks = append(sinks, alerts.NewWebhookNotifier(cfg.WebhookURL))
	}

	if cfg.MQTTBrokerURL != "" {
		mq, err := alerts.NewMQTTNotifier(alerts.MQTTConfig{
			URL:      cfg.MQTTBrokerURL,
			ClientID: cfg.MQTTClientID,
			Username: cfg.MQTTUsername,
			Password: cfg.MQTTPassword,
			Topic:    cfg.MQTTTopic,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to set up mqtt notifier: %w", err)
		}
		sinks = append(sinks, mq)
		closer = mq.Close
	}

	switch len(sinks) {
	case 0:
		return nil, closer, nil
	case 1:
		return sinks[0], closer, nil
	default:
		return sinks, closer, nil
	}
}
