// jobboardly-moderation-service
//
// Moderation and lifecycle state machine for jobs, companies, user
// accounts and applications. Exposes the HTTP API used by the Gateway
// to implement:
//   - requestTransition(kind, id, toStatus, reason) — guarded status changes
//   - listLegalTargets(kind, from)                  — allowed-action menus
//   - explainDenial(kind, role, from, to)           — user-facing error text
//   - resubmitJob(id)                               — employer edit reset
//
// Publishes NOTIFICATION_INTENTS to Redis for the dispatcher and keeps
// the pending worklists/counters rebuilt on a cron schedule.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KishoreKammela/JobBoardly-sub000/internal/config"
	"github.com/KishoreKammela/JobBoardly-sub000/internal/db"
	"github.com/KishoreKammela/JobBoardly-sub000/internal/moderation"
	"github.com/KishoreKammela/JobBoardly-sub000/internal/notify"
	"github.com/KishoreKammela/JobBoardly-sub000/internal/recount"
	"github.com/KishoreKammela/JobBoardly-sub000/internal/store"
	"github.com/KishoreKammela/JobBoardly-sub000/internal/worklist"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[moderation-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[moderation-service] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[moderation-service] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[moderation-service] PostgreSQL connected ✓")

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[moderation-service] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[moderation-service] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[moderation-service] Redis connected ✓")

	// ── Service wiring ───────────────────────────────────────────────────────
	lists := worklist.NewStore(rdb)
	svc := moderation.NewService(
		moderation.NewEngine(),
		store.New(pool),
		notify.NewSink(rdb),
		lists,
	)

	// ── Recount scheduler ────────────────────────────────────────────────────
	recounter := recount.New(pool, lists, cfg.RecountIntervalHours)
	if err := recounter.Start(ctx); err != nil {
		log.Fatalf("[moderation-service] Recounter: %v", err)
	}
	defer recounter.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)

	h := moderation.NewHandler(svc)
	h.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[moderation-service] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[moderation-service] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[moderation-service] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[moderation-service] Shutdown error: %v", err)
	}
	log.Println("[moderation-service] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "moderation-service",
		"version": version,
	})
}
