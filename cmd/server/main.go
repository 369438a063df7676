// Command server runs the check-in backend: it wires configuration, stores,
// domain services and the HTTP surface, then serves until interrupted.
// Business logic lives in the internal services packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	activityhandler "gatepass/internal/activity/handler"
	activityservice "gatepass/internal/activity/service"
	activitystore "gatepass/internal/activity/store/activity"
	attendeehandler "gatepass/internal/attendee/handler"
	attendeemetrics "gatepass/internal/attendee/metrics"
	attendeeservice "gatepass/internal/attendee/service"
	attendeestore "gatepass/internal/attendee/store/attendee"
	counterstore "gatepass/internal/attendee/store/counter"
	"gatepass/internal/checkin"
	checkinhandler "gatepass/internal/checkin/handler"
	checkinmetrics "gatepass/internal/checkin/metrics"
	"gatepass/internal/checkin/suppression"
	"gatepass/internal/platform/config"
	"gatepass/internal/platform/httpserver"
	"gatepass/internal/platform/logger"
	"gatepass/internal/platform/postgres"
	platformredis "gatepass/internal/platform/redis"
	"gatepass/internal/settings"
	settingshandler "gatepass/internal/settings/handler"
	"gatepass/internal/token"
	httptransport "gatepass/internal/transport/http"
	authmw "gatepass/pkg/platform/middleware/auth"
	"gatepass/pkg/platform/tx"
)

func main() {
	configPath := os.Getenv("GATEPASS_CONFIG")
	if configPath == "" {
		configPath = "config.yml"
	}
	cfg := config.MustLoad(configPath)
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	var (
		db               *sql.DB
		attendeeStore    attendeeservice.AttendeeStore
		checkinAttendees checkin.AttendeeStore
		counters         attendeeservice.CounterStore
		activityLog      activityservice.ActivityStore
		activityAppender checkin.ActivityAppender
		summarizer       activityservice.Summarizer
		windowStore      settings.Store
		txRunner         tx.Runner
	)

	if cfg.Postgres.URL != "" {
		var err error
		db, err = postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		defer func() {
			_ = db.Close()
		}()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return err
		}

		attendees := attendeestore.NewPostgres(db)
		attendeeStore = attendees
		checkinAttendees = attendees
		summarizer = attendees
		counters = counterstore.NewPostgres(db)
		pgActivity := activitystore.NewPostgres(db)
		activityLog = pgActivity
		activityAppender = pgActivity
		windowStore = settings.NewPostgresStore(db)
		txRunner = tx.NewSQLRunner(db)
	} else {
		log.Warn("postgres not configured, using in-memory stores")

		attendeesMem := attendeestore.NewInMemory()
		attendeeStore = attendeesMem
		checkinAttendees = attendeesMem
		summarizer = attendeesMem
		counters = counterstore.NewInMemory()
		memActivity := activitystore.NewInMemory()
		activityLog = memActivity
		activityAppender = memActivity
		windowStore = settings.NewInMemoryStore()
		txRunner = tx.NoopRunner{}
	}

	var (
		supp    suppression.Store
		memSupp *suppression.InMemory
	)
	switch cfg.Checkin.SuppressionStore {
	case "redis":
		rdb, err := platformredis.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		if rdb == nil {
			return fmt.Errorf("suppression_store is redis but no redis URL is configured")
		}
		defer func() {
			_ = rdb.Close()
		}()
		supp = suppression.NewRedis(rdb.Client, cfg.Checkin.SuppressionTTL)
	default:
		memSupp = suppression.NewInMemory(cfg.Checkin.SuppressionTTL)
		supp = memSupp
	}

	attendeeMetrics := attendeemetrics.New()
	checkinMetrics := checkinmetrics.New()

	allocator := attendeeservice.NewAllocator(counters)
	attendeeSvc := attendeeservice.NewService(attendeeStore, allocator, log, attendeeMetrics)
	windowSvc := settings.NewService(windowStore, log)
	activitySvc := activityservice.NewService(activityLog, summarizer)
	checkinSvc := checkin.NewService(
		checkinAttendees,
		activityAppender,
		windowSvc,
		supp,
		txRunner,
		log,
		checkinMetrics,
	)

	tokens := token.NewService(cfg.Auth.SigningKey, cfg.Auth.Issuer)
	validator := token.NewMiddlewareAdapter(tokens)

	router := httptransport.NewRouter(httptransport.Deps{
		Attendees:      attendeehandler.New(attendeeSvc, log),
		Checkin:        checkinhandler.New(checkinSvc, log),
		Settings:       settingshandler.New(windowSvc, log),
		Activity:       activityhandler.New(activitySvc, log),
		RequireStation: authmw.RequireStation(validator, log),
		RequireAdmin:   authmw.RequireAdmin(log),
		Health:         healthHandler(db),
	})

	addr := net.JoinHostPort(cfg.Listen.BindIP, cfg.Listen.Port)
	srv := httpserver.New(addr, router)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting gatepass server", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if memSupp != nil {
		g.Go(func() error {
			ticker := time.NewTicker(cfg.Checkin.SweepInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case now := <-ticker.C:
					if dropped := memSupp.Sweep(now); dropped > 0 {
						log.Debug("suppression window swept", "dropped", dropped)
					}
				}
			}
		})
	}

	return g.Wait()
}

// healthHandler reports liveness, including the backing store when one is
// configured.
func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unhealthy"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
