// @title firsgate API
// @version 1.0.0
// @description Signs tax e-invoices, stores their artifacts, and submits them to the FIRS API.
// @BasePath /api/v1
// @securityDefinitions.apikey APIKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"firsgate/internal/config"
	"firsgate/internal/handler"
	"firsgate/internal/hsn"
	"firsgate/internal/index"
	"firsgate/internal/logger"
	"firsgate/internal/obslog"
	"firsgate/internal/port"
	"firsgate/internal/repository/postgres"
	"firsgate/internal/router"
	"firsgate/internal/service"
	"firsgate/internal/signer"
	"firsgate/internal/storage/local"
	s3storage "firsgate/internal/storage/s3"
	"firsgate/internal/upstream"
	"firsgate/internal/validator"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Setup(cfg.Log); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Server.Timezone, err)
	}

	// Signing key and local storage
	sgn, err := signer.NewFromFile(cfg.Paths.CryptoKeys)
	if err != nil {
		return fmt.Errorf("failed to load signing key: %w", err)
	}
	defer sgn.Close()

	store := local.NewStore(cfg.Paths)

	idx, err := index.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open invoice index: %w", err)
	}
	defer idx.Close()

	firs := upstream.NewClient(cfg.FIRS)

	// Optional database: log tables and HSN catalogue
	var (
		db     *sqlx.DB
		dbPing service.Pinger
	)
	fileSink := obslog.NewFileSink(cfg.Paths.SuccessLog, cfg.Paths.ErrorLog)
	sinks := []port.LogSink{fileSink}
	var reader port.LogReader = fileSink
	if cfg.DB.Enabled {
		db, err = postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		logRepo := postgres.NewLogRepo(db)
		tableSink := obslog.NewTableSink(logRepo)
		sinks = append(sinks, tableSink)
		reader = tableSink
		dbPing = logRepo
	}
	activity := obslog.New(reader, sinks, obslog.WithLocation(loc))

	var hsnRepo port.HSNRepository = hsn.NewFileRepository(cfg.Paths.HSNCodes)
	if cfg.HSN.Source == config.HSNSourceDB {
		hsnRepo = postgres.NewHSNRepo(db)
	}

	// Optional S3 archive mirror
	var (
		archivePing service.Pinger
		signingOpts []service.SigningOption
	)
	if cfg.S3.Enabled {
		objects, err := s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		archivePing = objects
		signingOpts = append(signingOpts, service.WithArchiver(s3storage.NewArchiver(objects, cfg.S3.Prefix)))
	}
	signingOpts = append(signingOpts, service.WithClock(func() time.Time { return time.Now().In(loc) }))

	// Initialize services
	engine := validator.NewEngine(cfg.Validation)
	signingSvc := service.NewSigningService(engine, idx, store, sgn, firs, activity, signingOpts...)
	invoiceSvc := service.NewInvoiceService(engine, idx, store, firs, loc)
	healthSvc := service.NewHealthService(service.HealthInfo{
		Version:        cfg.Server.Version,
		Environment:    cfg.Server.Environment,
		CryptoKeysPath: cfg.Paths.CryptoKeys,
	}, sgn, store, firs, dbPing, archivePing)

	// Initialize handlers
	r := router.Setup(cfg, activity, router.Handlers{
		Invoice: handler.NewInvoiceHandler(signingSvc, invoiceSvc),
		HSN:     handler.NewHSNHandler(hsn.NewCatalogue(hsnRepo)),
		Logs:    handler.NewLogHandler(activity),
		Health:  handler.NewHealthHandler(healthSvc),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("environment", cfg.Server.Environment).
			Bool("firs_api", firs.Enabled()).
			Bool("db", cfg.DB.Enabled).
			Bool("s3", cfg.S3.Enabled).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
