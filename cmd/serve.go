package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"genedb/core/database"
	"genedb/core/loader"
	"genedb/core/logger"
	"genedb/core/metrics"
	"genedb/core/middleware/auth"
	"genedb/core/middleware/rayid"
	"genedb/core/storage"
	"genedb/feature/integrity"
	"genedb/feature/integrity/checks"
	"genedb/feature/repodb"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API over build runs",
	Long:  `Starts the HTTP server exposing run history, on-demand builds and metrics.`,
	RunE:  runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logg, err := setup()
	if err != nil {
		return err
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	if err := cfg.Build.Validate(logg); err != nil {
		return err
	}

	// Run history is optional; without it the runs feature stays disabled.
	var (
		db    *gorm.DB
		store *repodb.Store
	)
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		db = conn
		store = repodb.NewStore(db)
		if err := store.Migrate(); err != nil {
			return err
		}
		if report, err := checks.CheckSchema(db, repodb.RunRecord{}, repodb.GenomeRecord{}); err != nil {
			logg.Warn("Schema check failed", zap.Error(err))
		} else if !report.Matched {
			logg.Warn("Run tables do not match their models", zap.Any("tables", report.Tables), zap.Strings("errors", report.Errors))
		}
		logg.Info("Connected to run database", zap.String("driver", cfg.Database.Driver))
	}

	var (
		client    storage.Client
		publisher *repodb.Publisher
	)
	if c, err := storage.NewClient(cfg.Storage); err != nil {
		logg.Warn("Storage client unavailable, publishing disabled", zap.Error(err))
	} else {
		client = c
		publisher = repodb.NewPublisher(client, cfg.Storage, logg)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	mgr := loader.NewManager(logg)
	svc := repodb.NewService(cfg.Build, logg, m)
	mgr.Register(repodb.NewFeature(svc, store, publisher, cfg.Genomes, logg))
	mgr.Register(integrity.NewFeature(client, cfg.Storage, db, cfg.Genomes, logg))

	// RayID first so every log line carries it
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	if cfg.Server.Metrics {
		app.Get("/metrics", metrics.Handler(reg))
	}

	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/metrics"}}))

	if err := mgr.LoadAll(app); err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("addr", cfg.Server.Addr()))
		errc <- app.Listen(cfg.Server.Addr())
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errc:
		return err
	case <-sig:
	}
	logg.Info("Shutting down server...")
	return app.Shutdown()
}
