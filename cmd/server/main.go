package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/calories/backend/config"
	httpDelivery "github.com/calories/backend/internal/delivery/http"
	"github.com/calories/backend/internal/infrastructure/cache"
	"github.com/calories/backend/internal/infrastructure/calorieapi"
	"github.com/calories/backend/internal/infrastructure/persistence/sqlstore"
	"github.com/calories/backend/internal/logging"
	"github.com/calories/backend/internal/metrics"
	"github.com/calories/backend/internal/usecase"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const version = "1.0.0"

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.Setup(logging.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("driver", cfg.Database.Driver).
		Msg("starting calories backend")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize infrastructure dependencies
	store, err := sqlstore.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close store")
		}
	}()

	memoryCache := cache.NewMemoryCache()
	calorieClient := calorieapi.NewClient(calorieapi.Config{
		BaseURL:       cfg.CalorieAPI.BaseURL,
		Timeout:       cfg.CalorieAPI.Timeout,
		RatePerSecond: cfg.CalorieAPI.RatePerSecond,
		Burst:         cfg.CalorieAPI.Burst,
	})

	// Initialize usecase layer
	products := usecase.NewProductService(memoryCache, store)
	meals := usecase.NewMealService(memoryCache, store)
	handler := httpDelivery.NewHandler(httpDelivery.Services{
		Calories:     usecase.NewCalorieService(memoryCache, store, calorieClient),
		Products:     products,
		Meals:        meals,
		MealProducts: usecase.NewMealProductService(memoryCache, store, meals, products),
	}, metrics.NewRequestCounter())

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: httpDelivery.SetupRouter(cfg, handler),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func main() {
	cmd := &cli.Command{
		Name:    "calories",
		Usage:   "Calorie calculation service with product, meal and meal product records",
		Version: version,
		Action:  run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (searched in ., ./config and /etc/calories when empty)",
				Sources: cli.EnvVars("CALORIES_CONFIG_FILE"),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Error().Err(err).Msg("application error")
		os.Exit(1)
	}
}
