package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/blog-service/internal/config"
	"github.com/deppfellow/blog-service/internal/database"
	"github.com/deppfellow/blog-service/internal/handler"
	"github.com/deppfellow/blog-service/internal/logger"
	"github.com/deppfellow/blog-service/internal/repository"
	"github.com/deppfellow/blog-service/internal/router"
	"github.com/deppfellow/blog-service/internal/server"
	"github.com/deppfellow/blog-service/internal/service"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 30 * time.Second

// bootstrap loads config and builds the logger every command needs.
func bootstrap() (*config.Config, *logger.LoggerService, zerolog.Logger) {
	cfg, err := config.LoadConfig()
	if err != nil {
		fallback := zerolog.New(os.Stderr).With().Timestamp().Logger()
		fallback.Fatal().Err(err).Msg("failed to load config")
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, log
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "initialize the schema and serve the HTTP API",
		Action: func(c *cli.Context) error {
			cfg, loggerService, log := bootstrap()

			srv, err := server.New(cfg, &log, loggerService)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to initialize server")
			}

			// A schema failure is fatal: the API is useless without its table.
			if err := database.InitSchema(c.Context, srv.DB.DB, &log); err != nil {
				log.Fatal().Err(err).Msg("failed to initialize database schema")
			}

			repos := repository.NewRepositories(srv)
			services := service.NewServices(srv, repos)
			handlers := handler.NewHandlers(srv, services)
			srv.SetupHTTPServer(router.NewRouter(srv, handlers))

			return runServer(c.Context, srv, &log)
		},
	}
}

// runServer serves until ctx is cancelled or the listener fails. Either
// way the server is shut down, so the pool is closed and New Relic is
// flushed.
func runServer(ctx context.Context, srv *server.Server, log *zerolog.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to release server resources")
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return <-serveErr
}

func initSchemaCmd() *cli.Command {
	return &cli.Command{
		Name:  "init-schema",
		Usage: "run the schema initialization script and exit",
		Action: func(c *cli.Context) error {
			cfg, loggerService, log := bootstrap()
			defer loggerService.Shutdown()

			db, err := database.New(cfg, &log, loggerService)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to connect to database")
			}
			defer db.Close()

			return database.InitSchema(c.Context, db.DB, &log)
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp()
	app.Name = "blog-service"
	app.Usage = "serve blog entries from PostgreSQL"
	app.Commands = []*cli.Command{
		serveCmd(),
		initSchemaCmd(),
	}
	// Running without a subcommand serves the API.
	app.Action = serveCmd().Action

	if err := app.RunContext(ctx, os.Args); err != nil && !errors.Is(err, context.Canceled) {
		fallback := zerolog.New(os.Stderr).With().Timestamp().Logger()
		fallback.Error().Err(err).Msg("error while running blog-service")
		os.Exit(1)
	}
}
