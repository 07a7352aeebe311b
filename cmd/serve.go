package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpupo63/portfolio-backend/api"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ResolveJWTSecret(ctx, nil); err != nil {
			return err
		}

		tokens, err := auth.NewTokenService(cfg.JWTSecret)
		if err != nil {
			return err
		}

		db, err := openDatabase(cfg)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer db.Close()

		if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
			if err := db.Migrate(ctx); err != nil {
				return fmt.Errorf("migrating database: %w", err)
			}
		}

		opts := []api.RouterOption{api.WithNotifier(services.NotifiersFromConfig(cfg))}
		if cfg.RedisURL != "" {
			client, err := services.NewRedisClient(ctx, cfg.RedisURL)
			if err != nil {
				return err
			}
			defer client.Close()
			opts = append(opts, api.WithViewCounter(services.NewRedisViewCounter(client)))
		} else {
			log.Warn().Msg("REDIS_URL not set, page views are placeholder values")
		}

		server, err := api.NewServer(cfg, db, tokens, opts...)
		if err != nil {
			return fmt.Errorf("initializing server: %w", err)
		}

		errChannel := make(chan error, 2)
		go server.Start(errChannel)

		// Listen for interrupt signals to gracefully shutdown the server
		go listenToInterrupt(errChannel)

		fatalErr := <-errChannel
		log.Info().Msgf("Closing server: %v", fatalErr)

		server.ShutdownGracefully(30 * time.Second)
		return nil
	},
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

func init() {
	serveCmd.Flags().Bool("migrate", true, "Run AutoMigrate before serving")
	rootCmd.AddCommand(serveCmd)
}

