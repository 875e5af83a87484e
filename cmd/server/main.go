package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fadilmartias/nexo-carreira/internal/config"
	"github.com/fadilmartias/nexo-carreira/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var appLog *logger.Logger

var rootCmd = &cobra.Command{
	Use:           "nexo-server",
	Short:         "Nexo Carreira career readiness API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println("Could not load .env file")
		}
		l, err := logger.New(config.LoadAppConfig().Env)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		appLog = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appLog != nil {
			appLog.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(embedTracksCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
