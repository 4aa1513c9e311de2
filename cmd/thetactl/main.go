// Command thetactl is the operator CLI for the mission store.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"operation-theta/internal/config"
	"operation-theta/internal/db"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "thetactl",
	Short:         "Operate the Operation Theta mission store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(seedCmd, leaderboardCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

// withStore loads configuration, connects to Firebase and runs fn.
func withStore(ctx context.Context, fn func(ctx context.Context, clients *db.Clients, logger *zap.Logger) error) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	appConfig, err := config.LoadConfig()
	if err != nil {
		return err
	}
	clients, err := db.InitFirebase(ctx, appConfig, logger)
	if err != nil {
		return err
	}
	defer clients.Close()

	return fn(ctx, clients, logger)
}
