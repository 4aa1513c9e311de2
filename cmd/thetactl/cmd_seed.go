package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"operation-theta/internal/db"
	"operation-theta/internal/seed"
)

var (
	seedFile   string
	seedDryRun bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load mission definitions from a YAML file",
	Long: `Validates a mission seed file and upserts every mission into Firestore.
Completion ledgers of existing missions are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "configs/missions.yaml", "Path to the mission seed file")
	seedCmd.Flags().BoolVar(&seedDryRun, "dry-run", false, "Validate the file without writing")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	missions, err := seed.LoadFile(seedFile)
	if err != nil {
		return err
	}
	if seedDryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d missions OK\n", seedFile, len(missions))
		return nil
	}

	return withStore(cmd.Context(), func(ctx context.Context, clients *db.Clients, logger *zap.Logger) error {
		repo := db.NewFirestoreMissionRepository(clients.Firestore, logger)
		if err := seed.Apply(ctx, repo, missions, logger); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d missions from %s\n", len(missions), seedFile)
		return nil
	})
}
