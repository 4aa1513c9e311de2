package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"operation-theta/internal/core"
	"operation-theta/internal/db"
	"operation-theta/internal/models"
)

var (
	leaderboardJSON  bool
	leaderboardLimit int
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the current leaderboard",
	Args:  cobra.NoArgs,
	RunE:  runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().BoolVar(&leaderboardJSON, "json", false, "Print JSON instead of a table")
	leaderboardCmd.Flags().IntVarP(&leaderboardLimit, "limit", "n", 0, "Show only the top N entries (0 for all)")
}

func runLeaderboard(cmd *cobra.Command, _ []string) error {
	return withStore(cmd.Context(), func(ctx context.Context, clients *db.Clients, logger *zap.Logger) error {
		board := core.NewLeaderboardService(
			db.NewFirestoreMissionRepository(clients.Firestore, logger),
			db.NewFirestoreUserRepository(clients.Firestore, logger),
			logger,
		)
		entries, err := board.Compute(ctx)
		if err != nil {
			return err
		}
		if leaderboardLimit > 0 && len(entries) > leaderboardLimit {
			entries = entries[:leaderboardLimit]
		}
		return printLeaderboard(cmd.OutOrStdout(), entries, leaderboardJSON)
	})
}

func printLeaderboard(w io.Writer, entries []models.LeaderboardEntry, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tAGENT\tEMAIL\tMISSIONS\tXP")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", e.Rank, e.DisplayName, e.Email, e.CompletedMissions, e.TotalXP)
	}
	return tw.Flush()
}
