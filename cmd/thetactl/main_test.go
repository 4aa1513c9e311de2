package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"operation-theta/internal/models"
)

func TestPrintLeaderboard(t *testing.T) {
	entries := []models.LeaderboardEntry{
		{Rank: 1, Email: "a@x.com", DisplayName: "Agent A", CompletedMissions: 2, TotalXP: 250},
		{Rank: 2, Email: "b@x.com", DisplayName: "b", CompletedMissions: 1, TotalXP: 100},
	}

	var table bytes.Buffer
	require.NoError(t, printLeaderboard(&table, entries, false))
	lines := bytes.Split(bytes.TrimSpace(table.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "RANK")
	assert.Contains(t, string(lines[1]), "Agent A")
	assert.Contains(t, string(lines[1]), "250")

	var out bytes.Buffer
	require.NoError(t, printLeaderboard(&out, entries, true))
	var decoded []models.LeaderboardEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, entries, decoded)
}

func TestSeedDryRun(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"seed", "--dry-run", "--file", "../../configs/missions.yaml"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		seedDryRun = false
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "6 missions OK")
}
