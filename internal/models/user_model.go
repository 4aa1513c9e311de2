package models

import "time"

// User holds the display profile of an authenticated user. XP and completion
// counts are derived from mission ledgers and never stored here.
type User struct {
	ID          string    `json:"uid" firestore:"-"` // Firebase Auth UID, used as the document ID
	Email       string    `json:"email" firestore:"email"`
	DisplayName string    `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	PhotoURL    string    `json:"photoURL,omitempty" firestore:"photoURL,omitempty"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Identity is the verified subject returned by the identity provider.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// UserProfile is the per-user view of the leaderboard.
type UserProfile struct {
	UID                 string   `json:"uid"`
	Email               string   `json:"email"`
	DisplayName         string   `json:"displayName"`
	PhotoURL            string   `json:"photoURL,omitempty"`
	CompletedMissions   int      `json:"completedMissions"`
	TotalXP             int      `json:"totalXP"`
	CompletedMissionIDs []string `json:"completedMissionIds"`
}

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	Rank              int    `json:"rank"`
	Email             string `json:"email"`
	DisplayName       string `json:"displayName"`
	CompletedMissions int    `json:"completedMissions"`
	TotalXP           int    `json:"totalXP"`
}
