package models

import "time"

// Activity actions recorded in the activity log.
const (
	ActionUserRegistered   = "USER_REGISTERED"
	ActionMissionCompleted = "MISSION_COMPLETED"
	ActionAnswerRejected   = "ANSWER_REJECTED"
)

// ActivityEntry is an append-only record of something a user did.
type ActivityEntry struct {
	ID        string                 `json:"id" firestore:"-"`
	Timestamp time.Time              `json:"timestamp" firestore:"timestamp,serverTimestamp"`
	UserID    string                 `json:"userId" firestore:"userId"`
	Email     string                 `json:"email,omitempty" firestore:"email,omitempty"`
	Action    string                 `json:"action" firestore:"action"`
	MissionID string                 `json:"missionId,omitempty" firestore:"missionId,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty" firestore:"details,omitempty"`
}
