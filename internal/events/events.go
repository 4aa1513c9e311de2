// Package events announces mission completions to downstream consumers.
package events

import (
	"context"
	"time"
)

// CompletionEvent is published once per newly recorded (mission, user) completion.
type CompletionEvent struct {
	MissionID   string    `json:"missionId"`
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	XP          int       `json:"xp"`
	CompletedAt time.Time `json:"completedAt"`
}

// Publisher delivers completion events.
type Publisher interface {
	PublishCompletion(ctx context.Context, event CompletionEvent) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishCompletion(context.Context, CompletionEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
