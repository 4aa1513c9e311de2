package models

import "operation-theta/internal/puzzle"

// Pair is one person/position tuple shown by a matching puzzle.
type Pair struct {
	Person   string `json:"person" firestore:"person" yaml:"person"`
	Position string `json:"position" firestore:"position" yaml:"position"`
}

// Mission is a single puzzle with its reward and completion ledger.
// The answer key is never serialized to clients.
type Mission struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Hint        string           `json:"hint,omitempty"`
	Difficulty  string           `json:"difficulty,omitempty"`
	TimeLimit   string           `json:"timeLimit,omitempty"`
	PuzzleType  puzzle.Type      `json:"puzzleType"`
	Question    string           `json:"question"`
	AnswerKey   puzzle.AnswerKey `json:"-"`
	Options     []string         `json:"options,omitempty"`
	Pairs       []Pair           `json:"pairs,omitempty"`
	XP          int              `json:"xp"`
	CompletedBy []string         `json:"completedBy"`
}

// CompletedByUser reports whether identifier is already in the mission's ledger.
func (m *Mission) CompletedByUser(identifier string) bool {
	for _, id := range m.CompletedBy {
		if id == identifier {
			return true
		}
	}
	return false
}
