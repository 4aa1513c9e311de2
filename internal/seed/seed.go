// Package seed loads mission definitions from YAML and writes them to the mission store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"operation-theta/internal/db"
	"operation-theta/internal/models"
	"operation-theta/internal/puzzle"
)

// ErrInvalidMission is returned when a mission definition fails validation.
var ErrInvalidMission = errors.New("invalid mission definition")

// File is the top-level shape of a mission seed file.
type File struct {
	Missions []MissionDef `yaml:"missions"`
}

// MissionDef is one mission as written in a seed file. Answer is a string for
// text puzzles and a list for choice and matching puzzles.
type MissionDef struct {
	ID          string        `yaml:"id"`
	Title       string        `yaml:"title"`
	Category    string        `yaml:"category"`
	Description string        `yaml:"description"`
	Hint        string        `yaml:"hint"`
	Difficulty  string        `yaml:"difficulty"`
	TimeLimit   string        `yaml:"timeLimit"`
	PuzzleType  string        `yaml:"puzzleType"`
	Question    string        `yaml:"question"`
	Options     []string      `yaml:"options"`
	Pairs       []models.Pair `yaml:"pairs"`
	Answer      interface{}   `yaml:"answer"`
	XP          int           `yaml:"xp"`
}

// LoadFile reads and validates the seed file at path.
func LoadFile(path string) ([]*models.Mission, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a seed document and validates every mission in it. Any invalid
// mission fails the whole load.
func Load(r io.Reader) ([]*models.Mission, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: seed file is empty", ErrInvalidMission)
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Missions))
	missions := make([]*models.Mission, 0, len(file.Missions))
	for i, def := range file.Missions {
		mission, err := def.toModel()
		if err != nil {
			return nil, fmt.Errorf("mission #%d (%q): %w", i+1, def.ID, err)
		}
		if _, dup := seen[mission.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate mission id %q", ErrInvalidMission, mission.ID)
		}
		seen[mission.ID] = struct{}{}
		missions = append(missions, mission)
	}
	return missions, nil
}

func (d MissionDef) toModel() (*models.Mission, error) {
	id := strings.TrimSpace(d.ID)
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidMission)
	}
	if strings.ContainsRune(id, '/') {
		return nil, fmt.Errorf("%w: id must not contain '/'", ErrInvalidMission)
	}
	t := puzzle.Type(d.PuzzleType)
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown puzzleType %q", ErrInvalidMission, d.PuzzleType)
	}
	if d.XP < 0 {
		return nil, fmt.Errorf("%w: xp must not be negative", ErrInvalidMission)
	}
	answer := d.Answer
	switch v := answer.(type) {
	case int, float64, bool:
		// Unquoted YAML scalars such as `answer: 2024` decode as numbers.
		answer = fmt.Sprint(v)
	}
	key, err := puzzle.ParseAnswerKey(t, answer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMission, err)
	}
	if key.Empty() {
		return nil, fmt.Errorf("%w: answer is required", ErrInvalidMission)
	}

	return &models.Mission{
		ID:          id,
		Title:       d.Title,
		Category:    d.Category,
		Description: d.Description,
		Hint:        d.Hint,
		Difficulty:  d.Difficulty,
		TimeLimit:   d.TimeLimit,
		PuzzleType:  t,
		Question:    d.Question,
		AnswerKey:   key,
		Options:     d.Options,
		Pairs:       d.Pairs,
		XP:          d.XP,
		CompletedBy: []string{},
	}, nil
}

// Apply upserts missions into repo. Existing completion ledgers are preserved.
func Apply(ctx context.Context, repo db.MissionRepository, missions []*models.Mission, logger *zap.Logger) error {
	for _, m := range missions {
		if err := repo.Upsert(ctx, m); err != nil {
			return fmt.Errorf("seed mission %q: %w", m.ID, err)
		}
		logger.Info("Mission seeded", zap.String("missionID", m.ID), zap.String("title", m.Title))
	}
	return nil
}
