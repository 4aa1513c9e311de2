// Package puzzle holds the answer model for missions: the puzzle variants, their
// answer keys, and the rules that decide whether a submission is correct.
package puzzle

import (
	"errors"
	"fmt"
	"strings"
)

// Type identifies the kind of puzzle a mission presents.
type Type string

const (
	TextInput      Type = "textInput"
	MultipleChoice Type = "multipleChoice"
	Matching       Type = "matching"
)

const pairSeparator = ":"

// ErrInvalidAnswerKey is returned when a stored answer cannot be interpreted for its puzzle type.
var ErrInvalidAnswerKey = errors.New("invalid answer key")

// Valid reports whether t is one of the known puzzle types.
func (t Type) Valid() bool {
	switch t {
	case TextInput, MultipleChoice, Matching:
		return true
	}
	return false
}

// AnswerKey is the canonical answer of a mission, tagged with its puzzle type.
//
//   - TextInput: Values holds one or more acceptable answers.
//   - MultipleChoice: Values holds the exact set of correct options.
//   - Matching: Values holds "left:right" pair tokens.
type AnswerKey struct {
	Type   Type
	Values []string
}

// Empty reports whether the key carries no usable answer.
func (k AnswerKey) Empty() bool {
	for _, v := range k.Values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// StoredValue returns the representation written to the document store: a plain
// string for single-answer text puzzles, a list otherwise.
func (k AnswerKey) StoredValue() interface{} {
	if k.Type == TextInput && len(k.Values) == 1 {
		return k.Values[0]
	}
	out := make([]string, len(k.Values))
	copy(out, k.Values)
	return out
}

// ParseAnswerKey interprets a stored answer value for puzzle type t. The store
// holds either a string or a list of strings depending on the type.
func ParseAnswerKey(t Type, raw interface{}) (AnswerKey, error) {
	if !t.Valid() {
		return AnswerKey{}, fmt.Errorf("%w: unknown puzzle type %q", ErrInvalidAnswerKey, t)
	}

	var values []string
	switch v := raw.(type) {
	case nil:
	case string:
		values = []string{v}
	case []string:
		values = append(values, v...)
	case []interface{}:
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return AnswerKey{}, fmt.Errorf("%w: element %d is %T, want string", ErrInvalidAnswerKey, i, item)
			}
			values = append(values, s)
		}
	default:
		return AnswerKey{}, fmt.Errorf("%w: unsupported value of type %T", ErrInvalidAnswerKey, raw)
	}

	if t == Matching {
		for _, token := range values {
			if !strings.Contains(token, pairSeparator) {
				return AnswerKey{}, fmt.Errorf("%w: matching token %q is not of the form left%sright", ErrInvalidAnswerKey, token, pairSeparator)
			}
		}
	}

	return AnswerKey{Type: t, Values: values}, nil
}

// PairToken builds the "left:right" token used by matching puzzles.
func PairToken(left, right string) string {
	return left + pairSeparator + right
}
