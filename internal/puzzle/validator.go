package puzzle

import "sort"

// Answer is what a user submits for a mission. Text carries the free-form answer
// of a text puzzle; Selections carries chosen options or "left:right" pairs.
type Answer struct {
	Text       string
	Selections []string
}

// Empty reports whether the answer has no content at all.
func (a Answer) Empty() bool {
	if Normalize(a.Text) != "" {
		return false
	}
	for _, s := range a.Selections {
		if Normalize(s) != "" {
			return false
		}
	}
	return true
}

// Validate decides whether submitted is a correct answer for a puzzle of type t
// with the given key. It never reports partial credit: a missing key, an empty
// submission, or a key of another puzzle type is simply incorrect.
func Validate(t Type, key AnswerKey, submitted Answer) bool {
	if key.Type != t || key.Empty() || submitted.Empty() {
		return false
	}

	switch t {
	case TextInput:
		return validateText(key.Values, submitted.Text)
	case MultipleChoice:
		return validateChoice(key.Values, submitted.Selections)
	case Matching:
		return validateMatching(key.Values, submitted.Selections)
	}
	return false
}

func validateText(accepted []string, text string) bool {
	got := Normalize(text)
	if got == "" {
		return false
	}
	for _, want := range accepted {
		if Normalize(want) == got {
			return true
		}
	}
	return false
}

// validateChoice requires the selected options to equal the key as a set, with
// the same cardinality: a repeated or blank selection is an extra selection.
func validateChoice(key, selected []string) bool {
	want := toSet(normalizeAll(key, Normalize))
	delete(want, "")
	if len(want) == 0 || len(selected) != len(want) {
		return false
	}

	seen := make(map[string]struct{}, len(selected))
	for _, option := range normalizeAll(selected, Normalize) {
		if option == "" {
			return false
		}
		if _, dup := seen[option]; dup {
			return false
		}
		if _, ok := want[option]; !ok {
			return false
		}
		seen[option] = struct{}{}
	}
	return true
}

// validateMatching compares pair tokens independent of submission order.
func validateMatching(key, pairs []string) bool {
	if len(key) != len(pairs) {
		return false
	}
	want := normalizeAll(key, normalizePair)
	got := normalizeAll(pairs, normalizePair)
	sort.Strings(want)
	sort.Strings(got)
	for i := range want {
		if want[i] != got[i] {
			return false
		}
	}
	return true
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
