package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswerKey(t *testing.T) {
	t.Run("single text answer", func(t *testing.T) {
		key, err := ParseAnswerKey(TextInput, "ryan majd")
		require.NoError(t, err)
		assert.Equal(t, AnswerKey{Type: TextInput, Values: []string{"ryan majd"}}, key)
		assert.Equal(t, "ryan majd", key.StoredValue())
	})

	t.Run("list decoded from the document store", func(t *testing.T) {
		key, err := ParseAnswerKey(MultipleChoice, []interface{}{"leadership", "community"})
		require.NoError(t, err)
		assert.Equal(t, []string{"leadership", "community"}, key.Values)
		assert.Equal(t, []string{"leadership", "community"}, key.StoredValue())
	})

	t.Run("missing answer yields an empty key", func(t *testing.T) {
		key, err := ParseAnswerKey(TextInput, nil)
		require.NoError(t, err)
		assert.True(t, key.Empty())
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := ParseAnswerKey(Type("riddle"), "x")
		assert.ErrorIs(t, err, ErrInvalidAnswerKey)
	})

	t.Run("non string element", func(t *testing.T) {
		_, err := ParseAnswerKey(MultipleChoice, []interface{}{"a", 3})
		assert.ErrorIs(t, err, ErrInvalidAnswerKey)
	})

	t.Run("unsupported value", func(t *testing.T) {
		_, err := ParseAnswerKey(TextInput, 2024)
		assert.ErrorIs(t, err, ErrInvalidAnswerKey)
	})

	t.Run("matching token without separator", func(t *testing.T) {
		_, err := ParseAnswerKey(Matching, []string{"Ryan Majd President"})
		assert.ErrorIs(t, err, ErrInvalidAnswerKey)
	})
}

func TestTypeValid(t *testing.T) {
	assert.True(t, TextInput.Valid())
	assert.True(t, MultipleChoice.Valid())
	assert.True(t, Matching.Valid())
	assert.False(t, Type("").Valid())
	assert.False(t, Type("TextInput").Valid())
}
