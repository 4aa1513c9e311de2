package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissionCompletedByUser(t *testing.T) {
	m := &Mission{ID: "1", CompletedBy: []string{"a@uga.edu", "b@uga.edu"}}

	assert.True(t, m.CompletedByUser("b@uga.edu"))
	assert.False(t, m.CompletedByUser("c@uga.edu"))
	assert.False(t, m.CompletedByUser(""))
	assert.False(t, (&Mission{}).CompletedByUser("a@uga.edu"))
}
