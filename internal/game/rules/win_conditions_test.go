package rules

import (
	"testing"

	"github.com/mitchelldurbincs/carcassonne/internal/testutil"
	"github.com/stretchr/testify/assert"
)

type stubPlayer struct {
	id, score int
}

func (p stubPlayer) GetID() int    { return p.id }
func (p stubPlayer) GetScore() int { return p.score }

func TestWinConditionChecker_Winners(t *testing.T) {
	wc := NewWinConditionChecker(testutil.NopLogger())

	tests := []struct {
		name     string
		players  []Player
		expected []int
	}{
		{"SingleLeader", []Player{stubPlayer{0, 12}, stubPlayer{1, 30}, stubPlayer{2, 7}}, []int{1}},
		{"Tie", []Player{stubPlayer{0, 20}, stubPlayer{1, 5}, stubPlayer{2, 20}}, []int{0, 2}},
		{"AllZero", []Player{stubPlayer{0, 0}, stubPlayer{1, 0}}, []int{0, 1}},
		{"Solo", []Player{stubPlayer{0, 3}}, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, wc.Winners(tt.players))
		})
	}

	assert.Nil(t, wc.Winners(nil))
}
