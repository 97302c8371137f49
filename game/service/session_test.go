package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wricardo/lonely-knight/game/board"
)

func TestSession_RebuildReplaysTerrain(t *testing.T) {
	sess, err := NewSession("ab12", "classic", board.DefaultBoardConfig())
	require.NoError(t, err)

	require.NoError(t, sess.ApplyTerrain([]TerrainChange{
		{X: 1, Y: 1, Terrain: "T"},
		{X: 6, Y: 6, Terrain: "teleport"},
		{X: 3, Y: 3, Terrain: "W"},
	}))
	require.Len(t, sess.TerrainChanges, 3)
	assert.Equal(t, "teleport", sess.TerrainChanges[0].Terrain)

	before := sess.Board.Rows()
	require.NoError(t, sess.Rebuild())
	assert.Equal(t, before, sess.Board.Rows())
	assert.Equal(t, []board.Coordinate{{X: 1, Y: 1}, {X: 6, Y: 6}}, sess.Board.Teleports())

	sess.ResetTerrain()
	assert.Empty(t, sess.TerrainChanges)
	assert.Empty(t, sess.Board.Teleports())
}

func TestSession_RecordNumbersAndCaps(t *testing.T) {
	sess, err := NewSession("ab12", "classic", board.DefaultBoardConfig())
	require.NoError(t, err)

	for i := 0; i < MaxQueryHistory+5; i++ {
		sess.Record(QueryRecord{Kind: QueryPath})
	}

	require.Len(t, sess.Queries, MaxQueryHistory)
	assert.Equal(t, 6, sess.Queries[0].Number)
	assert.Equal(t, MaxQueryHistory+5, sess.Queries[MaxQueryHistory-1].Number)
	assert.NotZero(t, sess.Queries[0].Timestamp)
}

func TestNewSession_InvalidConfig(t *testing.T) {
	config := board.DefaultBoardConfig()
	config.Width = 0

	_, err := NewSession("ab12", "classic", config)
	assert.Error(t, err)
}
