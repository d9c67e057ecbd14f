package service

import (
	"path/filepath"
	"testing"

	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRankingService(t *testing.T) *RankingService {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ranking.csv")
	return NewRankingService(repository.NewRankingRepository(path))
}

func TestSaveReplacesRow(t *testing.T) {
	s := newTestRankingService(t)

	require.NoError(t, s.Save("u1", model.Stats{Total: 5, Correct: 3, Wrong: 2, Rate: 60.0, Score: 4}))
	require.NoError(t, s.Save("u1", model.Stats{Total: 8, Correct: 6, Wrong: 2, Rate: 75.0, Score: 9}))

	rows := s.LoadSorted()
	require.Len(t, rows, 1)
	assert.Equal(t, "u1", rows[0].UserName)
	assert.Equal(t, 8, rows[0].Total)
	assert.Equal(t, 6, rows[0].Correct)
	assert.Equal(t, 75.0, rows[0].Rate)
	assert.Equal(t, 9, rows[0].Score)
}

func TestLoadSortedOrderAndRank(t *testing.T) {
	s := newTestRankingService(t)

	require.NoError(t, s.Save("a", model.Stats{Total: 4, Correct: 3}))
	require.NoError(t, s.Save("b", model.Stats{Total: 6, Correct: 5}))

	rows := s.LoadSorted()
	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].UserName)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, "a", rows[1].UserName)
	assert.Equal(t, 2, rows[1].Rank)
}

func TestLoadSortedTiesShareRankKeepOrder(t *testing.T) {
	s := newTestRankingService(t)

	require.NoError(t, s.Save("first", model.Stats{Total: 3, Correct: 2}))
	require.NoError(t, s.Save("second", model.Stats{Total: 5, Correct: 2}))
	require.NoError(t, s.Save("third", model.Stats{Total: 9, Correct: 7}))

	rows := s.LoadSorted()
	require.Len(t, rows, 3)
	assert.Equal(t, "third", rows[0].UserName)
	assert.Equal(t, 1, rows[0].Rank)
	// 동률은 저장 순서 유지 + 같은 순위
	assert.Equal(t, "first", rows[1].UserName)
	assert.Equal(t, 2, rows[1].Rank)
	assert.Equal(t, "second", rows[2].UserName)
	assert.Equal(t, 2, rows[2].Rank)
}

func TestLoadSortedMissingFileIsEmpty(t *testing.T) {
	s := newTestRankingService(t)
	assert.Empty(t, s.LoadSorted())
}

func TestRemoveUserAndWipe(t *testing.T) {
	s := newTestRankingService(t)

	require.NoError(t, s.Save("u1", model.Stats{Correct: 1}))
	require.NoError(t, s.Save("u2", model.Stats{Correct: 2}))

	require.NoError(t, s.RemoveUser("u1"))
	rows := s.LoadSorted()
	require.Len(t, rows, 1)
	assert.Equal(t, "u2", rows[0].UserName)

	require.NoError(t, s.Wipe())
	assert.Empty(t, s.LoadSorted())
}
