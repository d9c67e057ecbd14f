package service

import (
	"os"
	"path/filepath"
	"testing"

	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProgressService(t *testing.T) *ProgressService {
	t.Helper()
	path := filepath.Join(t.TempDir(), "progress.csv")
	return NewProgressService(repository.NewLedgerRepository(path))
}

func TestRecordIncrementsTotalByOne(t *testing.T) {
	s := newTestProgressService(t)

	before := s.Recompute("u1")
	assert.Equal(t, 0, before.Total)

	_, err := s.Record("u1", "q1", model.StatusCorrect, model.LevelEasy)
	require.NoError(t, err)

	after := s.Recompute("u1")
	assert.Equal(t, before.Total+1, after.Total)
	assert.Equal(t, after.Total, after.Correct+after.Wrong+after.Blank)
}

func TestRecomputeScenario(t *testing.T) {
	s := newTestProgressService(t)

	_, err := s.Record("u1", "q1", model.StatusCorrect, model.LevelEasy)
	require.NoError(t, err)
	_, err = s.Record("u1", "q2", model.StatusWrong, model.LevelMedium)
	require.NoError(t, err)
	_, err = s.Record("u1", "q3", model.StatusBlank, model.LevelHard)
	require.NoError(t, err)
	// 다른 사용자 기록은 집계에 섞이지 않는다
	_, err = s.Record("u2", "q1", model.StatusCorrect, model.LevelHardest)
	require.NoError(t, err)

	st := s.Recompute("u1")
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 1, st.Correct)
	assert.Equal(t, 1, st.Wrong)
	assert.Equal(t, 1, st.Blank)
	assert.Equal(t, 33.3, st.Rate)
	assert.Equal(t, 1, st.Score) // 하 난이도 정답 가중치 1
}

func TestRecomputeScoreWeights(t *testing.T) {
	s := newTestProgressService(t)

	_, err := s.Record("u1", "q1", model.StatusCorrect, model.LevelMedium)
	require.NoError(t, err)
	_, err = s.Record("u1", "q2", model.StatusCorrect, model.LevelHardest)
	require.NoError(t, err)
	// 오답은 점수에 들어가지 않는다
	_, err = s.Record("u1", "q3", model.StatusWrong, model.LevelHardest)
	require.NoError(t, err)

	st := s.Recompute("u1")
	assert.Equal(t, 6, st.Score) // 중(2) + 최상(4)
}

func TestRecomputeCorruptLedgerIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.csv")
	// 따옴표가 깨진 CSV
	require.NoError(t, os.WriteFile(path, []byte("timestamp,user_name,qid,status,level\n\"broken\n"), 0644))

	s := NewProgressService(repository.NewLedgerRepository(path))
	st := s.Recompute("u1")
	assert.Equal(t, model.Stats{}, st)
}

func TestPurgeUser(t *testing.T) {
	s := newTestProgressService(t)

	_, err := s.Record("u1", "q1", model.StatusCorrect, model.LevelEasy)
	require.NoError(t, err)
	_, err = s.Record("u2", "q1", model.StatusWrong, model.LevelEasy)
	require.NoError(t, err)

	require.NoError(t, s.PurgeUser("u1"))

	assert.Equal(t, 0, s.Recompute("u1").Total)
	assert.Equal(t, 1, s.Recompute("u2").Total)
}
