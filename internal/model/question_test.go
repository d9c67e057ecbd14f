package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeQuestionID(t *testing.T) {
	q := Question{Level: LevelMedium, Topic: "수열", Question: "$$a_n = ?$$", Answer: "2n"}

	id := MakeQuestionID(q)
	assert.True(t, strings.HasPrefix(id, "q_"))
	assert.Len(t, id, 14)

	// 같은 내용이면 같은 id, 한 칸이라도 다르면 다른 id
	assert.Equal(t, id, MakeQuestionID(q))
	q2 := q
	q2.Answer = "3n"
	assert.NotEqual(t, id, MakeQuestionID(q2))
}

func TestLevelWeight(t *testing.T) {
	assert.Equal(t, 1, LevelEasy.Weight())
	assert.Equal(t, 2, LevelMedium.Weight())
	assert.Equal(t, 3, LevelHard.Weight())
	assert.Equal(t, 4, LevelHardest.Weight())
	assert.Equal(t, 0, LevelAll.Weight())
}

func TestLevelValid(t *testing.T) {
	for _, l := range Levels {
		assert.True(t, l.Valid(), string(l))
	}
	// 전체는 필터 센티널이지 난이도가 아니다
	assert.False(t, LevelAll.Valid())
	assert.False(t, Level("easy").Valid())
}

func TestRateOf(t *testing.T) {
	assert.Equal(t, 0.0, RateOf(0, 0))
	assert.Equal(t, 0.0, RateOf(0, 5))
	assert.Equal(t, 100.0, RateOf(5, 5))
	assert.Equal(t, 33.3, RateOf(1, 3))
	assert.Equal(t, 66.7, RateOf(2, 3))
	assert.Equal(t, 50.0, RateOf(1, 2))
}
