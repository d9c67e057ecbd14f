package service

import (
	"testing"

	"math_quiz_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	g := NewGradingService()

	cases := []struct {
		in   string
		want string
	}{
		{"x = 5 ", "x=5"},
		{"$5$", "5"},
		{"", ""},
		{"  ", ""},
		{"**BOLD**", "bold"},
		{"$$\\frac{1}{2}$$", "\\frac{1}{2}"},
		{"3 . 1 4", "3.14"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, g.Normalize(tc.in), "Normalize(%q)", tc.in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	g := NewGradingService()

	inputs := []string{"x = 5 ", "$5$", "", "  a B c  ", "$$y=2x$$", "** $ **"}
	for _, in := range inputs {
		once := g.Normalize(in)
		assert.Equal(t, once, g.Normalize(once), "Normalize(%q)", in)
	}
}

func TestGrade(t *testing.T) {
	g := NewGradingService()

	assert.Equal(t, model.StatusCorrect, g.Grade("x = 5", "$x=5$"))
	assert.Equal(t, model.StatusCorrect, g.Grade("ABC", "abc"))
	assert.Equal(t, model.StatusWrong, g.Grade("6", "5"))
	assert.Equal(t, model.StatusBlank, g.Grade("", "5"))
	assert.Equal(t, model.StatusBlank, g.Grade("   ", "5"))
	// 빈 입력은 정답이 비어 있어도 blank
	assert.Equal(t, model.StatusBlank, g.Grade("", ""))
}
