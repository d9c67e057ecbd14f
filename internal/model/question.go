package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Level 문제 난이도
type Level string

const (
	LevelEasy    Level = "하"
	LevelMedium  Level = "중"
	LevelHard    Level = "상"
	LevelHardest Level = "최상"
	LevelAll     Level = "전체" // 필터 미적용 센티널
)

var Levels = []Level{LevelEasy, LevelMedium, LevelHard, LevelHardest}

// LevelWeight 정답 1건당 점수 가중치
func (l Level) Weight() int {
	switch l {
	case LevelEasy:
		return 1
	case LevelMedium:
		return 2
	case LevelHard:
		return 3
	case LevelHardest:
		return 4
	}
	return 0
}

func (l Level) Valid() bool {
	for _, v := range Levels {
		if l == v {
			return true
		}
	}
	return false
}

// swagger:model Question
type Question struct {
	ID       string   `json:"id"`
	Level    Level    `json:"level"`
	Topic    string   `json:"topic"`
	Question string   `json:"question"` // LaTeX($$...$$) 원문 그대로 전달
	Answer   string   `json:"answer"`
	Images   []string `json:"images,omitempty"`
}

// MakeQuestionID 시트에 id 열이 없거나 비어 있을 때 내용 해시로 합성
func MakeQuestionID(q Question) string {
	h := sha256.Sum256([]byte(strings.Join([]string{
		string(q.Level), q.Topic, q.Question, q.Answer,
	}, "|")))
	return "q_" + hex.EncodeToString(h[:])[:12]
}
