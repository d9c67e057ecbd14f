package model

import "time"

// Stage 한 sitting이 머무는 화면 상태. 문자열 분기 대신 닫힌 열거형과
// 전이 테이블로만 이동한다.
type Stage string

const (
	StageHome         Stage = "home"
	StageQuiz         Stage = "quiz"
	StageFeedback     Stage = "feedback"
	StageResult       Stage = "result"
	StageReviewSelect Stage = "review_select"
	StageAdmin        Stage = "admin"
)

// stageTransitions 허용되는 전이만 나열. admin은 사이드 패널 성격이라
// 어느 상태에서든 진입 가능하고 home으로만 복귀한다.
var stageTransitions = map[Stage][]Stage{
	StageHome:         {StageQuiz, StageAdmin},
	StageQuiz:         {StageQuiz, StageFeedback, StageResult, StageReviewSelect, StageHome, StageAdmin},
	StageFeedback:     {StageResult, StageHome, StageAdmin},
	StageResult:       {StageReviewSelect, StageHome, StageAdmin},
	StageReviewSelect: {StageQuiz, StageHome, StageAdmin},
	StageAdmin:        {StageHome},
}

func (s Stage) CanTransition(to Stage) bool {
	for _, t := range stageTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// Filter 현재 sitting에 걸려 있는 출제 조건
type Filter struct {
	Level   Level  `json:"level"`
	Keyword string `json:"keyword"`
}

// Sitting 접속 한 회차 동안만 사는 작업 메모리. 원장에 내려간 기록을
// 제외하면 회차 종료와 함께 버려진다.
type Sitting struct {
	ID            string          `json:"id"`
	UserName      string          `json:"user_name"`
	Stage         Stage           `json:"stage"`
	Filter        Filter          `json:"filter"`
	Review        bool            `json:"review"` // 복습 모드 여부
	Seen          map[string]bool `json:"-"`      // 이번 회차에 출제된 문제 id
	Log           []AnswerRecord  `json:"-"`      // 이번 회차의 채점 기록
	CurrentQID    string          `json:"-"`
	AdminUnlocked bool            `json:"-"`
	StartedAt     time.Time       `json:"started_at"`
}

// Tally 이번 회차의 채점 기록만 집계한다(원장 전체 아님).
func (s *Sitting) Tally() Stats {
	st := Stats{}
	for _, r := range s.Log {
		st.Total++
		switch r.Status {
		case StatusCorrect:
			st.Correct++
			st.Score += r.Level.Weight()
		case StatusWrong:
			st.Wrong++
		case StatusBlank:
			st.Blank++
		}
	}
	st.Rate = RateOf(st.Correct, st.Total)
	return st
}

// SeenIDs 복습 선택 화면에서 보여줄 id 목록
func (s *Sitting) SeenIDs() []string {
	ids := make([]string, 0, len(s.Seen))
	for id := range s.Seen {
		ids = append(ids, id)
	}
	return ids
}
