package model

import "time"

// AnswerStatus 채점 결과
type AnswerStatus string

const (
	StatusCorrect AnswerStatus = "correct"
	StatusWrong   AnswerStatus = "wrong"
	StatusBlank   AnswerStatus = "blank"
)

// AnswerRecord 원장(progress ledger)의 한 행. 추가 전용, 수정/삭제 없음
// (관리자 일괄 삭제 제외).
type AnswerRecord struct {
	Timestamp  time.Time    `json:"timestamp"`
	UserName   string       `json:"user_name"`
	QuestionID string       `json:"qid"`
	Status     AnswerStatus `json:"status"`
	Level      Level        `json:"level"`
}

// Stats 원장 전체 스캔으로 재계산되는 사용자별 집계
type Stats struct {
	Total   int     `json:"total"`
	Correct int     `json:"correct"`
	Wrong   int     `json:"wrong"`
	Blank   int     `json:"blank"`
	Rate    float64 `json:"rate"`  // 정답률(%), 소수 1자리
	Score   int     `json:"score"` // 정답의 난이도 가중치 합
}

// RateOf 정답률(%)을 소수 첫째 자리에서 반올림해 반환
func RateOf(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(int(float64(correct)/float64(total)*1000+0.5)) / 10
}
