package service

import (
	"strings"

	"math_quiz_backend/internal/model"
)

// GradingService 자유 입력 답안의 정규화와 채점. 순수 함수만 있고
// 부작용이 없다.
type GradingService struct{}

func NewGradingService() *GradingService {
	return &GradingService{}
}

var answerCleaner = strings.NewReplacer(" ", "", "\t", "", "$", "", "**", "")

// Normalize 간단 채점용 정규화: 공백/달러/별표 제거 + 소문자.
// 멱등이다: Normalize(Normalize(x)) == Normalize(x).
func (s *GradingService) Normalize(raw string) string {
	return strings.TrimSpace(strings.ToLower(answerCleaner.Replace(raw)))
}

// Grade 정규화 후 비교. 빈 입력은 blank, 일치하면 correct, 그 외 wrong.
func (s *GradingService) Grade(input, truth string) model.AnswerStatus {
	normalized := s.Normalize(input)
	if normalized == "" {
		return model.StatusBlank
	}
	if normalized == s.Normalize(truth) {
		return model.StatusCorrect
	}
	return model.StatusWrong
}
