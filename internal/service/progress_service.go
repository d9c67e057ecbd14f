package service

import (
	"time"

	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/repository"
	"math_quiz_backend/pkg/monitoring"
)

// ProgressService 풀이 원장 기록과 사용자별 통계 재계산
type ProgressService struct {
	Ledger *repository.LedgerRepository
}

func NewProgressService(ledger *repository.LedgerRepository) *ProgressService {
	return &ProgressService{Ledger: ledger}
}

// Record 채점 결과 한 건을 동기적으로 원장에 내린다. 쓰기가 끝나기
// 전에는 호출자가 진행하지 않는다.
func (s *ProgressService) Record(user, qid string, status model.AnswerStatus, level model.Level) (model.AnswerRecord, error) {
	rec := model.AnswerRecord{
		Timestamp:  time.Now(),
		UserName:   user,
		QuestionID: qid,
		Status:     status,
		Level:      level,
	}
	if err := s.Ledger.Append(rec); err != nil {
		return model.AnswerRecord{}, err
	}
	monitoring.AnswerCounter.WithLabelValues(string(status), string(level)).Inc()
	return rec, nil
}

// Recompute 원장 전체를 스캔해 사용자 통계를 새로 만든다. 기록이 없거나
// 원장을 읽지 못하면 0 통계를 돌려준다.
func (s *ProgressService) Recompute(user string) model.Stats {
	st := model.Stats{}
	for _, rec := range s.Ledger.ForUser(user) {
		st.Total++
		switch rec.Status {
		case model.StatusCorrect:
			st.Correct++
			st.Score += rec.Level.Weight()
		case model.StatusWrong:
			st.Wrong++
		case model.StatusBlank:
			st.Blank++
		}
	}
	st.Rate = model.RateOf(st.Correct, st.Total)
	return st
}

// PurgeUser 관리자 전용 일괄 삭제
func (s *ProgressService) PurgeUser(user string) error {
	return s.Ledger.PurgeUser(user)
}
