package repository

import (
	"time"

	"math_quiz_backend/internal/model"
	"math_quiz_backend/pkg/filestore"
)

var ledgerHeader = []string{"timestamp", "user_name", "qid", "status", "level"}

// LedgerRepository 풀이 원장. 추가 전용이며 관리자 일괄 삭제 외에는
// 과거 기록을 고치지 않는다.
type LedgerRepository struct {
	table *filestore.Table
}

func NewLedgerRepository(path string) *LedgerRepository {
	return &LedgerRepository{table: filestore.NewTable(path, ledgerHeader)}
}

// Append 채점 1건당 정확히 한 행을 기록한다. 저장소에 쓸 수 없을 때만
// 에러를 돌려준다.
func (r *LedgerRepository) Append(rec model.AnswerRecord) error {
	return r.table.Append([]string{
		rec.Timestamp.Format(time.RFC3339),
		rec.UserName,
		rec.QuestionID,
		string(rec.Status),
		string(rec.Level),
	})
}

// All 원장 전체. 파일이 없거나 깨져 있으면 빈 결과로 취급한다.
func (r *LedgerRepository) All() []model.AnswerRecord {
	rows, err := r.table.ReadAll()
	if err != nil {
		return nil
	}

	records := make([]model.AnswerRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) < 5 {
			continue
		}
		ts, _ := time.Parse(time.RFC3339, row[0])
		records = append(records, model.AnswerRecord{
			Timestamp:  ts,
			UserName:   row[1],
			QuestionID: row[2],
			Status:     model.AnswerStatus(row[3]),
			Level:      model.Level(row[4]),
		})
	}
	return records
}

// ForUser 특정 사용자의 기록만 반환
func (r *LedgerRepository) ForUser(user string) []model.AnswerRecord {
	var out []model.AnswerRecord
	for _, rec := range r.All() {
		if rec.UserName == user {
			out = append(out, rec)
		}
	}
	return out
}

// PurgeUser 해당 사용자의 행을 제외하고 파일을 다시 쓴다.
func (r *LedgerRepository) PurgeUser(user string) error {
	return r.table.Update(func(rows [][]string) [][]string {
		kept := rows[:0]
		for _, row := range rows {
			if len(row) >= 2 && row[1] == user {
				continue
			}
			kept = append(kept, row)
		}
		return kept
	})
}
