package repository

import (
	"strconv"
	"time"

	"math_quiz_backend/internal/model"
	"math_quiz_backend/pkg/filestore"
)

var rankingHeader = []string{"timestamp", "user_name", "total", "correct", "wrong", "blank", "rate", "score"}

// RankingRepository 사용자당 최대 1행인 랭킹 테이블. 저장은 항상 전체
// 파일 재작성이고 마지막 저장이 이긴다.
type RankingRepository struct {
	table *filestore.Table
}

func NewRankingRepository(path string) *RankingRepository {
	return &RankingRepository{table: filestore.NewTable(path, rankingHeader)}
}

// LoadAll 저장 순서대로 전체 행을 반환. 읽기 실패는 빈 테이블.
func (r *RankingRepository) LoadAll() []model.RankingRow {
	rows, err := r.table.ReadAll()
	if err != nil {
		return nil
	}

	out := make([]model.RankingRow, 0, len(rows))
	for _, row := range rows {
		if len(row) < 8 {
			continue
		}
		ts, _ := time.Parse(time.RFC3339, row[0])
		total, _ := strconv.Atoi(row[2])
		correct, _ := strconv.Atoi(row[3])
		wrong, _ := strconv.Atoi(row[4])
		blank, _ := strconv.Atoi(row[5])
		rate, _ := strconv.ParseFloat(row[6], 64)
		score, _ := strconv.Atoi(row[7])
		out = append(out, model.RankingRow{
			Timestamp: ts,
			UserName:  row[1],
			Total:     total,
			Correct:   correct,
			Wrong:     wrong,
			Blank:     blank,
			Rate:      rate,
			Score:     score,
		})
	}
	return out
}

// Replace 기존 행을 지우고 새 행을 덧붙인 뒤 전체를 다시 쓴다.
func (r *RankingRepository) Replace(row model.RankingRow) error {
	return r.table.Update(func(rows [][]string) [][]string {
		kept := rows[:0]
		for _, existing := range rows {
			if len(existing) >= 2 && existing[1] == row.UserName {
				continue
			}
			kept = append(kept, existing)
		}
		return append(kept, encodeRankingRow(row))
	})
}

// RemoveUser 해당 사용자의 행만 제거
func (r *RankingRepository) RemoveUser(user string) error {
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

// Wipe 테이블 전체 초기화
func (r *RankingRepository) Wipe() error {
	return r.table.Rewrite(nil)
}

func encodeRankingRow(row model.RankingRow) []string {
	return []string{
		row.Timestamp.Format(time.RFC3339),
		row.UserName,
		strconv.Itoa(row.Total),
		strconv.Itoa(row.Correct),
		strconv.Itoa(row.Wrong),
		strconv.Itoa(row.Blank),
		strconv.FormatFloat(row.Rate, 'f', 1, 64),
		strconv.Itoa(row.Score),
	}
}
