package service

import (
	"sort"
	"time"

	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/repository"
)

// RankingService 랭킹 테이블 저장/조회
type RankingService struct {
	Ranking *repository.RankingRepository
}

func NewRankingService(ranking *repository.RankingRepository) *RankingService {
	return &RankingService{Ranking: ranking}
}

// Save 통계로 새 행을 만들어 사용자의 기존 행을 완전히 대체한다.
func (s *RankingService) Save(user string, stats model.Stats) error {
	return s.Ranking.Replace(model.RankingRow{
		Timestamp: time.Now(),
		UserName:  user,
		Total:     stats.Total,
		Correct:   stats.Correct,
		Wrong:     stats.Wrong,
		Blank:     stats.Blank,
		Rate:      stats.Rate,
		Score:     stats.Score,
	})
}

// LoadSorted correct 내림차순 안정 정렬 후 1위부터 순위를 부여한다.
// 동률은 저장 순서를 유지하며 같은 순위를 받는다(dense rank).
// 저장소가 없거나 읽을 수 없으면 빈 목록.
func (s *RankingService) LoadSorted() []model.RankingRow {
	rows := s.Ranking.LoadAll()
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Correct > rows[j].Correct
	})

	rank := 0
	for i := range rows {
		if i == 0 || rows[i].Correct != rows[i-1].Correct {
			rank++
		}
		rows[i].Rank = rank
	}
	return rows
}

func (s *RankingService) RemoveUser(user string) error {
	return s.Ranking.RemoveUser(user)
}

func (s *RankingService) Wipe() error {
	return s.Ranking.Wipe()
}
