package model

import "time"

// RankingRow 랭킹 테이블 한 행. 사용자당 최대 1행, 저장 시 전체 교체.
type RankingRow struct {
	Timestamp time.Time `json:"timestamp"`
	UserName  string    `json:"user_name"`
	Total     int       `json:"total"`
	Correct   int       `json:"correct"`
	Wrong     int       `json:"wrong"`
	Blank     int       `json:"blank"`
	Rate      float64   `json:"rate"`
	Score     int       `json:"score"`
	Rank      int       `json:"rank"` // 조회 시 부여(1부터, 동률은 같은 순위)
}
