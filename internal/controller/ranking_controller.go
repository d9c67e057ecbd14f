package controller

import (
	"math_quiz_backend/internal/service"
	"math_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RankingController struct {
	RankingService  *service.RankingService
	ProgressService *service.ProgressService
}

func NewRankingController(rankingService *service.RankingService, progressService *service.ProgressService) *RankingController {
	return &RankingController{
		RankingService:  rankingService,
		ProgressService: progressService,
	}
}

// Leaderboard godoc
// @Summary 랭킹 조회
// @Description correct 내림차순, 동률은 같은 순위. 저장소가 없으면 빈 목록.
// @Tags 랭킹
// @Produce  json
// @Success 200 {object} util.Response{data=object}
// @Router /api/ranking [get]
func (c *RankingController) Leaderboard(ctx *gin.Context) {
	util.Success(ctx, gin.H{"ranking": c.RankingService.LoadSorted()})
}

// Save godoc
// @Summary 내 랭킹 저장
// @Description 원장 전체에서 내 통계를 재계산해 랭킹 행을 통째로 교체한다
// @Tags 랭킹
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response
// @Router /api/ranking/save [post]
func (c *RankingController) Save(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats := c.ProgressService.Recompute(claims.Name)
	if err := c.RankingService.Save(claims.Name, stats); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"stats": stats})
}
