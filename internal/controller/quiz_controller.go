package controller

import (
	"errors"

	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/service"
	"math_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuestionService *service.QuestionService
}

func NewQuizController(questionService *service.QuestionService) *QuizController {
	return &QuizController{QuestionService: questionService}
}

// swagger:model ReloadRequest
type ReloadRequest struct {
	SheetURL string `json:"sheet_url"`
}

// Reload godoc
// @Summary 문제 시트 로드
// @Description CSV 링크에서 문제를 불러온다. 링크 생략 시 설정값 사용.
// 이미 같은 링크가 캐시돼 있으면 다시 받지 않는다.
// @Tags 퀴즈
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ReloadRequest false "시트 링크"
// @Success 200 {object} util.Response{data=object} "로드된 문항 수"
// @Failure 400 {object} util.Response "링크 없음 또는 필수 열 누락"
// @Failure 502 {object} util.Response "시트 요청 실패"
// @Router /api/quiz/reload [post]
func (c *QuizController) Reload(ctx *gin.Context) {
	var req ReloadRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	count, err := c.QuestionService.Load(ctx.Request.Context(), req.SheetURL)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSheetEmpty), errors.Is(err, util.ErrMissingColumns):
			util.BadRequest(ctx, err.Error())
		default:
			// 가져오기 실패. 이전 문제 집합은 그대로 유지된다.
			util.Error(ctx, 502, "로드 실패: "+err.Error())
		}
		return
	}

	util.Success(ctx, gin.H{"count": count})
}

// Levels godoc
// @Summary 난이도 목록
// @Description 필터에 쓸 수 있는 난이도 값(센티널 포함)
// @Tags 퀴즈
// @Produce  json
// @Success 200 {object} util.Response{data=object}
// @Router /api/quiz/levels [get]
func (c *QuizController) Levels(ctx *gin.Context) {
	levels := append([]model.Level{model.LevelAll}, model.Levels...)
	util.Success(ctx, gin.H{
		"levels": levels,
		"loaded": c.QuestionService.Loaded(),
	})
}
