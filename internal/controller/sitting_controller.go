package controller

import (
	"errors"

	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/service"
	"math_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SittingController struct {
	SittingService *service.SittingService
}

func NewSittingController(sittingService *service.SittingService) *SittingController {
	return &SittingController{SittingService: sittingService}
}

// swagger:model StartSittingRequest
type StartSittingRequest struct {
	Level   string `json:"level"`
	Keyword string `json:"keyword"`
}

// Start godoc
// @Summary 풀이 시작 (home→quiz)
// @Description 난이도/키워드 필터로 회차를 시작하고 첫 문제를 뽑는다.
// 조건에 맞는 문제가 없으면 회차를 만들지 않는다.
// @Tags 회차
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body StartSittingRequest false "출제 조건"
// @Success 201 {object} util.Response{data=object}
// @Failure 409 {object} util.Response "후보 없음"
// @Router /api/sittings [post]
func (c *SittingController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartSittingRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	sitting, question, err := c.SittingService.Start(claims.Name, model.Level(req.Level), req.Keyword)
	if err != nil {
		util.Error(ctx, 409, err.Error())
		return
	}

	util.Created(ctx, gin.H{"sitting": sitting, "question": question})
}

// Get godoc
// @Summary 회차 상태
// @Description 현재 화면 단계와 이번 회차 집계
// @Tags 회차
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "sitting id"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/sittings/{id} [get]
func (c *SittingController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sitting, err := c.SittingService.Get(ctx.Param("id"), claims.Name)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, gin.H{"sitting": sitting, "tally": sitting.Tally})
}

// Question godoc
// @Summary 현재 문제
// @Description 현재 문제를 돌려준다. 필터 밖으로 밀려났으면 새로 뽑는다.
// @Tags 회차
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "sitting id"
// @Success 200 {object} util.Response{data=service.QuestionView}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "후보 소진"
// @Router /api/sittings/{id}/question [get]
func (c *SittingController) Question(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	question, err := c.SittingService.CurrentQuestion(ctx.Param("id"), claims.Name)
	if err != nil {
		c.sittingError(ctx, err)
		return
	}

	util.Success(ctx, question)
}

// swagger:model AnswerRequest
type AnswerRequest struct {
	Answer       string `json:"answer"`
	Action       string `json:"action" binding:"omitempty,oneof=next finish"`
	WithFeedback bool   `json:"with_feedback"`
}

// Answer godoc
// @Summary 답안 제출
// @Description 현재 문제를 채점해 원장에 기록하고 action대로 이동한다.
// next면 새 문제(소진 시 result), finish면 결과(with_feedback이면 feedback 경유).
// @Tags 회차
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "sitting id"
// @Param   body body AnswerRequest true "답안"
// @Success 200 {object} util.Response{data=service.AnswerOutcome}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "quiz 화면이 아님"
// @Router /api/sittings/{id}/answer [post]
func (c *SittingController) Answer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Action == "" {
		req.Action = service.ActionNext
	}

	outcome, err := c.SittingService.Answer(ctx.Param("id"), claims.Name, req.Answer, req.Action, req.WithFeedback)
	if err != nil {
		c.sittingError(ctx, err)
		return
	}

	util.Success(ctx, outcome)
}

// Feedback godoc
// @Summary 피드백 확인 (feedback→result)
// @Tags 회차
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "sitting id"
// @Success 200 {object} util.Response{data=object}
// @Router /api/sittings/{id}/feedback [post]
func (c *SittingController) Feedback(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sitting, err := c.SittingService.AcknowledgeFeedback(ctx.Param("id"), claims.Name)
	if err != nil {
		c.sittingError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"stage": sitting.Stage, "tally": sitting.Tally})
}

// ReviewSelect godoc
// @Summary 복습 선택 화면 진입
// @Description 이번 회차에 푼 문제 id 목록을 돌려준다
// @Tags 회차
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "sitting id"
// @Success 200 {object} util.Response{data=object}
// @Failure 409 {object} util.Response "복습할 문제 없음"
// @Router /api/sittings/{id}/review-select [post]
func (c *SittingController) ReviewSelect(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	ids, err := c.SittingService.EnterReviewSelect(ctx.Param("id"), claims.Name)
	if err != nil {
		c.sittingError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"seen": ids})
}

// swagger:model ReviewRequest
type ReviewRequest struct {
	QuestionID string `json:"qid" binding:"required"`
}

// Review godoc
// @Summary 복습 문제 선택 (review_select→quiz)
// @Description 이미 푼 문제 id를 지정해 다시 푼다. 잘못된 id면 화면 유지.
// @Tags 회차
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "sitting id"
// @Param   body body ReviewRequest true "문제 id"
// @Success 200 {object} util.Response{data=service.QuestionView}
// @Failure 400 {object} util.Response "알 수 없는 id"
// @Router /api/sittings/{id}/review [post]
func (c *SittingController) Review(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.SittingService.SelectReview(ctx.Param("id"), claims.Name, req.QuestionID)
	if err != nil {
		c.sittingError(ctx, err)
		return
	}

	util.Success(ctx, question)
}

// Home godoc
// @Summary 처음으로
// @Description 채점 없이 홈 화면으로 돌아간다
// @Tags 회차
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "sitting id"
// @Success 200 {object} util.Response{data=object}
// @Router /api/sittings/{id}/home [post]
func (c *SittingController) Home(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sitting, err := c.SittingService.GoHome(ctx.Param("id"), claims.Name)
	if err != nil {
		c.sittingError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"stage": sitting.Stage})
}

// sittingError 회차 쪽 에러를 상태 코드로 변환. 한 번만 알리고 재시도는
// 하지 않는다.
func (c *SittingController) sittingError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSittingNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrUnknownQuestion):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrPoolExhausted),
		errors.Is(err, util.ErrNothingToReview),
		errors.Is(err, util.ErrBadTransition):
		util.Error(ctx, 409, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
