package controller

import (
	"strings"

	"math_quiz_backend/internal/service"
	"math_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AdminService   *service.AdminService
	SittingService *service.SittingService
}

func NewAdminController(adminService *service.AdminService, sittingService *service.SittingService) *AdminController {
	return &AdminController{
		AdminService:   adminService,
		SittingService: sittingService,
	}
}

// swagger:model AdminUnlockRequest
type AdminUnlockRequest struct {
	Password  string `json:"password" binding:"required"`
	SittingID string `json:"sitting_id"`
}

// Unlock godoc
// @Summary 관리자 인증
// @Description 비밀번호 확인 후 단명 관리자 토큰을 발급한다. sitting_id를
// 주면 해당 회차에 관리자 해제 표시를 남긴다.
// @Tags 관리자
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AdminUnlockRequest true "관리자 비밀번호"
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response "비밀번호 불일치"
// @Router /api/admin/unlock [post]
func (c *AdminController) Unlock(ctx *gin.Context) {
	var req AdminUnlockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AdminService.Unlock(req.Password)
	if err != nil {
		util.Error(ctx, 401, err.Error())
		return
	}

	if claims := util.GetUserFromContext(ctx); claims != nil && req.SittingID != "" {
		// 실패해도 무시: 회차가 이미 끝났을 수 있다
		c.SittingService.MarkAdminUnlocked(req.SittingID, claims.Name)
	}

	util.Success(ctx, gin.H{"admin_token": token})
}

// InvalidateCache godoc
// @Summary 문제 캐시 무효화
// @Description 다음 로드가 시트를 강제로 다시 받게 한다
// @Tags 관리자
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/cache/invalidate [post]
func (c *AdminController) InvalidateCache(ctx *gin.Context) {
	c.AdminService.InvalidateCache()
	util.Success(ctx, gin.H{"invalidated": true})
}

// PurgeUser godoc
// @Summary 사용자 일괄 삭제
// @Description 지정 사용자의 원장 기록, 랭킹 행, 계정을 모두 지운다
// @Tags 관리자
// @Produce  json
// @Security ApiKeyAuth
// @Param   name path string true "사용자 이름"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "이름 없음"
// @Router /api/admin/users/{name} [delete]
func (c *AdminController) PurgeUser(ctx *gin.Context) {
	name := strings.TrimSpace(ctx.Param("name"))
	if name == "" {
		util.BadRequest(ctx, util.ErrBlankField.Error())
		return
	}

	if err := c.AdminService.PurgeUser(name); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"purged": name})
}

// WipeRanking godoc
// @Summary 랭킹 초기화
// @Tags 관리자
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/ranking [delete]
func (c *AdminController) WipeRanking(ctx *gin.Context) {
	if err := c.AdminService.WipeRanking(); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"wiped": true})
}
