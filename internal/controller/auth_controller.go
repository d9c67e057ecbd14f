package controller

import (
	"errors"

	"math_quiz_backend/internal/service"
	"math_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService     *service.AuthService
	ProgressService *service.ProgressService
	CookieMaxAge    int
	IsRelease       bool // 운영 환경이면 Secure 쿠키
}

func NewAuthController(authService *service.AuthService, progressService *service.ProgressService, cookieMaxAge int, isRelease bool) *AuthController {
	return &AuthController{
		AuthService:     authService,
		ProgressService: progressService,
		CookieMaxAge:    cookieMaxAge,
		IsRelease:       isRelease,
	}
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=4"`
}

// Register godoc
// @Summary 계정 등록
// @Description 이름과 비밀번호로 새 계정을 만든다
// @Tags 인증
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "계정 정보"
// @Success 201 {object} util.Response "생성됨"
// @Failure 400 {object} util.Response "입력 오류"
// @Failure 409 {object} util.Response "이미 사용 중인 이름"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AuthService.Register(req.Name, req.Password); err != nil {
		switch {
		case errors.Is(err, util.ErrNameTaken):
			util.Error(ctx, 409, err.Error())
		case errors.Is(err, util.ErrBlankField):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"name": req.Name})
}

// swagger:model LoginRequest
type LoginRequest struct {
	Name       string `json:"name" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// Login godoc
// @Summary 로그인
// @Description 인증 후 JWT를 돌려준다. remember_me면 자동 로그인 쿠키도 설정
// @Tags 인증
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "로그인 정보"
// @Success 200 {object} util.Response{data=object} "성공"
// @Failure 400 {object} util.Response "입력 오류"
// @Failure 401 {object} util.Response "인증 실패"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.Login(req.Name, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrBlankField) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.Error(ctx, 401, err.Error())
		}
		return
	}

	if req.RememberMe {
		// HttpOnly 쿠키. 서명과 만료는 토큰 자체가 가진다.
		ctx.SetCookie(util.AuthCookieName, token, c.CookieMaxAge, "/", "", c.IsRelease, true)
	}

	util.Success(ctx, gin.H{"token": token})
}

// Logout godoc
// @Summary 로그아웃
// @Description 자동 로그인 쿠키를 제거한다
// @Tags 인증
// @Produce  json
// @Success 200 {object} util.Response
// @Router /api/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetCookie(util.AuthCookieName, "", -1, "/", "", c.IsRelease, true)
	util.Success(ctx, gin.H{"logged_out": true})
}

// GetProfile godoc
// @Summary 내 정보
// @Description 현재 사용자 이름과 원장 기준 누적 통계
// @Tags 인증
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, gin.H{
		"name":  claims.Name,
		"stats": c.ProgressService.Recompute(claims.Name),
	})
}
