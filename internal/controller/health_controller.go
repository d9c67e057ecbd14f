package controller

import (
	"net/http"
	"os"

	"math_quiz_backend/internal/config"
	"math_quiz_backend/internal/service"
	"math_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Cfg             *config.Config
	QuestionService *service.QuestionService
}

func NewHealthController(cfg *config.Config, questionService *service.QuestionService) *HealthController {
	return &HealthController{Cfg: cfg, QuestionService: questionService}
}

// @Summary 상태 확인
// @Description 저장 디렉터리 쓰기 가능 여부와 문제 로드 여부
// @Tags 시스템
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	storage := "up"
	f, err := os.CreateTemp(c.Cfg.Storage.DataDir, ".healthcheck-*")
	if err != nil {
		storage = "down"
	} else {
		f.Close()
		os.Remove(f.Name())
	}

	if storage != "up" {
		util.Error(ctx, http.StatusServiceUnavailable, "Storage unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"storage":   storage,
			"questions": c.QuestionService.Loaded(),
		},
	})
}
