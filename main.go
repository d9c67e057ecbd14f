// @title 수학 퀴즈 백엔드 API
// @version 1.0
// @description 구글 시트 기반 수학 퀴즈 서비스의 백엔드 서버.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"math_quiz_backend/internal/app"
	"math_quiz_backend/internal/config"
	"math_quiz_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
