package service

import (
	"math_quiz_backend/internal/config"
	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/util"
	"math_quiz_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminService 관리자 표면: 캐시 무효화, 사용자별 일괄 삭제, 랭킹 초기화,
// 계정 삭제. 공용 비밀번호는 bcrypt 해시로만 설정에 들고 있고, 인증
// 성공 시 단명 관리자 토큰을 발급한다.
type AdminService struct {
	Cfg       *config.Store
	Questions *QuestionService
	Progress  *ProgressService
	Ranking   *RankingService
	Auth      *AuthService
}

func NewAdminService(cfg *config.Store, questions *QuestionService, progress *ProgressService, ranking *RankingService, auth *AuthService) *AdminService {
	return &AdminService{
		Cfg:       cfg,
		Questions: questions,
		Progress:  progress,
		Ranking:   ranking,
		Auth:      auth,
	}
}

// Unlock 비밀번호 검증 후 관리자 역할 JWT 발급
func (s *AdminService) Unlock(password string) (string, error) {
	cfg := s.Cfg.Snapshot()
	if password == "" || cfg.Admin.PasswordHash == "" {
		return "", util.ErrAdminPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cfg.Admin.PasswordHash), []byte(password)); err != nil {
		return "", util.ErrAdminPassword
	}
	return util.GenerateJWT("admin", model.RoleAdmin, cfg.JWT.Secret, cfg.Admin.TokenExpireMinutes)
}

// InvalidateCache 다음 로드가 시트를 강제로 다시 받게 한다.
func (s *AdminService) InvalidateCache() {
	s.Questions.Invalidate()
	logger.Log.Info("question cache invalidated by admin")
}

// PurgeUser 원장·랭킹·계정에서 해당 사용자를 지운다. 실패한 단계는
// 모아서 첫 에러를 돌려준다.
func (s *AdminService) PurgeUser(name string) error {
	var first error
	if err := s.Progress.PurgeUser(name); err != nil {
		first = err
	}
	if err := s.Ranking.RemoveUser(name); err != nil && first == nil {
		first = err
	}
	if err := s.Auth.DeleteAccount(name); err != nil && first == nil {
		first = err
	}
	logger.Log.Info("user purged by admin", zap.String("user", name), zap.Error(first))
	return first
}

// WipeRanking 랭킹 테이블 전체 초기화
func (s *AdminService) WipeRanking() error {
	logger.Log.Info("ranking wiped by admin")
	return s.Ranking.Wipe()
}
