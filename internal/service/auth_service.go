package service

import (
	"strings"
	"time"

	"math_quiz_backend/internal/config"
	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/repository"
	"math_quiz_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// AuthService 계정 등록/로그인. 비밀번호는 bcrypt로만 저장하고, 로그인
// 성공 시 서명·만료가 있는 JWT를 발급한다. remember_me면 컨트롤러가
// 같은 토큰을 HttpOnly 쿠키로 내려 재방문 자동 로그인에 쓴다.
type AuthService struct {
	Accounts *repository.AccountRepository
	Cfg      *config.Store
}

func NewAuthService(accounts *repository.AccountRepository, cfg *config.Store) *AuthService {
	return &AuthService{Accounts: accounts, Cfg: cfg}
}

func (s *AuthService) Register(name, password string) error {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return util.ErrBlankField
	}

	if _, err := s.Accounts.FindByName(name); err == nil {
		return util.ErrNameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.Accounts.Create(&model.Account{
		Name:         name,
		PasswordHash: string(hashed),
		CreatedAt:    time.Now(),
	})
}

func (s *AuthService) Login(name, password string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return "", util.ErrBlankField
	}

	acc, err := s.Accounts.FindByName(name)
	if err != nil {
		return "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	cfg := s.Cfg.Snapshot()
	return util.GenerateJWT(acc.Name, model.RoleUser, cfg.JWT.Secret, cfg.JWT.ExpireTime)
}

func (s *AuthService) DeleteAccount(name string) error {
	return s.Accounts.Delete(name)
}
