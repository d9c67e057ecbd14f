package service

import (
	"path/filepath"
	"testing"
	"time"

	"math_quiz_backend/internal/config"
	"math_quiz_backend/internal/repository"
	"math_quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-of-sufficient-length"
	cfg.JWT.ExpireTime = time.Hour
	accounts := repository.NewAccountRepository(filepath.Join(t.TempDir(), "accounts.csv"))
	return NewAuthService(accounts, config.NewStore(cfg))
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestAuthService(t)

	require.NoError(t, s.Register("  민수 ", "비밀1234"))

	// 등록 시 이름 양끝 공백이 제거되어 저장된다
	token, err := s.Login("민수", "비밀1234")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := util.ParseJWT(token, s.Cfg.Snapshot().JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, "민수", claims.Name)

	// 해시 비교이므로 평문이 파일에 남지 않는다
	acc, err := s.Accounts.FindByName("민수")
	require.NoError(t, err)
	assert.NotEqual(t, "비밀1234", acc.PasswordHash)
}

func TestRegisterBlankFields(t *testing.T) {
	s := newTestAuthService(t)
	assert.ErrorIs(t, s.Register("", "pw"), util.ErrBlankField)
	assert.ErrorIs(t, s.Register("   ", "pw"), util.ErrBlankField)
	assert.ErrorIs(t, s.Register("name", ""), util.ErrBlankField)
}

func TestRegisterDuplicateName(t *testing.T) {
	s := newTestAuthService(t)
	require.NoError(t, s.Register("민수", "pw1"))
	assert.ErrorIs(t, s.Register("민수", "pw2"), util.ErrNameTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := newTestAuthService(t)
	require.NoError(t, s.Register("민수", "pw1"))

	_, err := s.Login("민수", "틀린비번")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, err = s.Login("없는사람", "pw1")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, err = s.Login("", "pw1")
	assert.ErrorIs(t, err, util.ErrBlankField)
}

func TestLoginUsesSwappedConfig(t *testing.T) {
	s := newTestAuthService(t)
	require.NoError(t, s.Register("민수", "pw1"))

	// 핫 리로드로 JWT 비밀키가 바뀌면 이후 발급 토큰은 새 키로 서명된다
	next := &config.Config{}
	next.JWT.Secret = "rotated-secret-of-sufficient-len"
	next.JWT.ExpireTime = time.Hour
	s.Cfg.Swap(next)

	token, err := s.Login("민수", "pw1")
	require.NoError(t, err)

	_, err = util.ParseJWT(token, "rotated-secret-of-sufficient-len")
	assert.NoError(t, err)
	_, err = util.ParseJWT(token, "test-secret-of-sufficient-length")
	assert.Error(t, err)
}

func TestDeleteAccountAllowsReRegister(t *testing.T) {
	s := newTestAuthService(t)
	require.NoError(t, s.Register("민수", "pw1"))
	require.NoError(t, s.DeleteAccount("민수"))
	assert.NoError(t, s.Register("민수", "pw2"))
}
