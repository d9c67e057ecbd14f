package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	JWT       JWTConfig
	Quiz      QuizConfig      `mapstructure:"quiz"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type QuizConfig struct {
	// SheetURL 구글 시트 '웹에 게시' CSV 링크 기본값. 요청에서 다른 링크를
	// 넘기면 그 링크를 사용한다.
	SheetURL string `mapstructure:"sheet_url"`
	// ImageDir image 열의 파일명을 해석할 로컬 디렉터리
	ImageDir string `mapstructure:"image_dir"`
	// FetchTimeout 시트 요청 제한 시간(초)
	FetchTimeoutSeconds int `mapstructure:"fetch_timeout_seconds"`
}

type StorageConfig struct {
	DataDir      string `mapstructure:"data_dir"`
	LedgerFile   string `mapstructure:"ledger_file"`
	RankingFile  string `mapstructure:"ranking_file"`
	AccountsFile string `mapstructure:"accounts_file"`
}

type AdminConfig struct {
	// PasswordHash 공용 관리자 비밀번호의 bcrypt 해시. 공유 비밀이라는 점은
	// 알려진 약점으로 config.yaml에 문서화되어 있다.
	PasswordHash       string        `mapstructure:"password_hash"`
	TokenExpireMinutes time.Duration `mapstructure:"token_expire_minutes"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("MATH_QUIZ")
	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")

	viper.BindEnv("jwt.secret", "JWT_SECRET")

	viper.BindEnv("quiz.sheet_url", "QUIZ_SHEET_URL")
	viper.BindEnv("quiz.image_dir", "QUIZ_IMAGE_DIR")

	viper.BindEnv("storage.data_dir", "STORAGE_DATA_DIR")

	viper.BindEnv("admin.password_hash", "ADMIN_PASSWORD_HASH")

	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.Admin.TokenExpireMinutes = cfg.Admin.TokenExpireMinutes * time.Minute
	if cfg.Admin.TokenExpireMinutes == 0 {
		cfg.Admin.TokenExpireMinutes = 30 * time.Minute
	}
	if cfg.Quiz.FetchTimeoutSeconds == 0 {
		cfg.Quiz.FetchTimeoutSeconds = 15
	}

	// 운영 모드에서는 JWT Secret 강도 검증
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	for _, dir := range []string{cfg.Storage.DataDir, cfg.Quiz.ImageDir} {
		if dir == "" {
			continue
		}
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			os.MkdirAll(dir, 0755)
		}
	}

	return &cfg, nil
}
