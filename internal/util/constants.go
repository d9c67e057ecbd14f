package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// 로컬 이미지 디렉터리에서 확장자 생략 파일명을 찾을 때 시도하는 순서
var AllowedImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

const (
	// AuthCookieName 재방문 자동 로그인용 HttpOnly 쿠키
	AuthCookieName = "quiz_token"
)
