package util

import "errors"

var (
	ErrUserNotFound       = errors.New("등록되지 않은 사용자입니다")
	ErrNameTaken          = errors.New("이미 사용 중인 이름입니다")
	ErrInvalidCredentials = errors.New("이름 또는 비밀번호가 올바르지 않습니다")
	ErrBlankField         = errors.New("이름과 비밀번호를 모두 입력하세요")

	ErrSheetEmpty      = errors.New("CSV 링크가 비어 있습니다")
	ErrMissingColumns  = errors.New("필수 열 누락: level, topic, question, answer")
	ErrNoQuestions     = errors.New("조건에 맞는 문제가 없습니다. 난이도/키워드를 조정하세요")
	ErrPoolExhausted   = errors.New("남은 문제가 없습니다")
	ErrNothingToReview = errors.New("복습할 문제가 없습니다")
	ErrUnknownQuestion = errors.New("해당 id의 문제를 찾을 수 없습니다")

	ErrSittingNotFound = errors.New("sitting not found")
	ErrBadTransition   = errors.New("허용되지 않는 화면 전환입니다")
	ErrAdminPassword   = errors.New("관리자 비밀번호가 올바르지 않습니다")
)
