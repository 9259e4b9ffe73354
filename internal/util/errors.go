package util

import "errors"

var (
	ErrUserNotFound       = errors.New("사용자가 존재하지 않습니다")
	ErrUsernameRegistered = errors.New("이미 사용 중인 사용자 이름입니다")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrSessionNotFound    = errors.New("quiz session not found")
	ErrSessionSubmitted   = errors.New("quiz already graded")
	ErrEmptyQuestionBank  = errors.New("no questions available for the requested source")
	ErrSeedFileMissing    = errors.New("seed CSV file not found")
	ErrInvalidWeek        = errors.New("week must be between 1 and 15")
)
