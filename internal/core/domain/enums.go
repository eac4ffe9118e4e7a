package domain

type SearchStatus string

const (
	// Job status
	StatusPending   SearchStatus = "PENDING"
	StatusRunning   SearchStatus = "RUNNING"
	StatusFound     SearchStatus = "FOUND"
	StatusExhausted SearchStatus = "EXHAUSTED"
	StatusCancelled SearchStatus = "CANCELLED"
	StatusFailed    SearchStatus = "FAILED"
)

var (
	CharsetLower   = "abcdefghijklmnopqrstuvwxyz"
	CharsetUpper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	CharsetDigits  = "0123456789"
	CharsetSpecial = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	CharsetAll     = CharsetLower + CharsetUpper + CharsetDigits + CharsetSpecial
)

type RecoveryError string

const (
	ErrInvalidAlphabet RecoveryError = "INVALID_ALPHABET"
	ErrOracleFailure   RecoveryError = "ORACLE_FAILURE"
	ErrSpaceOverflow   RecoveryError = "SPACE_OVERFLOW"
	ErrInvalidDocument RecoveryError = "INVALID_DOCUMENT"
	ErrJobNotFound     RecoveryError = "JOB_NOT_FOUND"
)

func (e RecoveryError) Error() string {
	return string(e)
}
