package apperrors

import "errors"

var (
	ErrQuotaExceededByType    = errors.New("ticket type quota exceeded")
	ErrQuotaExceededGlobal    = errors.New("issuer ticket quota exceeded")
	ErrMissingGuestName       = errors.New("guest name is required for this ticket type")
	ErrCodeCollision          = errors.New("ticket code already exists")
	ErrCodeCollisionExhausted = errors.New("could not generate a unique ticket code")
	ErrTicketNotFound         = errors.New("ticket not found")
	// ErrTicketAlreadyUsed 只用於錯誤碼分類；驗票時已使用是結果狀態，不會以錯誤回傳
	ErrTicketAlreadyUsed      = errors.New("ticket already used")
	ErrIssuerNotFound         = errors.New("issuer not found")
	ErrIssuerAlreadyExists    = errors.New("issuer already exists")
	ErrInvalidTicketType      = errors.New("invalid ticket type")
	ErrInvalidInput           = errors.New("invalid input")
	ErrStoreUnavailable       = errors.New("ticket store unavailable")
	ErrLockNotAcquired        = errors.New("issuer lock not acquired")
	ErrInternalServerError    = errors.New("internal server error")
)

// Code 對應錯誤分類碼，回傳給呼叫端
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrQuotaExceededByType):
		return "QuotaExceededByType"
	case errors.Is(err, ErrQuotaExceededGlobal):
		return "QuotaExceededGlobal"
	case errors.Is(err, ErrMissingGuestName):
		return "MissingGuestName"
	case errors.Is(err, ErrCodeCollisionExhausted):
		return "CodeCollisionExhausted"
	case errors.Is(err, ErrTicketNotFound):
		return "TicketNotFound"
	case errors.Is(err, ErrTicketAlreadyUsed):
		return "TicketAlreadyUsed"
	case errors.Is(err, ErrIssuerNotFound):
		return "IssuerNotFound"
	case errors.Is(err, ErrIssuerAlreadyExists):
		return "IssuerAlreadyExists"
	case errors.Is(err, ErrInvalidTicketType):
		return "InvalidTicketType"
	case errors.Is(err, ErrInvalidInput):
		return "InvalidInput"
	case errors.Is(err, ErrStoreUnavailable), errors.Is(err, ErrLockNotAcquired):
		return "StoreUnavailable"
	default:
		return "InternalError"
	}
}
