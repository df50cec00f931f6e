package services

import "errors"

// Исходы учётных операций. Хендлеры маппят их на HTTP-статусы через
// errors.Is; всё остальное (обёрнутые ошибки стора) — StoreFailure → 500.
var (
	ErrDuplicateEmail         = errors.New("email already in use")
	ErrNotFound               = errors.New("not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
	ErrInvalidOrExpiredOtp    = errors.New("invalid or expired otp")
	ErrInvalidOrExpiredToken  = errors.New("invalid or expired token")
	ErrTooSoon                = errors.New("please wait before resending")
	ErrDeliveryFailure        = errors.New("delivery failed")
)
