package models

import "time"

// Способы доставки кода.
const (
	MethodEmail = "email"
	MethodPhone = "phone"
)

// OtpChallenge — отдельная запись на каждую отправку кода (resend — новая
// строка). Код одноразовый: verified_at проставляется ровно один раз.
type OtpChallenge struct {
	ID         string     `json:"id"`
	PendingID  string     `json:"pending_id"`
	Code       string     `json:"-"`
	Method     string     `json:"method"`
	ExpiresAt  time.Time  `json:"expires_at"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func ValidMethod(m string) bool {
	return m == MethodEmail || m == MethodPhone
}
