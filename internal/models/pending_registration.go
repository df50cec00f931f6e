package models

import "time"

// PendingRegistration — заявка на регистрацию до подтверждения OTP.
// Email уникален сразу в двух множествах: и среди заявок, и среди аккаунтов.
type PendingRegistration struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegistrationReceipt — ответ на register: аккаунт ещё не создан,
// клиент должен пройти OTP-подтверждение.
type RegistrationReceipt struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	PendingID string `json:"pending_id"`
}
