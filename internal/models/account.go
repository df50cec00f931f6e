package models

import "time"

type Account struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // не отдаём наружу

	// reset-токен храним только как bcrypt-хэш, всегда вместе со сроком
	ResetTokenHash      *string    `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// AccountView — публичное представление аккаунта. Поля с хэшем пароля
// здесь нет вообще, поэтому и зачищать его перед ответом не нужно.
type AccountView struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Account) View() AccountView {
	return AccountView{
		ID:        a.ID,
		FullName:  a.FullName,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}

// AuthResult — ответ login/verify: аккаунт + подписанный bearer-токен.
type AuthResult struct {
	Account     AccountView `json:"account"`
	AccessToken string      `json:"access_token"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
