package services

import (
	"fmt"

	"nusaauth/internal/models"
	"nusaauth/internal/utils"
)

// Notifier — доставка кодов и reset-токенов. Ошибка доставки всегда
// доходит до вызывающего (DeliveryFailure), ничего не глотаем.
type Notifier interface {
	SendOtp(destination, method, code string) error
	SendResetToken(destination, token string) error
}

type notifier struct {
	emails EmailService
	sms    *utils.Client
}

func NewNotifier(emails EmailService, sms *utils.Client) Notifier {
	return &notifier{emails: emails, sms: sms}
}

func (n *notifier) SendOtp(destination, method, code string) error {
	switch method {
	case models.MethodEmail:
		return n.emails.SendOtpEmail(destination, code)
	case models.MethodPhone:
		text := fmt.Sprintf("NUSA код подтверждения: %s", code)
		if _, err := n.sms.SendSMS(destination, text); err != nil {
			return fmt.Errorf("mobizon error: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown delivery method %q", method)
	}
}

func (n *notifier) SendResetToken(destination, token string) error {
	return n.emails.SendPasswordResetEmail(destination, token)
}
