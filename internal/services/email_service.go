package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendOtpEmail(email, code string) error
	SendPasswordResetEmail(email, token string) error
	SendWelcomeEmail(email, fullName string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendOtpEmail(email, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your verification code")

	body := fmt.Sprintf(`
		<h3>Confirm your registration</h3>
		<p>Your one-time verification code: <strong>%s</strong></p>
		<p>The code expires in a few minutes. If you did not register, ignore this email.</p>
	`, code)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}

	return nil
}

func (s *emailService) SendPasswordResetEmail(email, token string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Password reset request")

	body := fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>We received a request to reset the password for your account.</p>
		<p>Use the following token to reset your password: <strong>%s</strong></p>
		<p>If you did not request this change, you can ignore this email.</p>
	`, token)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	return nil
}

func (s *emailService) SendWelcomeEmail(email, fullName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to NUSA!")

	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your account has been verified and created.</p>
		<p>Best regards,<br>The NUSA Team</p>
	`, fullName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}
