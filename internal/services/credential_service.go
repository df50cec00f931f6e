package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"nusaauth/internal/config"
	"nusaauth/internal/models"
	"nusaauth/internal/repositories"
	"nusaauth/internal/utils"
)

// CredentialService — ядро учётного цикла: заявка → OTP → аккаунт,
// вход по паролю, восстановление и смена пароля. Вся бизнес-логика
// живёт здесь; репозитории, нотификатор и подпись токенов — внешние.
type CredentialService interface {
	Register(fullName, email, phone, password string) (*models.RegistrationReceipt, error)
	SendOtp(pendingID, method string) error
	ResendOtp(pendingID, method string) error
	VerifyOtp(pendingID, code string) (*models.AuthResult, error)
	Login(email, password string) (*models.AuthResult, error)
	ForgotPassword(email string) error
	ResetPassword(token, newPassword string) error
	ChangePassword(accountID, currentPassword, newPassword string) error
}

type credentialService struct {
	accounts repositories.AccountRepository
	pending  repositories.PendingRegistrationRepository
	otps     repositories.OtpChallengeRepository
	notify   Notifier
	emails   EmailService // welcome-письмо после промоушена; может быть nil
	auth     AuthService
	tokens   TokenService
	cfg      config.AuthConfig
}

func NewCredentialService(
	accounts repositories.AccountRepository,
	pending repositories.PendingRegistrationRepository,
	otps repositories.OtpChallengeRepository,
	notify Notifier,
	emails EmailService,
	auth AuthService,
	tokens TokenService,
	cfg config.AuthConfig,
) CredentialService {
	return &credentialService{
		accounts: accounts,
		pending:  pending,
		otps:     otps,
		notify:   notify,
		emails:   emails,
		auth:     auth,
		tokens:   tokens,
		cfg:      cfg,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register — заводит заявку на регистрацию. Email не должен быть занят
// ни живым аккаунтом, ни другой заявкой.
func (s *credentialService) Register(fullName, email, phone, password string) (*models.RegistrationReceipt, error) {
	email = normalizeEmail(email)

	acc, err := s.accounts.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("register lookup account: %w", err)
	}
	if acc != nil {
		return nil, ErrDuplicateEmail
	}

	p, err := s.pending.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("register lookup pending: %w", err)
	}
	if p != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("register hash password: %w", err)
	}

	reg := &models.PendingRegistration{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: hash,
	}
	if err := s.pending.Create(reg); err != nil {
		// между проверками и вставкой email занял параллельный register
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("register create pending: %w", err)
	}

	log.Printf("[auth][register] pending created id=%s email=%q", reg.ID, reg.Email)
	return &models.RegistrationReceipt{
		Status:    "pending",
		Message:   "Registration successful. Please verify your account via OTP.",
		PendingID: reg.ID,
	}, nil
}

// SendOtp — новый код на каждую отправку, срок жизни фиксированный.
// Челленджи копятся: все живые независимо пригодны для подтверждения.
func (s *credentialService) SendOtp(pendingID, method string) error {
	if !models.ValidMethod(method) {
		return fmt.Errorf("%w: unknown delivery method %q", ErrDeliveryFailure, method)
	}

	reg, err := s.pending.GetByID(pendingID)
	if err != nil {
		return fmt.Errorf("send otp lookup pending: %w", err)
	}
	if reg == nil {
		return ErrNotFound
	}

	destination := reg.Email
	if method == models.MethodPhone {
		if reg.Phone == "" {
			return fmt.Errorf("%w: pending registration has no phone", ErrDeliveryFailure)
		}
		destination = reg.Phone
	}

	code, err := utils.NumericCode(s.cfg.OtpLength)
	if err != nil {
		return fmt.Errorf("send otp generate code: %w", err)
	}

	ch := &models.OtpChallenge{
		ID:        uuid.NewString(),
		PendingID: reg.ID,
		Code:      code,
		Method:    method,
		ExpiresAt: time.Now().Add(s.cfg.OtpTTL()),
	}
	if err := s.otps.Create(ch); err != nil {
		return fmt.Errorf("send otp create challenge: %w", err)
	}

	if err := s.notify.SendOtp(destination, method, code); err != nil {
		log.Printf("[auth][otp][send] delivery failed pending=%s method=%s: %v", reg.ID, method, err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailure, err)
	}

	log.Printf("[auth][otp][send] ok pending=%s method=%s expires=%s", reg.ID, method, ch.ExpiresAt.Format(time.RFC3339))
	return nil
}

// ResendOtp — кулдаун: если последний код этим способом уходил меньше
// кулдауна назад, отказываем; ровно на границе уже можно.
func (s *credentialService) ResendOtp(pendingID, method string) error {
	last, err := s.otps.GetLatest(pendingID, method)
	if err != nil {
		return fmt.Errorf("resend otp lookup latest: %w", err)
	}
	if last != nil && time.Since(last.CreatedAt) < s.cfg.ResendCooldown() {
		return ErrTooSoon
	}
	return s.SendOtp(pendingID, method)
}

// VerifyOtp — подтверждение кода и промоушен заявки в аккаунт.
// Claim одноразовый; промоушен атомарный, проигравший в гонке получает
// NotFound, а не второй аккаунт.
func (s *credentialService) VerifyOtp(pendingID, code string) (*models.AuthResult, error) {
	now := time.Now()

	ch, err := s.otps.Claim(pendingID, strings.TrimSpace(code), now)
	if err != nil {
		return nil, fmt.Errorf("verify otp claim: %w", err)
	}
	if ch == nil {
		// различаем "кода нет/просрочен" и "заявки уже нет вовсе"
		reg, rerr := s.pending.GetByID(pendingID)
		if rerr != nil {
			return nil, fmt.Errorf("verify otp lookup pending: %w", rerr)
		}
		if reg == nil {
			return nil, ErrNotFound
		}
		return nil, ErrInvalidOrExpiredOtp
	}

	reg, err := s.pending.GetByID(pendingID)
	if err != nil {
		return nil, fmt.Errorf("verify otp reload pending: %w", err)
	}
	if reg == nil {
		// параллельный verify уже выполнил промоушен
		return nil, ErrNotFound
	}

	acc := &models.Account{
		ID:           uuid.NewString(),
		FullName:     reg.FullName,
		Email:        reg.Email,
		PasswordHash: reg.PasswordHash,
	}
	promoted, err := s.pending.PromoteToAccount(reg, acc)
	if err != nil {
		return nil, fmt.Errorf("verify otp promote: %w", err)
	}
	if !promoted {
		return nil, ErrNotFound
	}
	log.Printf("[auth][otp][verify] promoted pending=%s account=%s", reg.ID, acc.ID)

	if s.emails != nil {
		if err := s.emails.SendWelcomeEmail(acc.Email, acc.FullName); err != nil {
			// не валим промоушен из-за welcome-письма
			log.Printf("[auth][otp][verify] warning: welcome email to %s failed: %v", acc.Email, err)
		}
	}

	return s.signIn(acc)
}

// Login — один и тот же ответ на "нет такого email" и "не тот пароль".
func (s *credentialService) Login(email, password string) (*models.AuthResult, error) {
	email = normalizeEmail(email)

	acc, err := s.accounts.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("login lookup account: %w", err)
	}
	if acc == nil {
		return nil, ErrInvalidCredentials
	}
	if !s.auth.ComparePassword(acc.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	log.Printf("[auth][login] success account=%s", acc.ID)
	return s.signIn(acc)
}

func (s *credentialService) signIn(acc *models.Account) (*models.AuthResult, error) {
	token, err := s.tokens.Issue(acc.ID, acc.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &models.AuthResult{Account: acc.View(), AccessToken: token}, nil
}

// ForgotPassword — в БД храним только bcrypt-хэш токена, плэйнтекст
// уходит на почту и больше нигде не живёт.
func (s *credentialService) ForgotPassword(email string) error {
	email = normalizeEmail(email)

	acc, err := s.accounts.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("forgot password lookup: %w", err)
	}
	if acc == nil {
		return ErrNotFound
	}

	token, err := utils.NewResetToken(32)
	if err != nil {
		return fmt.Errorf("forgot password token: %w", err)
	}
	tokenHash, err := s.auth.HashPassword(token)
	if err != nil {
		return fmt.Errorf("forgot password hash token: %w", err)
	}

	expiresAt := time.Now().Add(s.cfg.ResetTokenTTL())
	if err := s.accounts.SetResetToken(acc.ID, tokenHash, expiresAt); err != nil {
		return fmt.Errorf("forgot password store token: %w", err)
	}

	if err := s.notify.SendResetToken(acc.Email, token); err != nil {
		log.Printf("[auth][reset][request] delivery failed account=%s: %v", acc.ID, err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailure, err)
	}

	log.Printf("[auth][reset][request] token issued account=%s expires=%s", acc.ID, expiresAt.Format(time.RFC3339))
	return nil
}

// ResetPassword — детерминированный проход по всем живым кандидатам:
// bcrypt-сравнение для каждого без раннего выхода, берём первое
// совпадение. При случайных токенах совпадение максимум одно.
func (s *credentialService) ResetPassword(token, newPassword string) error {
	token = strings.TrimSpace(token)

	candidates, err := s.accounts.ListWithLiveResetTokens(time.Now())
	if err != nil {
		return fmt.Errorf("reset password list candidates: %w", err)
	}

	var matched *models.Account
	for _, acc := range candidates {
		if acc.ResetTokenHash == nil {
			continue
		}
		// несовпадение — ожидаемый исход скана, не ошибка
		if s.auth.ComparePassword(*acc.ResetTokenHash, token) && matched == nil {
			matched = acc
		}
	}
	if matched == nil {
		return ErrInvalidOrExpiredToken
	}

	newHash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("reset password hash: %w", err)
	}

	ok, err := s.accounts.CompleteReset(matched.ID, newHash, *matched.ResetTokenHash)
	if err != nil {
		return fmt.Errorf("reset password update: %w", err)
	}
	if !ok {
		// токен уже погашен параллельным сбросом
		return ErrInvalidOrExpiredToken
	}

	log.Printf("[auth][reset][complete] account=%s", matched.ID)
	return nil
}

// ChangePassword — аутентифицированная смена; новый токен не выпускаем.
func (s *credentialService) ChangePassword(accountID, currentPassword, newPassword string) error {
	acc, err := s.accounts.GetByID(accountID)
	if err != nil {
		return fmt.Errorf("change password lookup: %w", err)
	}
	if acc == nil {
		return ErrNotFound
	}
	if !s.auth.ComparePassword(acc.PasswordHash, currentPassword) {
		return ErrInvalidCurrentPassword
	}

	newHash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("change password hash: %w", err)
	}
	if err := s.accounts.UpdatePassword(acc.ID, newHash); err != nil {
		return fmt.Errorf("change password update: %w", err)
	}

	log.Printf("[auth][change] password updated account=%s", acc.ID)
	return nil
}
