package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"nusaauth/internal/models"
)

type OtpChallengeRepository interface {
	Create(ch *models.OtpChallenge) error
	GetLatest(pendingID, method string) (*models.OtpChallenge, error)
	Claim(pendingID, code string, now time.Time) (*models.OtpChallenge, error)
}

type otpChallengeRepository struct {
	DB *sql.DB
}

func NewOtpChallengeRepository(db *sql.DB) OtpChallengeRepository {
	return &otpChallengeRepository{DB: db}
}

// Create — каждая отправка кода (в т.ч. resend) — новая строка.
func (r *otpChallengeRepository) Create(ch *models.OtpChallenge) error {
	const q = `
		INSERT INTO otp_challenges (id, pending_id, code, method, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	if err := r.DB.QueryRow(q, ch.ID, ch.PendingID, ch.Code, ch.Method, ch.ExpiresAt).Scan(&ch.CreatedAt); err != nil {
		return fmt.Errorf("otp_challenge create: %w", err)
	}
	return nil
}

// GetLatest — последняя отправка для пары (заявка, способ); для кулдауна.
func (r *otpChallengeRepository) GetLatest(pendingID, method string) (*models.OtpChallenge, error) {
	const q = `
		SELECT id, pending_id, code, method, expires_at, verified_at, created_at
		FROM otp_challenges
		WHERE pending_id = $1 AND method = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	ch := &models.OtpChallenge{}
	var verifiedAt sql.NullTime
	err := r.DB.QueryRow(q, pendingID, method).Scan(
		&ch.ID, &ch.PendingID, &ch.Code, &ch.Method, &ch.ExpiresAt, &verifiedAt, &ch.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("otp_challenge latest: %w", err)
	}
	if verifiedAt.Valid {
		t := verifiedAt.Time
		ch.VerifiedAt = &t
	}
	return ch, nil
}

// Claim — одним UPDATE находит самый ранний живой челлендж с этим кодом
// (verified_at IS NULL, expires_at >= now — граница включительно) и
// проставляет verified_at. rows=0 означает "неверный или просроченный":
// повторный Claim того же кода уже ничего не найдёт.
func (r *otpChallengeRepository) Claim(pendingID, code string, now time.Time) (*models.OtpChallenge, error) {
	const q = `
		UPDATE otp_challenges
		SET verified_at = $1
		WHERE id = (
			SELECT id FROM otp_challenges
			WHERE pending_id = $2 AND code = $3
			  AND verified_at IS NULL AND expires_at >= $1
			ORDER BY created_at ASC
			LIMIT 1
		)
		RETURNING id, pending_id, code, method, expires_at, verified_at, created_at
	`
	ch := &models.OtpChallenge{}
	var verifiedAt sql.NullTime
	err := r.DB.QueryRow(q, now, pendingID, code).Scan(
		&ch.ID, &ch.PendingID, &ch.Code, &ch.Method, &ch.ExpiresAt, &verifiedAt, &ch.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("otp_challenge claim: %w", err)
	}
	if verifiedAt.Valid {
		t := verifiedAt.Time
		ch.VerifiedAt = &t
	}
	return ch, nil
}
