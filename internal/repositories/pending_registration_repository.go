package repositories

import (
	"database/sql"
	"fmt"

	"nusaauth/internal/models"
)

type PendingRegistrationRepository interface {
	Create(p *models.PendingRegistration) error
	GetByID(id string) (*models.PendingRegistration, error)
	GetByEmail(email string) (*models.PendingRegistration, error)

	// PromoteToAccount — атомарное превращение заявки в аккаунт.
	PromoteToAccount(p *models.PendingRegistration, a *models.Account) (bool, error)
}

type pendingRegistrationRepository struct {
	DB *sql.DB
}

func NewPendingRegistrationRepository(db *sql.DB) PendingRegistrationRepository {
	return &pendingRegistrationRepository{DB: db}
}

func (r *pendingRegistrationRepository) Create(p *models.PendingRegistration) error {
	const q = `
		INSERT INTO pending_registrations (id, full_name, email, phone, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	var phone sql.NullString
	if p.Phone != "" {
		phone = sql.NullString{String: p.Phone, Valid: true}
	}
	if err := r.DB.QueryRow(q, p.ID, p.FullName, p.Email, phone, p.PasswordHash).Scan(&p.CreatedAt); err != nil {
		// параллельная регистрация успела занять email
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *pendingRegistrationRepository) GetByID(id string) (*models.PendingRegistration, error) {
	return r.getOne(`WHERE id = $1`, id)
}

func (r *pendingRegistrationRepository) GetByEmail(email string) (*models.PendingRegistration, error) {
	return r.getOne(`WHERE email = $1`, email)
}

func (r *pendingRegistrationRepository) getOne(where string, arg any) (*models.PendingRegistration, error) {
	q := `
		SELECT id, full_name, email, phone, password_hash, created_at
		FROM pending_registrations ` + where
	p := &models.PendingRegistration{}
	var phone sql.NullString
	err := r.DB.QueryRow(q, arg).Scan(&p.ID, &p.FullName, &p.Email, &phone, &p.PasswordHash, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		p.Phone = phone.String
	}
	return p, nil
}

// PromoteToAccount — в одной транзакции: создаём аккаунт, удаляем все
// OTP-челленджи заявки и саму заявку. Проигрыш гонки проявляется либо
// unique violation на email при вставке аккаунта (победитель уже
// закоммитил), либо rows=0 на DELETE заявки; в обоих случаях транзакция
// откатывается и возвращается false — второго аккаунта не будет.
func (r *pendingRegistrationRepository) PromoteToAccount(p *models.PendingRegistration, a *models.Account) (bool, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return false, fmt.Errorf("promote begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insAccount = `
		INSERT INTO accounts (id, full_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	if err := tx.QueryRow(insAccount, a.ID, a.FullName, a.Email, a.PasswordHash).Scan(&a.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("promote insert account: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM otp_challenges WHERE pending_id=$1`, p.ID); err != nil {
		return false, fmt.Errorf("promote purge challenges: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM pending_registrations WHERE id=$1`, p.ID)
	if err != nil {
		return false, fmt.Errorf("promote delete pending: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		// заявка исчезла — промоушен уже выполнен кем-то другим
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("promote commit: %w", err)
	}
	return true, nil
}
