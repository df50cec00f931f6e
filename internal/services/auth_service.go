package services

import "golang.org/x/crypto/bcrypt"

// AuthService — хэширование и проверка паролей (и reset-токенов).
type AuthService interface {
	HashPassword(plain string) (string, error)
	ComparePassword(hash, plain string) bool
}

type authService struct {
	cost int
}

func NewAuthService(cost int) AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &authService{cost: cost}
}

func (s *authService) HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ComparePassword — несовпадение это не ошибка, а просто false;
// на кривом входе bcrypt тоже вернёт ошибку, и это тоже false.
func (s *authService) ComparePassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
