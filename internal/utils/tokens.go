package utils

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

// NewResetToken — случайный hex-токен для восстановления пароля.
func NewResetToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 32 // 256 бит по умолчанию
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NumericCode — OTP-код фиксированной длины из crypto/rand.
func NumericCode(length int) (string, error) {
	if length <= 0 {
		length = 6
	}
	ten := big.NewInt(10)
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
