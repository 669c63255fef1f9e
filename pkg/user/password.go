package user

import (
	"Recipe-Box-Backend/domain"

	"golang.org/x/crypto/bcrypt"
)

const maxPasswordBytes = 72

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", domain.ErrPasswordEmpty
	}
	if len(password) > maxPasswordBytes {
		return "", domain.ErrPasswordTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches hash. A malformed hash is a
// mismatch.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
