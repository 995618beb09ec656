package auth

import "golang.org/x/crypto/bcrypt"

// PasswordVault wraps the one-way hash primitive used for stored
// credentials. Verification is constant-time via bcrypt.
type PasswordVault struct {
	cost int
}

func NewPasswordVault() *PasswordVault {
	return &PasswordVault{cost: bcrypt.DefaultCost}
}

// Hash derives a storable hash from a plaintext password.
func (v *PasswordVault) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored hash.
func (v *PasswordVault) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
