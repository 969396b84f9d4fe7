package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost trades hashing time for brute-force resistance. Share-link
// records can outlive their file, so the hash has to stay expensive even
// if a record is exfiltrated.
const bcryptCost = 12

// HashPassword generates a salted bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword reports whether the password matches the stored hash.
// bcrypt recomputes the KDF and compares in constant time.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
