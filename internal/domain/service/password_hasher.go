package service

// PasswordHasher hashes and verifies login passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns nil when the password matches the hash.
	Verify(hashedPassword, password string) error
}
