package model

// PasswordHasher hashes plaintext passwords and verifies them against
// previously produced encoded hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) bool
}
