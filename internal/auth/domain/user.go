package domain

// User is an account record. The password is stored only as an Argon2id
// hash; the plaintext never leaves the signup/login request scope.
type User struct {
	Email         Email
	PasswordHash  string // argon2id, PHC encoded
	RequiresTwoFA bool
}
