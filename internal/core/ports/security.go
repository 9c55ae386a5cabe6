package ports

import "github.com/inkpost/blog-api/internal/core/domain"

// PasswordHasher wraps a one-way salted hash with a fixed work factor.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify returns false on mismatch. It only errors when hash is malformed.
	Verify(plaintext, hash string) (bool, error)
	// VerifyDummy burns the same CPU as a real Verify. Callers use it when
	// no account matched so both login failures take the same time.
	VerifyDummy(plaintext string)
}

// TokenIssuer signs time-limited identity tokens.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenVerifier validates a token and resolves the identity it carries.
// Every failure is reported as domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}
