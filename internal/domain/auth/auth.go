// Package auth declares the credential and session adapters the use cases
// depend on. Implementations live in pkg/helpers.
package auth

//go:generate mockgen -source=auth.go -destination=../../mocks/mock_auth.go -package=mocks

type Hasher interface {
	Hash(value string) (string, error)
}

type Encrypter interface {
	Compare(value, hash string) bool
}

// SessionPayload is what a session token carries.
type SessionPayload struct {
	ID    string
	Email string
}

// SessionHandler issues and verifies opaque session tokens. VerifySession
// returns a nil payload (or an error) for anything it does not accept,
// expired tokens included.
type SessionHandler interface {
	GenerateSession(p SessionPayload) (string, error)
	VerifySession(token string) (*SessionPayload, error)
}
