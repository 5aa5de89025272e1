package account

import "context"

// Account is a portal login in arkenix_clients. Password holds either a bcrypt hash
// or, for legacy rows, the plaintext secret.
type Account struct {
	ID          string
	ClientID    string
	Username    string
	Password    string
	CompanyName string
}

// Session is the authenticated caller. Every client-scoped operation receives it
// explicitly.
type Session struct {
	ClientID string `json:"client_id"`
	Username string `json:"username"`
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	if !ok || s.ClientID == "" {
		return Session{}, false
	}
	return s, true
}
