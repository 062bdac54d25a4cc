package common

import "context"

type ctxKey string

const (
	principalKey ctxKey = "principal"
	requestIDKey ctxKey = "request_id"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	ID       uint64
	Kind     PrincipalKind
	ModLevel ModLevel
}

func (p Principal) IsUser() bool      { return p.Kind == KindUser }
func (p Principal) IsModerator() bool { return p.Kind == KindModerator }

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// UserIDFromContext returns the caller's id when the caller is a regular user.
func UserIDFromContext(ctx context.Context) (uint64, bool) {
	p, ok := PrincipalFromContext(ctx)
	if !ok || !p.IsUser() {
		return 0, false
	}
	return p.ID, true
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
