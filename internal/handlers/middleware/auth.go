// internal/handlers/middleware/auth.go
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/pkg/logger"
	"github.com/ammerola/stockflow-be/internal/pkg/response"
)

// TokenParser verifies a bearer token and returns the caller it identifies.
type TokenParser interface {
	Parse(token string) (domain.Actor, error)
}

type actorKey struct{}

type requestStateKey struct{}

// requestState is shared between Logger and the handlers further in so the
// access log can name the authenticated caller.
type requestState struct {
	mu     sync.Mutex
	caller *domain.Actor
}

func (s *requestState) setActor(a domain.Actor) {
	s.mu.Lock()
	s.caller = &a
	s.mu.Unlock()
}

func (s *requestState) actor() (domain.Actor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.caller == nil {
		return domain.Actor{}, false
	}
	return *s.caller, true
}

// WithActor stores the authenticated caller in ctx.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	ctx = context.WithValue(ctx, actorKey{}, actor)
	ctx = context.WithValue(ctx, logger.ContextKeyUserID, actor.UserID)
	return context.WithValue(ctx, logger.ContextKeyRoleID, actor.RoleID)
}

// ActorFromContext returns the caller stored by Authenticate.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}

// Authenticate requires a valid "Authorization: Bearer <token>" header.
func Authenticate(tokens TokenParser, l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				response.Unauthorized(w)
				return
			}

			actor, err := tokens.Parse(strings.TrimSpace(token))
			if err != nil {
				l.WarnContext(r.Context(), "rejected bearer token", slog.String("error", err.Error()))
				response.Unauthorized(w)
				return
			}

			if state, ok := r.Context().Value(requestStateKey{}).(*requestState); ok {
				state.setActor(actor)
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// RequireRole lets through only callers holding one of roles.
func RequireRole(roles ...int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				response.Unauthorized(w)
				return
			}
			for _, role := range roles {
				if actor.RoleID == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Unauthorized(w)
		})
	}
}
