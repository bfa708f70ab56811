package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/pkg/helpers"
	"github.com/oksasatya/go-ddd-group-chat/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserNameKey  = "userName"
	CtxUserEmailKey = "userEmail"
)

// SessionValidator resolves a session token to its live user.
type SessionValidator interface {
	Execute(ctx context.Context, token string) (*entity.User, error)
}

// BearerToken returns the token of an "Authorization: Bearer" header, or "".
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// Auth validates the session token from the Authorization header, falling
// back to the session cookie. It sets userID, userName, and userEmail in the
// Gin context on success.
func Auth(validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c.Request)
		if token == "" {
			token, _ = c.Cookie(helpers.SessionCookie)
		}
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing session token", nil)
			return
		}
		u, err := validator.Execute(c.Request.Context(), token)
		if err != nil {
			// a backend failure is not a revoked session
			if domainerr.KindOf(err) == domainerr.KindUnexpected {
				response.Abort(c, http.StatusInternalServerError, "internal error", gin.H{"code": domainerr.KindUnexpected.String()})
				return
			}
			response.Abort(c, http.StatusUnauthorized, "invalid session", err.Error())
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserNameKey, u.Name)
		c.Set(CtxUserEmailKey, u.Email)
		c.Next()
	}
}
