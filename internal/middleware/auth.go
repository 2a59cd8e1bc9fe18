package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/pkg/httputil"
)

// ContextActor is the gin context key the authenticated Actor is stored
// under.
const ContextActor = "actor"

// ActorResolver validates a bearer token and loads the account behind
// it.
type ActorResolver interface {
	Resolve(ctx context.Context, tokenString string) (model.Actor, error)
}

type AuthMiddleware struct {
	resolver ActorResolver
}

func NewAuthMiddleware(resolver ActorResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Authenticate verifies the bearer token and stores the resolved Actor
// in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid authorization format")
			return
		}

		actor, err := m.resolver.Resolve(c.Request.Context(), parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(ContextActor, actor)
		c.Next()
	}
}

// ActorFrom retrieves the Actor placed by Authenticate. The zero Actor
// comes back when the middleware did not run.
func ActorFrom(c *gin.Context) model.Actor {
	if v, ok := c.Get(ContextActor); ok {
		if actor, ok := v.(model.Actor); ok {
			return actor
		}
	}
	return model.Actor{}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
		Status:  "error",
		Message: message,
	})
}
