package account

import (
	"github.com/gin-gonic/gin"

	"github.com/rahat-sukari/api/internal/handler"
	"github.com/rahat-sukari/api/internal/middleware"
	"github.com/rahat-sukari/api/internal/service/account"
	"github.com/rahat-sukari/api/pkg/httputil"
)

type Handler struct {
	service *account.Service
}

func NewHandler(service *account.Service) *Handler {
	return &Handler{service: service}
}

// Me returns the calling account.
func (h *Handler) Me(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	acct, err := h.service.Get(c.Request.Context(), actor.AccountID)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, acct)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	actor := middleware.ActorFrom(c)

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, gin.H{"deleted": true})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	accounts := r.Group("/accounts")
	{
		accounts.GET("/me", h.Me)
		accounts.DELETE("/:id", h.Delete)
	}
}
