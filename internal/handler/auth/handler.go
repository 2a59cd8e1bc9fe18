package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/rahat-sukari/api/internal/handler"
	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/service/account"
	"github.com/rahat-sukari/api/internal/service/auth"
	"github.com/rahat-sukari/api/pkg/httputil"
)

type Handler struct {
	authSvc    *auth.Service
	accountSvc *account.Service
}

func NewHandler(authSvc *auth.Service, accountSvc *account.Service) *Handler {
	return &Handler{authSvc: authSvc, accountSvc: accountSvc}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	acct, err := h.accountSvc.Register(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, acct)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	resp, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, resp)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}
