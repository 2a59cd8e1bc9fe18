package alert

import (
	"github.com/gin-gonic/gin"

	"github.com/rahat-sukari/api/internal/handler"
	"github.com/rahat-sukari/api/internal/middleware"
	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/service/alert"
	"github.com/rahat-sukari/api/pkg/httputil"
)

type Handler struct {
	service *alert.Service
}

func NewHandler(service *alert.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAlertRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	a, err := h.service.Create(c.Request.Context(), middleware.ActorFrom(c), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, a)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	a, err := h.service.Get(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, a)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateAlertRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	a, err := h.service.Update(c.Request.Context(), middleware.ActorFrom(c), id, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, a)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, gin.H{"deleted": true})
}

func (h *Handler) List(c *gin.Context) {
	alerts, err := h.service.List(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, alerts)
}

// ToggleAll flips every alert the caller owns in one request.
func (h *Handler) ToggleAll(c *gin.Context) {
	var req model.ToggleAlertsRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.ToggleAll(c.Request.Context(), middleware.ActorFrom(c), *req.Active)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, resp)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	alerts := r.Group("/alerts")
	{
		alerts.POST("", h.Create)
		alerts.GET("", h.List)
		alerts.POST("/toggle-all", h.ToggleAll)
		alerts.GET("/:id", h.Get)
		alerts.PUT("/:id", h.Update)
		alerts.DELETE("/:id", h.Delete)
	}
}
