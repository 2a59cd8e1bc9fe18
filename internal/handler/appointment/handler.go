package appointment

import (
	"github.com/gin-gonic/gin"

	"github.com/rahat-sukari/api/internal/handler"
	"github.com/rahat-sukari/api/internal/middleware"
	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/service/appointment"
	"github.com/rahat-sukari/api/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	apt, err := h.service.Create(c.Request.Context(), middleware.ActorFrom(c), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, apt)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	apt, err := h.service.Get(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, apt)
}

func (h *Handler) List(c *gin.Context) {
	status := model.AppointmentStatus(c.Query("status"))

	appointments, err := h.service.List(c.Request.Context(), middleware.ActorFrom(c), status)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, appointments)
}

// Respond records the doctor's accept or reject decision.
func (h *Handler) Respond(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.RespondAppointmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	apt, err := h.service.Respond(c.Request.Context(), middleware.ActorFrom(c), id, *req.Accept)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, apt)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.Create)
		appointments.GET("", h.List)
		appointments.GET("/:id", h.Get)
		appointments.POST("/:id/respond", h.Respond)
	}
}
