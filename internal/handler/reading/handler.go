package reading

import (
	"github.com/gin-gonic/gin"

	"github.com/rahat-sukari/api/internal/handler"
	"github.com/rahat-sukari/api/internal/middleware"
	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/service/reading"
	"github.com/rahat-sukari/api/pkg/httputil"
)

type Handler struct {
	service *reading.Service
}

func NewHandler(service *reading.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateGlucoseReadingRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	r, err := h.service.Create(c.Request.Context(), middleware.ActorFrom(c), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, r)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	r, err := h.service.Get(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, r)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateGlucoseReadingRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	r, err := h.service.Update(c.Request.Context(), middleware.ActorFrom(c), id, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, r)
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
	actor := middleware.ActorFrom(c)
	patientID, ok := handler.PatientScope(c, actor)
	if !ok {
		return
	}

	readings, err := h.service.ListByPatient(c.Request.Context(), actor, patientID)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, readings)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	readings := r.Group("/glucose-readings")
	{
		readings.POST("", h.Create)
		readings.GET("", h.List)
		readings.GET("/:id", h.Get)
		readings.PUT("/:id", h.Update)
		readings.DELETE("/:id", h.Delete)
	}
}
