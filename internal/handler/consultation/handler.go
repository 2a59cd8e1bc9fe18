package consultation

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rahat-sukari/api/internal/handler"
	"github.com/rahat-sukari/api/internal/middleware"
	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/service/consultation"
	"github.com/rahat-sukari/api/pkg/httputil"
)

type Handler struct {
	service *consultation.Service
}

func NewHandler(service *consultation.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateConsultationRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	cons, err := h.service.Create(c.Request.Context(), middleware.ActorFrom(c), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, cons)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	cons, err := h.service.Get(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, cons)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateConsultationRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	cons, err := h.service.Update(c.Request.Context(), middleware.ActorFrom(c), id, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, cons)
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

	if c.Query("mine") == "true" {
		consultations, err := h.service.ListMine(c.Request.Context(), actor)
		if err != nil {
			httputil.Error(c, err)
			return
		}
		httputil.OK(c, consultations)
		return
	}

	patientID, ok := handler.PatientScope(c, actor)
	if !ok {
		return
	}
	consultations, err := h.service.ListByPatient(c.Request.Context(), actor, patientID)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, consultations)
}

// Report returns the rendered HTML consultation summary. The template
// renders into a buffer so access failures still produce a clean JSON
// error.
func (h *Handler) Report(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.service.Report(c.Request.Context(), middleware.ActorFrom(c), id, &buf); err != nil {
		httputil.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	consultations := r.Group("/consultations")
	{
		consultations.POST("", h.Create)
		consultations.GET("", h.List)
		consultations.GET("/:id", h.Get)
		consultations.GET("/:id/report", h.Report)
		consultations.PUT("/:id", h.Update)
		consultations.DELETE("/:id", h.Delete)
	}
}
