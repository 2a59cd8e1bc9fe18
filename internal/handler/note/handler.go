package note

import (
	"github.com/gin-gonic/gin"

	"github.com/rahat-sukari/api/internal/handler"
	"github.com/rahat-sukari/api/internal/middleware"
	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/service/note"
	"github.com/rahat-sukari/api/pkg/httputil"
)

type Handler struct {
	service *note.Service
}

func NewHandler(service *note.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateDoctorNoteRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	n, err := h.service.Create(c.Request.Context(), middleware.ActorFrom(c), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, n)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	n, err := h.service.Get(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, n)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateDoctorNoteRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	n, err := h.service.Update(c.Request.Context(), middleware.ActorFrom(c), id, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, n)
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

// List returns a patient's notes, or the authoring doctor's own notes
// when mine=true.
func (h *Handler) List(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	if c.Query("mine") == "true" {
		notes, err := h.service.ListMine(c.Request.Context(), actor)
		if err != nil {
			httputil.Error(c, err)
			return
		}
		httputil.OK(c, notes)
		return
	}

	patientID, ok := handler.PatientScope(c, actor)
	if !ok {
		return
	}
	notes, err := h.service.ListByPatient(c.Request.Context(), actor, patientID)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, notes)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notes := r.Group("/doctor-notes")
	{
		notes.POST("", h.Create)
		notes.GET("", h.List)
		notes.GET("/:id", h.Get)
		notes.PUT("/:id", h.Update)
		notes.DELETE("/:id", h.Delete)
	}
}
