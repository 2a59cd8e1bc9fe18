package patient

import (
	"fmt"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/rahat-sukari/api/internal/handler"
	"github.com/rahat-sukari/api/internal/middleware"
	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/service/patient"
	"github.com/rahat-sukari/api/pkg/httputil"
)

// uploads larger than this are rejected before touching the store
const maxPictureBytes = 5 << 20

type Handler struct {
	service *patient.Service
	baseURL string
}

func NewHandler(service *patient.Service, baseURL string) *Handler {
	return &Handler{service: service, baseURL: baseURL}
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	h.setPictureURL(c, p)
	httputil.OK(c, p)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdatePatientRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Update(c.Request.Context(), middleware.ActorFrom(c), id, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	h.setPictureURL(c, p)
	httputil.OK(c, p)
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

// List returns the caller's followed patients; doctor only.
func (h *Handler) List(c *gin.Context) {
	patients, err := h.service.List(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	for _, p := range patients {
		h.setPictureURL(c, p)
	}
	httputil.OK(c, patients)
}

// MedicalData returns the profile with all clinical records embedded.
func (h *Handler) MedicalData(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	data, err := h.service.MedicalData(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	h.setPictureURL(c, data.Profile)
	httputil.OK(c, data)
}

// UploadPicture accepts a multipart form with a "file" part and replaces
// the profile picture.
func (h *Handler) UploadPicture(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httputil.BadRequest(c, "file is required")
		return
	}
	if fileHeader.Size > maxPictureBytes {
		httputil.BadRequest(c, "file too large")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		httputil.Error(c, err)
		return
	}
	defer src.Close()

	p, err := h.service.UploadPicture(c.Request.Context(), middleware.ActorFrom(c), id, fileHeader.Filename, src)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	h.setPictureURL(c, p)
	httputil.OK(c, p)
}

// DownloadPicture streams the profile picture, gated the same way as the
// profile.
func (h *Handler) DownloadPicture(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	p, rc, err := h.service.OpenPicture(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", path.Base(p.ProfilePicture)))
	c.DataFromReader(200, -1, "application/octet-stream", rc, nil)
}

func (h *Handler) setPictureURL(c *gin.Context, p *model.PatientProfile) {
	if p == nil || p.ProfilePicture == "" {
		return
	}
	path := "/api/v1/patients/" + p.ID.String() + "/profile-picture"
	p.ProfilePictureURL = handler.AbsoluteURL(c, h.baseURL, path)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.List)
		patients.GET("/:id", h.Get)
		patients.PUT("/:id", h.Update)
		patients.DELETE("/:id", h.Delete)
		patients.GET("/:id/medical-data", h.MedicalData)
		patients.POST("/:id/profile-picture", h.UploadPicture)
		patients.GET("/:id/profile-picture", h.DownloadPicture)
	}
}
