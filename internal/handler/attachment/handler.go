package attachment

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/rahat-sukari/api/internal/handler"
	"github.com/rahat-sukari/api/internal/middleware"
	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/service/attachment"
	"github.com/rahat-sukari/api/pkg/httputil"
)

// uploads larger than this are rejected before touching the store
const maxUploadBytes = 20 << 20

type Handler struct {
	service *attachment.Service
	baseURL string
}

func NewHandler(service *attachment.Service, baseURL string) *Handler {
	return &Handler{service: service, baseURL: baseURL}
}

// Upload accepts a multipart form with a "file" part and an optional
// "description" field.
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		httputil.BadRequest(c, "file is required")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		httputil.BadRequest(c, "file too large")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		httputil.Error(c, err)
		return
	}
	defer src.Close()

	a, err := h.service.Upload(
		c.Request.Context(),
		middleware.ActorFrom(c),
		fileHeader.Filename,
		c.PostForm("description"),
		src,
	)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	h.setFileURL(c, a)
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
	h.setFileURL(c, a)
	httputil.OK(c, a)
}

// Download streams the backing file, gated the same way as the
// metadata.
func (h *Handler) Download(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	a, rc, err := h.service.Open(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.FileName))
	c.DataFromReader(200, -1, "application/octet-stream", rc, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateAttachmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	a, err := h.service.Update(c.Request.Context(), middleware.ActorFrom(c), id, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	h.setFileURL(c, a)
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
	actor := middleware.ActorFrom(c)
	patientID, ok := handler.PatientScope(c, actor)
	if !ok {
		return
	}

	attachments, err := h.service.ListByPatient(c.Request.Context(), actor, patientID)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	for _, a := range attachments {
		h.setFileURL(c, a)
	}
	httputil.OK(c, attachments)
}

func (h *Handler) setFileURL(c *gin.Context, a *model.Attachment) {
	path := "/api/v1/attachments/" + a.ID.String() + "/download"
	a.FileURL = handler.AbsoluteURL(c, h.baseURL, path)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	attachments := r.Group("/attachments")
	{
		attachments.POST("", h.Upload)
		attachments.GET("", h.List)
		attachments.GET("/:id", h.Get)
		attachments.GET("/:id/download", h.Download)
		attachments.PUT("/:id", h.Update)
		attachments.DELETE("/:id", h.Delete)
	}
}
