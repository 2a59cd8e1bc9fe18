package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/pkg/httputil"
)

// validate is shared across handlers; validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = validator.New()

// BindJSON decodes the body into req and runs the struct's validation
// tags. A false return means the 400 has already been written.
func BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httputil.BadRequest(c, "invalid request body")
		return false
	}
	if err := validate.Struct(req); err != nil {
		httputil.BadRequest(c, validationMessage(err))
		return false
	}
	return true
}

// ParseID parses the named path parameter as a UUID. A false return
// means the 400 has already been written.
func ParseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		httputil.BadRequest(c, "invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}

// PatientScope resolves which patient a list request targets: the
// patient_id query parameter when given, else the caller's own patient
// profile. A false return means the 400 has already been written.
func PatientScope(c *gin.Context, actor model.Actor) (uuid.UUID, bool) {
	if q := c.Query("patient_id"); q != "" {
		id, err := uuid.Parse(q)
		if err != nil {
			httputil.BadRequest(c, "invalid patient_id")
			return uuid.Nil, false
		}
		return id, true
	}
	if actor.PatientID != nil {
		return *actor.PatientID, true
	}
	httputil.BadRequest(c, "patient_id is required")
	return uuid.Nil, false
}

// AbsoluteURL turns an API path into an absolute URL. A configured base
// URL wins; otherwise the scheme and host come from the incoming
// request. With neither available the path is returned as-is.
func AbsoluteURL(c *gin.Context, base, path string) string {
	if base != "" {
		return strings.TrimSuffix(base, "/") + path
	}
	if c != nil && c.Request != nil && c.Request.Host != "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		return scheme + "://" + c.Request.Host + path
	}
	return path
}

func validationMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "email":
			return fe.Field() + " must be a valid email address"
		case "oneof":
			return fe.Field() + " must be one of: " + fe.Param()
		case "min":
			return fe.Field() + " is too short"
		case "max":
			return fe.Field() + " is too long"
		default:
			return fe.Field() + " is invalid"
		}
	}
	return "validation failed"
}
