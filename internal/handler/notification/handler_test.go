package notification

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/rahat-sukari/api/internal/service/notification"
)

func TestMarkReadAcceptsGetAndPost(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(notification.NewService(nil, nil))
	h.RegisterRoutes(r.Group("/api/v1"))

	methods := make(map[string][]string)
	for _, route := range r.Routes() {
		methods[route.Path] = append(methods[route.Path], route.Method)
	}

	assert.ElementsMatch(t, []string{"GET", "POST"}, methods["/api/v1/notifications/:id/read"])
}
