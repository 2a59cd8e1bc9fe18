package doctor

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/rahat-sukari/api/internal/service/doctor"
)

func TestFavoriteRoutesAcceptGetAndPost(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(doctor.NewService(nil, nil))
	h.RegisterRoutes(r.Group("/api/v1"))

	methods := make(map[string][]string)
	for _, route := range r.Routes() {
		methods[route.Path] = append(methods[route.Path], route.Method)
	}

	assert.ElementsMatch(t, []string{"GET", "POST"}, methods["/api/v1/doctors/:id/favorite"])
	assert.ElementsMatch(t, []string{"GET", "POST"}, methods["/api/v1/doctors/:id/unfavorite"])
	assert.Contains(t, methods, "/api/v1/favorites")
}
