package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/creator-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/creator-booking-backend/internal/resource"
)

const studioID = "7c2a3e1f-4d5b-4a6c-9b0d-1e2f3a4b5c6d"

type fakeService struct {
	items        []*resource.Resource
	lastCategory resource.Category
	lastActive   bool
}

func (f *fakeService) ListResources(ctx context.Context, category resource.Category, activeOnly bool) ([]*resource.Resource, error) {
	f.lastCategory = category
	f.lastActive = activeOnly
	return f.items, nil
}

func (f *fakeService) GetByID(ctx context.Context, id string) (*resource.Resource, error) {
	for _, r := range f.items {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, resource.ErrNotFound
}

func setupRouter(svc *fakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), func(c *gin.Context) { c.Next() })
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListResources(t *testing.T) {
	svc := &fakeService{items: []*resource.Resource{
		{ID: studioID, Category: resource.CategoryStudio, Name: "Loft", HourlyRate: 1200, IsAvailable: true},
	}}
	r := setupRouter(svc)

	w := get(r, "/v1/resources?category=studio&active_only=true")
	require.Equal(t, http.StatusOK, w.Code)

	var resp response.ListResponse[ResourceResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Loft", resp.Items[0].Name)
	assert.Equal(t, []string{}, resp.Items[0].Tags)
	assert.Equal(t, resource.CategoryStudio, svc.lastCategory)
	assert.True(t, svc.lastActive)

	t.Run("Unknown category", func(t *testing.T) {
		w := get(r, "/v1/resources?category=drone")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Empty list is not null", func(t *testing.T) {
		w := get(setupRouter(&fakeService{}), "/v1/resources")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"items":[]}`, w.Body.String())
	})
}

func TestGetResource(t *testing.T) {
	r := setupRouter(&fakeService{items: []*resource.Resource{
		{ID: studioID, Category: resource.CategoryStudio, Name: "Loft", HourlyRate: 1200},
	}})

	assert.Equal(t, http.StatusOK, get(r, "/v1/resources/"+studioID).Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/v1/resources/9e4c5a3b-6f7d-4c8e-9d2f-3a4b5c6d7e8f").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/v1/resources/loft").Code)
}
