package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/creator-booking-backend/internal/db"
	"github.com/nekogravitycat/creator-booking-backend/migrations"
)

// End-to-end tests against a real PostgreSQL. They run only when TEST_DB_DSN is set.

type testApp struct {
	container *Container
	pool      *pgxpool.Pool
}

func setupApp(t *testing.T) *testApp {
	t.Helper()

	// Attempt to load .env from the repository root
	_ = godotenv.Load("../../.env")

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set")
	}
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	pool, err := db.NewPool(ctx, dsn, 0)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = db.Migrate(ctx, pool, migrations.FS)
	require.NoError(t, err)
	clearTables(t, pool)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	container := NewContainer(Config{
		Logger:          zap.NewNop(),
		DBPool:          pool,
		Redis:           rdb,
		JWTSecret:       "test-secret",
		DraftTTL:        time.Hour,
		RateLimitPerMin: 600,
		RateLimitBurst:  100,
	})

	return &testApp{container: container, pool: pool}
}

func clearTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		"TRUNCATE TABLE public.booking_lines, public.bookings, public.resources CASCADE")
	require.NoError(t, err)
}

func (a *testApp) seedResource(t *testing.T, category, name string, rate float64) string {
	t.Helper()
	var id string
	err := a.pool.QueryRow(context.Background(),
		`INSERT INTO public.resources (category, name, hourly_rate) VALUES ($1, $2, $3) RETURNING id`,
		category, name, rate,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func (a *testApp) token(t *testing.T, userID string) string {
	t.Helper()
	token, err := a.container.JWTManager.Issue(userID)
	require.NoError(t, err)
	return token
}

func (a *testApp) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.container.Router.ServeHTTP(w, req)
	return w
}

// buildToReview walks a builder session to the review step.
func (a *testApp) buildToReview(t *testing.T, token, creatorID, studioID, date, slot string) {
	t.Helper()
	steps := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, "/setup", gin.H{"own_talent": false}},
		{http.MethodPost, "/creators", gin.H{"creator_id": creatorID}},
		{http.MethodPatch, "/creators/" + creatorID, gin.H{"quantity": 2}},
		{http.MethodPost, "/next", nil},
		{http.MethodPut, "/style", gin.H{"style": "unboxing"}},
		{http.MethodPost, "/next", nil},
		{http.MethodPut, "/studio", gin.H{"studio_id": studioID}},
		{http.MethodPost, "/next", nil},
		{http.MethodPost, "/next", nil},
		{http.MethodPut, "/date", gin.H{"date": date}},
		{http.MethodPut, "/time", gin.H{"time": slot}},
		{http.MethodPost, "/next", nil},
	}
	for _, s := range steps {
		w := a.do(s.method, "/v1/campaign-builder"+s.path, s.body, token)
		require.Equal(t, http.StatusOK, w.Code, "%s %s: %s", s.method, s.path, w.Body.String())
	}
}

func TestCampaignBuilderEndToEnd(t *testing.T) {
	a := setupApp(t)

	creatorID := a.seedResource(t, "creator", "Ava", 500)
	studioID := a.seedResource(t, "studio", "Loft", 1200)
	date := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")

	alice := a.token(t, "1f0e2d3c-4b5a-4968-8776-655443322110")
	bob := a.token(t, "2a1b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d")

	t.Run("Catalog lists creators", func(t *testing.T) {
		w := a.do(http.MethodGet, "/v1/resources?category=creator", nil, alice)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "Ava")
		assert.NotContains(t, w.Body.String(), "Loft")
	})

	t.Run("Submit books the slot", func(t *testing.T) {
		a.buildToReview(t, alice, creatorID, studioID, date, "10:00 AM")

		w := a.do(http.MethodPost, "/v1/campaign-builder/submit", nil, alice)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp struct {
			BookingID string  `json:"booking_id"`
			Total     float64 `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.BookingID)
		// 500*2 + 1200*2 + 10%
		assert.Equal(t, 3740.0, resp.Total)

		w = a.do(http.MethodGet, "/v1/bookings/"+resp.BookingID, nil, alice)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = a.do(http.MethodGet, "/v1/bookings/"+resp.BookingID, nil, bob)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Availability reports the booked slot", func(t *testing.T) {
		w := a.do(http.MethodGet, "/v1/availability/"+studioID+"?date="+date, nil, bob)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Booked []string `json:"booked"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"10:00 AM"}, resp.Booked)
	})

	t.Run("Taken slot cannot be chosen", func(t *testing.T) {
		a.buildToReview(t, bob, creatorID, studioID, date, "11:00 AM")

		w := a.do(http.MethodPost, "/v1/campaign-builder/back", nil, bob)
		require.Equal(t, http.StatusOK, w.Code)
		w = a.do(http.MethodPut, "/v1/campaign-builder/time", gin.H{"time": "10:00 AM"}, bob)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
