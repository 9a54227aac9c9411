package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cloudkitchen/backend/internal/api/middleware"
	"github.com/cloudkitchen/backend/internal/services"
	"github.com/cloudkitchen/backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "handler-test-secret"

var reviewColumns = []string{
	"id", "service_id", "service_name", "name", "email", "img", "comment", "star", "reviewed_at",
}

func setupRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *services.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	tokens := services.NewTokenService(testSecret)
	h := NewReviewHandler(services.NewReviewService(db, nil))

	router := gin.New()
	reviews := router.Group("/reviews")
	reviews.GET("", middleware.Auth(tokens), h.GetReviews)
	reviews.POST("", h.CreateReview)
	reviews.PUT("/:reviewId", h.UpdateReview)
	reviews.DELETE("/:reviewId", h.DeleteReview)

	return router, mock, tokens
}

func doJSON(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestReviewHandler_CreateReview(t *testing.T) {
	serviceID := uuid.New().String()
	payload := gin.H{
		"serviceId":   serviceID,
		"serviceName": "Chicken Biryani",
		"name":        "Jane Doe",
		"email":       "jane@example.com",
		"comment":     "ok",
		"star":        4,
	}

	t.Run("returns 201 with the persisted record", func(t *testing.T) {
		router, mock, _ := setupRouter(t)
		mock.ExpectQuery(`SELECT \* FROM "reviews"`).
			WillReturnRows(sqlmock.NewRows(reviewColumns))
		mock.ExpectExec(`INSERT INTO "reviews"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		w := doJSON(router, http.MethodPost, "/reviews", payload, "")

		require.Equal(t, http.StatusCreated, w.Code)
		var resp utils.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		record := resp.Data.(map[string]interface{})
		assert.NotEmpty(t, record["id"])
		assert.Equal(t, serviceID, record["serviceId"])
		assert.NotEmpty(t, record["reviewedAt"])
	})

	t.Run("second submission for the same pair is a 400", func(t *testing.T) {
		router, mock, _ := setupRouter(t)
		mock.ExpectQuery(`SELECT \* FROM "reviews"`).
			WillReturnRows(sqlmock.NewRows(reviewColumns).AddRow(
				uuid.New(), uuid.MustParse(serviceID), "Chicken Biryani", "Jane Doe",
				"jane@example.com", "", "ok", 4, time.Now(),
			))

		w := doJSON(router, http.MethodPost, "/reviews", payload, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp utils.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "Chicken Biryani")
	})

	t.Run("missing required fields is a 400", func(t *testing.T) {
		router, _, _ := setupRouter(t)

		w := doJSON(router, http.MethodPost, "/reviews", gin.H{"star": 4}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store fault is a 500", func(t *testing.T) {
		router, mock, _ := setupRouter(t)
		mock.ExpectQuery(`SELECT \* FROM "reviews"`).
			WillReturnError(assert.AnError)

		w := doJSON(router, http.MethodPost, "/reviews", payload, "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestReviewHandler_GetReviews(t *testing.T) {
	t.Run("per-service listing is public", func(t *testing.T) {
		router, mock, _ := setupRouter(t)
		serviceID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE service_id =`).
			WillReturnRows(sqlmock.NewRows(reviewColumns).AddRow(
				uuid.New(), serviceID, "Chicken Biryani", "Jane Doe",
				"jane@example.com", "", "ok", 4, time.Now(),
			))

		w := doJSON(router, http.MethodGet, "/reviews?id="+serviceID.String(), nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("reviewer listing without a token is a 401", func(t *testing.T) {
		router, _, _ := setupRouter(t)

		w := doJSON(router, http.MethodGet, "/reviews?name=Jane+Doe", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("reviewer listing with a garbage token is a 401", func(t *testing.T) {
		router, _, _ := setupRouter(t)

		w := doJSON(router, http.MethodGet, "/reviews?name=Jane+Doe", nil, "garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("claims matching the filter succeed", func(t *testing.T) {
		router, mock, tokens := setupRouter(t)
		token, err := tokens.Issue("Jane Doe", "jane@example.com")
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE name =`).
			WillReturnRows(sqlmock.NewRows(reviewColumns))

		w := doJSON(router, http.MethodGet, "/reviews?name=Jane+Doe", nil, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("claims differing from the filter are a 403", func(t *testing.T) {
		router, _, tokens := setupRouter(t)
		token, err := tokens.Issue("John Roe", "john@example.com")
		require.NoError(t, err)

		w := doJSON(router, http.MethodGet, "/reviews?name=Jane+Doe", nil, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestReviewHandler_UpdateReview(t *testing.T) {
	t.Run("reports the modified count", func(t *testing.T) {
		router, mock, _ := setupRouter(t)
		mock.ExpectExec(`UPDATE "reviews" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		w := doJSON(router, http.MethodPut, "/reviews/"+uuid.New().String(), gin.H{"star": 5}, "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp utils.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(1), resp.Data.(map[string]interface{})["modifiedCount"])
	})

	t.Run("missing record still answers 200 with count 0", func(t *testing.T) {
		router, mock, _ := setupRouter(t)
		mock.ExpectExec(`UPDATE "reviews" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		w := doJSON(router, http.MethodPut, "/reviews/"+uuid.New().String(), gin.H{"star": 5}, "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp utils.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(0), resp.Data.(map[string]interface{})["modifiedCount"])
	})

	t.Run("malformed id is a 400", func(t *testing.T) {
		router, _, _ := setupRouter(t)

		w := doJSON(router, http.MethodPut, "/reviews/not-an-id", gin.H{"star": 5}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReviewHandler_DeleteReview(t *testing.T) {
	t.Run("reports the deleted count", func(t *testing.T) {
		router, mock, _ := setupRouter(t)
		mock.ExpectExec(`DELETE FROM "reviews"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		w := doJSON(router, http.MethodDelete, "/reviews/"+uuid.New().String(), nil, "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp utils.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(1), resp.Data.(map[string]interface{})["deletedCount"])
	})

	t.Run("missing record still answers 200 with count 0", func(t *testing.T) {
		router, mock, _ := setupRouter(t)
		mock.ExpectExec(`DELETE FROM "reviews"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		w := doJSON(router, http.MethodDelete, "/reviews/"+uuid.New().String(), nil, "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp utils.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(0), resp.Data.(map[string]interface{})["deletedCount"])
	})
}
