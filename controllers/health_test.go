package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"celebrato-backend/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealth_NoDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	useDB(t, nil)
	router := gin.New()
	router.GET("/", Root)
	router.GET("/health", Health)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unconfigured")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealth_DatabaseUp(t *testing.T) {
	gin.SetMode(gin.TestMode)
	useDB(t, testutil.OpenDB(t))
	router := gin.New()
	router.GET("/health", Health)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"up"`)
}

func TestCurrentUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	_, ok := currentUserID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Set("userId", "6f1c5c52-0000-4000-8000-000000000001")
	id, ok := currentUserID(c)
	assert.True(t, ok)
	assert.Equal(t, "6f1c5c52-0000-4000-8000-000000000001", id.String())
}
