package interceptors

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tj/assert"
)

func testContext(t *testing.T) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/healthcheck", nil)
	c.Request.RemoteAddr = "10.0.0.9:54321"
	return c
}

func TestClientIPRealIPHeader(t *testing.T) {
	c := testContext(t)
	c.Request.Header.Set("X-Real-IP", "203.0.113.7")

	ip, err := clientIP(c)
	assert.NoError(t, err)
	assert.Equal(t, "203.0.113.7", ip)
}

func TestClientIPForwardedForFirstEntry(t *testing.T) {
	c := testContext(t)
	c.Request.Header.Set("X-Forwarded-For", "203.0.113.7, 198.51.100.1")

	ip, err := clientIP(c)
	assert.NoError(t, err)
	assert.Equal(t, "203.0.113.7", ip)
}

func TestClientIPRemoteAddrFallback(t *testing.T) {
	c := testContext(t)

	ip, err := clientIP(c)
	assert.NoError(t, err)
	assert.Equal(t, "10.0.0.9", ip)
}
