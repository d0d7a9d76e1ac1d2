package interceptors

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// clientIP resolves the originating client address. The server is meant
// to run behind a single reverse proxy (nginx or an equivalent), so only
// X-Real-IP and the first X-Forwarded-For entry are trusted before
// falling back to the socket address.
func clientIP(c *gin.Context) (string, error) {
	if ip := strings.TrimSpace(c.Request.Header.Get("X-Real-IP")); ip != "" {
		return ip, nil
	}

	if forwarded := c.Request.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip, nil
		}
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return "", err
	}
	return ip, nil
}
