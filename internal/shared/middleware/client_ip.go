package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const ContextClientIP = "client_ip"

// ClientIP stores the caller address in the gin context. Edge deployments
// sit behind a proxy, so X-Forwarded-For wins over RemoteAddr.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextClientIP, extractClientIP(c))
		c.Next()
	}
}

func extractClientIP(c *gin.Context) string {
	// "client, proxy1, proxy2"
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}

	if xri := c.GetHeader("X-Real-IP"); net.ParseIP(xri) != nil {
		return xri
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		ip = c.Request.RemoteAddr
	}
	if net.ParseIP(ip) != nil {
		return ip
	}
	return ""
}
