package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowFunc reports whether a request bypasses the limiter.
type AllowFunc func(*gin.Context) bool

// AllowPrivateIP lets loopback and RFC 1918 / RFC 4193 clients through unlimited.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		ip := net.ParseIP(ipFromCtx(c))
		return ip != nil && (ip.IsLoopback() || ip.IsPrivate())
	}
}
