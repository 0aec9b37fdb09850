package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS lets the dashboard call the API from the configured origins.
// An entry "*" allows any origin; otherwise a matching Origin is echoed back.
func CORS(origenes []string) gin.HandlerFunc {
	permitidos := make(map[string]bool, len(origenes))
	comodin := false
	for _, o := range origenes {
		o = strings.ToLower(strings.TrimRight(strings.TrimSpace(o), "/"))
		switch o {
		case "":
		case "*":
			comodin = true
		default:
			permitidos[o] = true
		}
	}

	return func(c *gin.Context) {
		if comodin {
			c.Header("Access-Control-Allow-Origin", "*")
		} else {
			c.Writer.Header().Add("Vary", "Origin")
			if origen := c.GetHeader("Origin"); origen != "" && permitidos[strings.ToLower(origen)] {
				c.Header("Access-Control-Allow-Origin", origen)
			}
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
