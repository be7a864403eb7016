package http

import (
	"github.com/gin-gonic/gin"

	"docpilot/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
// Chat is rate-limited per client; memory administration is not.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.POST("/chat", mw.RateLimit(), h.Chat)

	mem := rg.Group("/memory")
	{
		mem.GET("/stats", h.MemoryStats)
		mem.DELETE("", h.MemoryClear)
	}
}
