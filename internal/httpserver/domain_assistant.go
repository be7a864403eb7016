package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	assistantHTTP "docpilot/internal/assistant/delivery/http"
)

// setupAssistantDomain registers the assistant routes.
//
// Pattern to follow when adding a new domain:
//  1. Create HTTP Handler: h := mydomainHTTP.New(srv.l, uc, ...)
//  2. Register Routes:     mydomainHTTP.RegisterRoutes(api.Group("/myresource"), h, srv.mw)
func (srv HTTPServer) setupAssistantDomain(ctx context.Context, api *gin.RouterGroup) error {
	h := assistantHTTP.New(srv.l, srv.assistantUC, srv.memoryStore)

	assistantHTTP.RegisterRoutes(api.Group("/assistant"), h, srv.mw)

	srv.l.Infof(ctx, "Assistant domain registered")
	return nil
}
