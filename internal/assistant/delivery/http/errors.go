package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docpilot/internal/assistant"
	"docpilot/pkg/response"
)

// MessageProcessFailed is the generic body for failed assistant runs;
// the underlying provider error stays in the logs only.
const MessageProcessFailed = "Failed to process request"

// mapError translates use-case errors into HTTP responses.
func (h *handler) mapError(c *gin.Context, err error) {
	if errors.Is(err, assistant.ErrEmptyInput) {
		response.Error(c, assistant.ErrEmptyInput)
		return
	}
	response.ErrorWithStatus(c, http.StatusInternalServerError, MessageProcessFailed)
}
