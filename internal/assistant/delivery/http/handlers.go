package http

import (
	"github.com/gin-gonic/gin"

	"docpilot/pkg/response"
)

// Chat godoc
// @Summary     Run one assistant turn
// @Description Classifies the request, retrieves similar memories, routes to a task handler and returns the labeled response with the extended history.
// @Tags        Assistant
// @Accept      json
// @Produce     json
// @Param       body body chatReq true "Chat request"
// @Success     200 {object} chatResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/assistant/chat [POST]
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processChatReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Run(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Run: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newChatResp(output))
}

// MemoryStats godoc
// @Summary     Memory store statistics
// @Description Returns record count and backend details of the memory store.
// @Tags        Assistant
// @Accept      json
// @Produce     json
// @Success     200 {object} statsResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/assistant/memory/stats [GET]
func (h *handler) MemoryStats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.store.Stats(ctx)
	if err != nil {
		h.l.Errorf(ctx, "store.Stats: %v", err)
		response.InternalError(c)
		return
	}

	response.OK(c, newStatsResp(stats))
}

// MemoryClear godoc
// @Summary     Clear the memory store
// @Description Removes every stored memory record. Irreversible.
// @Tags        Assistant
// @Accept      json
// @Produce     json
// @Success     200 {object} response.Resp "OK"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/assistant/memory [DELETE]
func (h *handler) MemoryClear(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.store.ClearAll(ctx); err != nil {
		h.l.Errorf(ctx, "store.ClearAll: %v", err)
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
