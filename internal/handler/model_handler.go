package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/oleynichenko/ai-tools-api/internal/port"
)

// ModelHandler handles provider model listing endpoints.
type ModelHandler struct {
	gateway port.ModelGateway
}

// NewModelHandler creates a new ModelHandler.
func NewModelHandler(gw port.ModelGateway) *ModelHandler {
	return &ModelHandler{gateway: gw}
}

// ListModels handles GET /openai/models
func (h *ModelHandler) ListModels(c *gin.Context) {
	models, err := h.gateway.ListModels(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, models)
}
