package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clientdesk/clientdesk/internal/shared/errors"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
	"github.com/clientdesk/clientdesk/internal/shared/utils"
)

type AIModelHandler struct {
	gateway modelRefresher
	logger  logger.Interface
}

func NewAIModelHandler(gateway modelRefresher, logger logger.Interface) *AIModelHandler {
	return &AIModelHandler{
		gateway: gateway,
		logger:  logger,
	}
}

type refreshModelResponse struct {
	Model string `json:"model"`
}

// RefreshModel handles POST /admin/ai/model/refresh
//
//	@Summary		Re-select the active language model
//	@Description	Queries the provider catalog and caches the best generation-capable model.
//	@Tags			admin
//	@Produce		json
//	@Security		Bearer
//	@Success		200	{object}	utils.APIResponse
//	@Failure		502	{object}	utils.APIResponse	"Provider unavailable"
//	@Router			/admin/ai/model/refresh [post]
func (h *AIModelHandler) RefreshModel(c *gin.Context) {
	if h.gateway == nil {
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("automated replies are disabled"))
		return
	}

	model, err := h.gateway.RefreshModel(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to refresh AI model", "error", err)
		c.JSON(http.StatusBadGateway, utils.APIResponse{
			Success: false,
			Error:   &utils.ErrorInfo{Type: "provider_unavailable", Message: "failed to query model catalog"},
		})
		return
	}

	h.logger.Infow("active AI model refreshed", "model", model)
	utils.SuccessResponse(c, http.StatusOK, "Model refreshed", refreshModelResponse{Model: model})
}
