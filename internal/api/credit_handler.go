package api

import (
	"net/http"

	"github.com/dennismutuku2005/stream-wisp-sub001/internal/api/dto"

	"github.com/gin-gonic/gin"
)

// getCreditsHandler
// @Param        tenantId  query  string  true  "tenant id"
// @Summary      Gets credit balances
// @Description  Returns the SMS and WhatsApp credit balances of a tenant with the informational per-message price.
// @Tags         Credits
// @Produce      json
// @Success      200  {object}  dto.CreditsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /credits [get]
func (h *Handler) getCreditsHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	acc, err := h.creditService.GetBalances(c.Request.Context(), tenantID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	pricing := h.creditService.Pricing()
	c.JSON(http.StatusOK, dto.CreditsResponse{
		Success:  true,
		SMS:      acc.SMSCredits,
		WhatsApp: acc.WhatsAppCredits,
		Pricing: dto.ChannelPricing{
			SMS:      pricing.SMS.StringFixed(2),
			WhatsApp: pricing.WhatsApp.StringFixed(2),
			Currency: pricing.Currency,
		},
	})
}
