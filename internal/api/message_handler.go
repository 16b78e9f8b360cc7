package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dennismutuku2005/stream-wisp-sub001/internal/api/dto"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/domain"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/services"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	dispatchService   services.DispatchService
	creditService     services.CreditService
	suggestionService services.SuggestionService
	logger            *zap.Logger
}

func NewHandler(dispatchService services.DispatchService, creditService services.CreditService, suggestionService services.SuggestionService, logger *zap.Logger) *Handler {
	return &Handler{
		dispatchService:   dispatchService,
		creditService:     creditService,
		suggestionService: suggestionService,
		logger:            logger.Named("api"),
	}
}

// dispatchMessageHandler
// @Summary      Sends a message to customers
// @Description  Sends an SMS or WhatsApp message to all customers of the tenant or to one username.
// @Description  Credits are reserved up front and only successfully sent messages are charged.
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        request  body      dto.DispatchRequest  true  "Dispatch request"
// @Success      200      {object}  dto.DispatchResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      402      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      503      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /messages/dispatch [post]
func (h *Handler) dispatchMessageHandler(c *gin.Context) {
	var req dto.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Request: " + err.Error()})
		return
	}

	result, err := h.dispatchService.Dispatch(c.Request.Context(), toDispatchRequest(req))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DispatchResponse{
		Success: true,
		Sent:    result.Sent,
		Failed:  result.Failed,
	})
}

// estimateDispatchHandler
// @Summary      Estimates a dispatch
// @Description  Resolves recipients and reports credit sufficiency and informational cost without sending.
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        request  body      dto.DispatchRequest  true  "Dispatch request"
// @Success      200      {object}  dto.EstimateResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /messages/estimate [post]
func (h *Handler) estimateDispatchHandler(c *gin.Context) {
	var req dto.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Request: " + err.Error()})
		return
	}

	est, err := h.dispatchService.Estimate(c.Request.Context(), toDispatchRequest(req))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EstimateResponse{
		Success:    true,
		Recipients: est.Recipients,
		Available:  est.Available,
		Sufficient: est.Sufficient,
		Cost:       est.Cost.StringFixed(2),
		Currency:   est.Currency,
	})
}

// getDispatchesHandler
// @Param        tenantId  query  string  true   "tenant id"
// @Param        page      query  int     false  "page number"
// @Param        pageSize  query  int     false  "size of page"
// @Summary      Lists recent dispatches
// @Description  Fetches the most recent dispatch summaries of a tenant, newest first.
// @Tags         Messages
// @Produce      json
// @Success      200  {object}  dto.DispatchesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /messages/dispatches [get]
func (h *Handler) getDispatchesHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid page number"})
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid page size"})
		return
	}

	records, total, err := h.dispatchService.RecentDispatches(c.Request.Context(), tenantID, page, pageSize)
	if err != nil {
		h.logger.Error("failed to fetch dispatches", zap.String("tenant_id", tenantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "unexpected error occurred while fetching dispatches."})
		return
	}

	c.JSON(http.StatusOK, toDispatchesResponse(records, total))
}

func toDispatchRequest(req dto.DispatchRequest) domain.DispatchRequest {
	var selector domain.RecipientSelector
	switch strings.ToLower(strings.TrimSpace(req.RecipientType)) {
	case "all", string(domain.SelectorAllCustomers):
		selector = domain.AllCustomers()
	case "specific", string(domain.SelectorSpecificUsername):
		selector = domain.SpecificUsername(req.SpecificUsername)
	default:
		selector = domain.RecipientSelector{Kind: domain.SelectorKind(req.RecipientType)}
	}

	return domain.DispatchRequest{
		TenantID: strings.TrimSpace(req.TenantID),
		Channel:  domain.ParseChannel(req.Channel),
		Body:     req.Body,
		Selector: selector,
	}
}

func toDispatchesResponse(records []domain.DispatchRecord, total int64) dto.DispatchesResponse {
	list := make([]dto.DispatchRecordResponse, len(records))
	for i, r := range records {
		list[i] = dto.DispatchRecordResponse{
			ID:        r.ID,
			Channel:   string(r.Channel),
			Selector:  r.Selector,
			Sent:      r.Sent,
			Failed:    r.Failed,
			CreatedAt: r.CreatedAt,
		}
	}

	return dto.DispatchesResponse{
		Success:    true,
		Dispatches: list,
		Total:      total,
	}
}

// writeError maps the error kinds to status codes. Messages of the named kinds
// are shown to the user verbatim.
func (h *Handler) writeError(c *gin.Context, err error) {
	var credErr *types.InsufficientCreditError

	switch {
	case errors.Is(err, types.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, types.ErrRecipientNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.As(err, &credErr):
		shortfall := credErr.Shortfall()
		c.JSON(http.StatusPaymentRequired, dto.ErrorResponse{
			Message:   err.Error(),
			Required:  &credErr.Required,
			Available: &credErr.Available,
			Shortfall: &shortfall,
		})
	case errors.Is(err, types.ErrGatewayUnavailable):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, types.ErrChannelNotConfigured):
		h.logger.Error("channel not configured", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Message: err.Error()})
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Unexpected error occurred while processing the request."})
	}
}

func requireTenant(c *gin.Context) (string, bool) {
	tenantID := strings.TrimSpace(c.Query("tenantId"))
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "tenantId is required"})
		return "", false
	}
	return tenantID, true
}
