package api

import (
	"net/http"

	"github.com/dennismutuku2005/stream-wisp-sub001/internal/api/dto"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/domain"

	"github.com/gin-gonic/gin"
)

// suggestCustomersHandler
// @Param        tenantId  query  string  true  "tenant id"
// @Param        q         query  string  true  "username, name or phone fragment (at least 2 characters)"
// @Summary      Suggests customers
// @Description  Looks up customers whose username, name or phone number contains the query.
// @Tags         Customers
// @Produce      json
// @Success      200  {object}  dto.SuggestionsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /customers/suggest [get]
func (h *Handler) suggestCustomersHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	customers, err := h.suggestionService.Suggest(c.Request.Context(), tenantID, c.Query("q"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSuggestionsResponse(customers))
}

func toSuggestionsResponse(customers []domain.Customer) dto.SuggestionsResponse {
	list := make([]dto.SuggestionResponse, len(customers))
	for i, cu := range customers {
		list[i] = dto.SuggestionResponse{
			Username:    cu.Username,
			FullName:    cu.FullName,
			PhoneNumber: cu.PhoneNumber,
		}
	}
	return dto.SuggestionsResponse{Success: true, Suggestions: list}
}
