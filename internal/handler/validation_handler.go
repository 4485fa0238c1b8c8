package handler

import (
	"net/http"

	"graduation-tickets/internal/model"
	"graduation-tickets/internal/service"

	"github.com/gin-gonic/gin"
)

type ValidationHandler struct {
	service service.ValidationService
}

func NewValidationHandler(service service.ValidationService) *ValidationHandler {
	return &ValidationHandler{service: service}
}

func (h *ValidationHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("validations", h.ValidateTicket)
	}
}

// ValidateTicket already_used 是正常結果，回 200；not_found 回 404，body 格式相同
func (h *ValidationHandler) ValidateTicket(c *gin.Context) {
	var req model.ValidateTicketRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.Validate(c, req.Code, req.ValidatorID)
	if err != nil {
		handleError(c, err, "ValidateTicket")
		return
	}

	status := http.StatusOK
	if result.Status == model.RedemptionNotFound {
		status = http.StatusNotFound
	}
	c.JSON(status, result)
}
