package handler

import (
	"net/http"

	"graduation-tickets/internal/model"
	"graduation-tickets/internal/service"

	"github.com/gin-gonic/gin"
)

type IssuerHandler struct {
	service service.IssuanceService
}

func NewIssuerHandler(service service.IssuanceService) *IssuerHandler {
	return &IssuerHandler{service: service}
}

func (h *IssuerHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("issuers", h.RegisterIssuer)
		router.GET("issuers/:name", h.GetSummary)
	}
}

func (h *IssuerHandler) RegisterIssuer(c *gin.Context) {
	var req model.RegisterIssuerRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	issuer, err := h.service.RegisterIssuer(c, req)
	if err != nil {
		handleError(c, err, "RegisterIssuer")
		return
	}
	c.JSON(http.StatusCreated, issuer)
}

func (h *IssuerHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.Summary(c, c.Param("name"))
	if err != nil {
		handleError(c, err, "GetSummary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
