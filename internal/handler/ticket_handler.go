package handler

import (
	"net/http"

	"graduation-tickets/internal/model"
	"graduation-tickets/internal/service"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	issuance   service.IssuanceService
	validation service.ValidationService
	tickets    service.TicketService
}

func NewTicketHandler(
	issuance service.IssuanceService,
	validation service.ValidationService,
	tickets service.TicketService,
) *TicketHandler {
	return &TicketHandler{
		issuance:   issuance,
		validation: validation,
		tickets:    tickets,
	}
}

func (h *TicketHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("tickets", h.IssueTicket)
		router.GET("tickets", h.ListTickets)
		router.GET("tickets/:code", h.GetTicket)
		router.GET("tickets/:code/events", h.GetTicketEvents)
	}
}

type ticketCodeUri struct {
	Code string `uri:"code" binding:"required"`
}

func (h *TicketHandler) IssueTicket(c *gin.Context) {
	var req model.IssueTicketRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	ticket, err := h.issuance.Issue(c, req)
	if err != nil {
		handleError(c, err, "IssueTicket")
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

func (h *TicketHandler) ListTickets(c *gin.Context) {
	var query model.ListTicketsQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	tickets, err := h.tickets.List(c, query)
	if err != nil {
		handleError(c, err, "ListTickets")
		return
	}
	c.JSON(http.StatusOK, tickets)
}

func (h *TicketHandler) GetTicket(c *gin.Context) {
	var uri ticketCodeUri
	if err := BindUri(c, &uri); err != nil {
		return
	}

	ticket, err := h.validation.Lookup(c, uri.Code)
	if err != nil {
		handleError(c, err, "GetTicket")
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) GetTicketEvents(c *gin.Context) {
	var uri ticketCodeUri
	if err := BindUri(c, &uri); err != nil {
		return
	}

	events, err := h.tickets.Events(c, uri.Code)
	if err != nil {
		handleError(c, err, "GetTicketEvents")
		return
	}
	c.JSON(http.StatusOK, events)
}
