package service

import (
	"context"
	"fmt"
	"strings"

	"graduation-tickets/internal/codegen"
	"graduation-tickets/internal/model"
	"graduation-tickets/internal/repository"
	apperrors "graduation-tickets/pkg/app_errors"
)

type TicketService interface {
	List(ctx context.Context, query model.ListTicketsQuery) ([]*model.Ticket, error)
	// 票券的稽核紀錄，依發生時間排序
	Events(ctx context.Context, code string) ([]*model.TicketEvent, error)
}

type TicketServiceImpl struct {
	repo  repository.TicketRepository
	audit repository.AuditRepository
}

func NewTicketService(repo repository.TicketRepository, audit repository.AuditRepository) TicketService {
	return &TicketServiceImpl{repo: repo, audit: audit}
}

func (s *TicketServiceImpl) List(ctx context.Context, query model.ListTicketsQuery) ([]*model.Ticket, error) {
	filter, err := parseTicketFilter(query)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

func (s *TicketServiceImpl) Events(ctx context.Context, code string) ([]*model.TicketEvent, error) {
	code = codegen.Normalize(code)
	if !codegen.IsValidFormat(code) {
		return nil, apperrors.ErrTicketNotFound
	}
	if _, err := s.repo.FindByCode(ctx, code); err != nil {
		return nil, err
	}
	return s.audit.ListByCode(ctx, code)
}

func parseTicketFilter(query model.ListTicketsQuery) (model.TicketFilter, error) {
	filter := model.TicketFilter{
		IssuerName: strings.TrimSpace(query.Issuer),
		Search:     strings.TrimSpace(query.Q),
	}

	if t := strings.TrimSpace(query.Type); t != "" && !strings.EqualFold(t, "all") {
		ticketType, err := model.ParseTicketType(t)
		if err != nil {
			return model.TicketFilter{}, err
		}
		filter.TicketType = ticketType
	}

	switch status := model.TicketStatus(strings.ToLower(strings.TrimSpace(query.Status))); status {
	case model.TicketStatusAll, "all":
	case model.TicketStatusUsed, model.TicketStatusAvailable:
		filter.Status = status
	default:
		return model.TicketFilter{}, fmt.Errorf("unknown status %q: %w", query.Status, apperrors.ErrInvalidInput)
	}

	return filter, nil
}
