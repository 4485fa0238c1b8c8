package service

import (
	"context"
	"fmt"
	"strings"

	"graduation-tickets/internal/clock"
	"graduation-tickets/internal/codegen"
	"graduation-tickets/internal/model"
	"graduation-tickets/internal/queue"
	"graduation-tickets/internal/repository"
	apperrors "graduation-tickets/pkg/app_errors"
	"graduation-tickets/pkg/logger"

	"go.uber.org/zap"
)

type ValidationService interface {
	// 驗票：每張票只會被接受一次
	Validate(ctx context.Context, code string, validatorID string) (*model.ValidationResult, error)
	// 查詢票券，不改變狀態
	Lookup(ctx context.Context, code string) (*model.Ticket, error)
}

type ValidationServiceImpl struct {
	tickets repository.TicketRepository
	events  queue.EventQueue
	clock   clock.Clock
}

// NewValidationService events 可為 nil
func NewValidationService(tickets repository.TicketRepository, events queue.EventQueue, c clock.Clock) ValidationService {
	if c == nil {
		c = clock.NewSystem()
	}
	return &ValidationServiceImpl{
		tickets: tickets,
		events:  events,
		clock:   c,
	}
}

func (s *ValidationServiceImpl) Validate(ctx context.Context, code string, validatorID string) (*model.ValidationResult, error) {
	code = codegen.Normalize(code)
	validatorID = strings.TrimSpace(validatorID)
	if code == "" {
		return nil, fmt.Errorf("code is required: %w", apperrors.ErrInvalidInput)
	}
	if validatorID == "" {
		return nil, fmt.Errorf("validator id is required: %w", apperrors.ErrInvalidInput)
	}

	log := logger.WithComponent("validation").With(
		zap.String("code", code),
		zap.String("validator", validatorID),
	)

	// 格式不符的兌換碼不可能存在
	if !codegen.IsValidFormat(code) {
		log.Info("Ticket validation rejected", zap.String("status", string(model.RedemptionNotFound)))
		return &model.ValidationResult{Status: model.RedemptionNotFound}, nil
	}

	status, ticket, err := s.tickets.MarkUsedIfUnused(ctx, code, validatorID, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if status == model.RedemptionAccepted {
		publishEvent(ctx, s.events, newTicketEvent(model.TicketEventValidated, ticket, validatorID, *ticket.UsedAt), log)
	}

	log.Info("Ticket validated", zap.String("status", string(status)))
	return &model.ValidationResult{Status: status, Ticket: ticket}, nil
}

func (s *ValidationServiceImpl) Lookup(ctx context.Context, code string) (*model.Ticket, error) {
	code = codegen.Normalize(code)
	if code == "" {
		return nil, fmt.Errorf("code is required: %w", apperrors.ErrInvalidInput)
	}
	if !codegen.IsValidFormat(code) {
		return nil, apperrors.ErrTicketNotFound
	}
	return s.tickets.FindByCode(ctx, code)
}
