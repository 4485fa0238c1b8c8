package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"graduation-tickets/internal/clock"
	"graduation-tickets/internal/codegen"
	"graduation-tickets/internal/model"
	"graduation-tickets/internal/queue"
	"graduation-tickets/internal/quota"
	"graduation-tickets/internal/repository"
	apperrors "graduation-tickets/pkg/app_errors"
	"graduation-tickets/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultIssueMaxAttempts = 5

type IssuanceService interface {
	// 發券：額度檢查、產生兌換碼、寫入
	Issue(ctx context.Context, req model.IssueTicketRequest) (*model.Ticket, error)
	// 註冊發券人
	RegisterIssuer(ctx context.Context, req model.RegisterIssuerRequest) (*model.Issuer, error)
	// 發券人額度總覽
	Summary(ctx context.Context, issuerName string) (*model.IssuerSummary, error)
}

type IssuanceServiceImpl struct {
	issuers   repository.IssuerRepository
	tickets   repository.TicketRepository
	generator codegen.Generator
	policy    *quota.Policy
	events    queue.EventQueue
	clock     clock.Clock

	maxAttempts       int
	defaultMaxTickets int
}

type IssuanceOption func(*IssuanceServiceImpl)

func WithClock(c clock.Clock) IssuanceOption {
	return func(s *IssuanceServiceImpl) { s.clock = c }
}

func WithPolicy(p *quota.Policy) IssuanceOption {
	return func(s *IssuanceServiceImpl) { s.policy = p }
}

// WithEventQueue 發券成功後送出 ticket.issued 稽核事件
func WithEventQueue(q queue.EventQueue) IssuanceOption {
	return func(s *IssuanceServiceImpl) { s.events = q }
}

func WithMaxAttempts(n int) IssuanceOption {
	return func(s *IssuanceServiceImpl) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func WithDefaultMaxTickets(n int) IssuanceOption {
	return func(s *IssuanceServiceImpl) {
		if n > 0 {
			s.defaultMaxTickets = n
		}
	}
}

func NewIssuanceService(
	issuers repository.IssuerRepository,
	tickets repository.TicketRepository,
	generator codegen.Generator,
	opts ...IssuanceOption,
) IssuanceService {
	s := &IssuanceServiceImpl{
		issuers:           issuers,
		tickets:           tickets,
		generator:         generator,
		policy:            quota.NewPolicy(),
		clock:             clock.NewSystem(),
		maxAttempts:       DefaultIssueMaxAttempts,
		defaultMaxTickets: model.DefaultMaxTickets,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *IssuanceServiceImpl) Issue(ctx context.Context, req model.IssueTicketRequest) (*model.Ticket, error) {
	issuerName := strings.TrimSpace(req.IssuerName)
	if issuerName == "" {
		return nil, fmt.Errorf("issuer name is required: %w", apperrors.ErrInvalidInput)
	}

	ticketType, err := model.ParseTicketType(req.TicketType)
	if err != nil {
		return nil, err
	}

	guestName := trimmedOrNil(req.GuestName)
	// 畢業生票的來賓就是發券人本人
	if ticketType == model.TicketTypeGraduate {
		guestName = nil
	}
	notes := trimmedOrNil(req.SpecialNotes)
	log := logger.WithComponent("issuance").With(
		zap.String("issuer", issuerName),
		zap.String("ticket_type", string(ticketType)),
	)

	var created *model.Ticket
	err = s.issuers.WithIssuerLock(ctx, issuerName, func(ctx context.Context) error {
		issuer, err := s.issuers.FindByName(ctx, issuerName)
		if err != nil {
			return err
		}

		// 以已儲存的票券重新計算，不信任 tickets_generated 快取
		existing, err := s.tickets.FindByIssuer(ctx, issuerName)
		if err != nil {
			return err
		}
		counts := model.CountTickets(existing)

		if err := s.policy.Check(counts, issuer.MaxTickets, ticketType); err != nil {
			return err
		}

		if s.policy.RequiresGuestName(ticketType) && guestName == nil {
			return apperrors.ErrMissingGuestName
		}

		created, err = s.insertWithRetry(ctx, issuerName, ticketType, guestName, notes, log)
		return err
	})
	if err != nil {
		return nil, err
	}

	// 計數只是快取，失敗不影響發券結果
	if err := s.issuers.IncrementTicketsGenerated(ctx, issuerName); err != nil {
		log.Warn("Failed to increment tickets generated", zap.Error(err))
	}

	publishEvent(ctx, s.events, newTicketEvent(model.TicketEventIssued, created, issuerName, created.CreatedAt), log)

	log.Info("Ticket issued", zap.String("code", created.Code))
	return created, nil
}

// insertWithRetry 每次嘗試使用新的時間戳，碰撞時重試，直到 maxAttempts
func (s *IssuanceServiceImpl) insertWithRetry(
	ctx context.Context,
	issuerName string,
	ticketType model.TicketType,
	guestName, notes *string,
	log *zap.Logger,
) (*model.Ticket, error) {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		now := s.clock.Now()
		code := s.generator.Generate(issuerName, now.UnixMilli()+int64(attempt))

		ticket := &model.Ticket{
			TicketID:     uuid.New(),
			IssuerName:   issuerName,
			GuestName:    guestName,
			TicketType:   ticketType,
			Code:         code,
			SpecialNotes: notes,
			CreatedAt:    now,
		}

		created, err := s.tickets.InsertIfCodeUnique(ctx, ticket)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, apperrors.ErrCodeCollision) {
			return nil, err
		}

		log.Warn("Ticket code collision, retrying",
			zap.String("code", code),
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", s.maxAttempts),
		)
	}

	log.Error("Ticket code collisions exhausted all attempts", zap.Int("max_attempts", s.maxAttempts))
	return nil, apperrors.ErrCodeCollisionExhausted
}

func (s *IssuanceServiceImpl) RegisterIssuer(ctx context.Context, req model.RegisterIssuerRequest) (*model.Issuer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("issuer name is required: %w", apperrors.ErrInvalidInput)
	}

	maxTickets := s.defaultMaxTickets
	if req.MaxTickets != nil {
		if *req.MaxTickets < 1 {
			return nil, fmt.Errorf("max tickets must be at least 1: %w", apperrors.ErrInvalidInput)
		}
		maxTickets = *req.MaxTickets
	}

	issuer, err := s.issuers.Create(ctx, &model.Issuer{Name: name, MaxTickets: maxTickets})
	if err != nil {
		return nil, err
	}

	logger.WithComponent("issuance").Info("Issuer registered",
		zap.String("issuer", issuer.Name),
		zap.Int("max_tickets", issuer.MaxTickets),
	)
	return issuer, nil
}

func (s *IssuanceServiceImpl) Summary(ctx context.Context, issuerName string) (*model.IssuerSummary, error) {
	issuerName = strings.TrimSpace(issuerName)
	if issuerName == "" {
		return nil, fmt.Errorf("issuer name is required: %w", apperrors.ErrInvalidInput)
	}

	issuer, err := s.issuers.FindByName(ctx, issuerName)
	if err != nil {
		return nil, err
	}

	tickets, err := s.tickets.FindByIssuer(ctx, issuerName)
	if err != nil {
		return nil, err
	}
	counts := model.CountTickets(tickets)
	remaining := s.policy.RemainingByType(counts)

	byType := make(map[model.TicketType]model.TypeQuota, len(model.TicketTypes))
	for _, t := range model.TicketTypes {
		byType[t] = model.TypeQuota{
			Issued:    counts[t],
			Cap:       s.policy.Cap(t),
			Remaining: remaining[t],
		}
	}

	return &model.IssuerSummary{
		Issuer:          issuer,
		Issued:          counts.Total(),
		RemainingGlobal: s.policy.RemainingCap(issuer, counts),
		ByType:          byType,
	}, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
