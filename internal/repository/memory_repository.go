package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"graduation-tickets/internal/model"
	apperrors "graduation-tickets/pkg/app_errors"
)

var (
	_ TicketRepository = (*MemoryTicketRepository)(nil)
	_ IssuerRepository = (*MemoryIssuerRepository)(nil)
	_ AuditRepository  = (*MemoryAuditRepository)(nil)
)

// MemoryTicketRepository 單一 mutex 保護整個票券集合，適合測試與單機部署
type MemoryTicketRepository struct {
	mu       sync.Mutex
	nextID   int
	byCode   map[string]*model.Ticket
	byIssuer map[string][]string
}

func NewMemoryTicketRepository() *MemoryTicketRepository {
	return &MemoryTicketRepository{
		byCode:   make(map[string]*model.Ticket),
		byIssuer: make(map[string][]string),
	}
}

func (r *MemoryTicketRepository) FindByCode(ctx context.Context, code string) (*model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.byCode[code]
	if !ok {
		return nil, apperrors.ErrTicketNotFound
	}
	return ticket.Clone(), nil
}

func (r *MemoryTicketRepository) FindByIssuer(ctx context.Context, issuerName string) ([]*model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	codes := r.byIssuer[issuerName]
	tickets := make([]*model.Ticket, 0, len(codes))
	for i := len(codes) - 1; i >= 0; i-- {
		tickets = append(tickets, r.byCode[codes[i]].Clone())
	}
	return tickets, nil
}

func (r *MemoryTicketRepository) List(ctx context.Context, filter model.TicketFilter) ([]*model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tickets := make([]*model.Ticket, 0)
	for _, ticket := range r.byCode {
		if filter.Matches(ticket) {
			tickets = append(tickets, ticket.Clone())
		}
	}
	sortNewestFirst(tickets)
	return tickets, nil
}

func (r *MemoryTicketRepository) InsertIfCodeUnique(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byCode[ticket.Code]; exists {
		return nil, apperrors.ErrCodeCollision
	}

	r.nextID++
	stored := ticket.Clone()
	stored.ID = r.nextID
	stored.Used = false
	stored.UsedAt = nil
	stored.ValidatedBy = nil

	r.byCode[stored.Code] = stored
	r.byIssuer[stored.IssuerName] = append(r.byIssuer[stored.IssuerName], stored.Code)
	return stored.Clone(), nil
}

func (r *MemoryTicketRepository) MarkUsedIfUnused(ctx context.Context, code string, validatorID string, at time.Time) (model.RedemptionStatus, *model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.byCode[code]
	if !ok {
		return model.RedemptionNotFound, nil, nil
	}
	if ticket.Used {
		return model.RedemptionAlreadyUsed, ticket.Clone(), nil
	}

	usedAt := at.UTC()
	ticket.Used = true
	ticket.UsedAt = &usedAt
	ticket.ValidatedBy = &validatorID
	return model.RedemptionAccepted, ticket.Clone(), nil
}

func sortNewestFirst(tickets []*model.Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		if tickets[i].CreatedAt.Equal(tickets[j].CreatedAt) {
			return tickets[i].ID > tickets[j].ID
		}
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})
}

// MemoryIssuerRepository 每位發券人一把 mutex
type MemoryIssuerRepository struct {
	mu      sync.Mutex
	nextID  int
	issuers map[string]*model.Issuer
	locks   map[string]*sync.Mutex
}

func NewMemoryIssuerRepository() *MemoryIssuerRepository {
	return &MemoryIssuerRepository{
		issuers: make(map[string]*model.Issuer),
		locks:   make(map[string]*sync.Mutex),
	}
}

func (r *MemoryIssuerRepository) Create(ctx context.Context, issuer *model.Issuer) (*model.Issuer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.issuers[issuer.Name]; exists {
		return nil, apperrors.ErrIssuerAlreadyExists
	}

	now := time.Now().UTC()
	r.nextID++
	stored := &model.Issuer{
		ID:         r.nextID,
		Name:       issuer.Name,
		MaxTickets: issuer.MaxTickets,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.issuers[stored.Name] = stored
	r.locks[stored.Name] = &sync.Mutex{}

	created := *stored
	return &created, nil
}

func (r *MemoryIssuerRepository) FindByName(ctx context.Context, name string) (*model.Issuer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	issuer, ok := r.issuers[name]
	if !ok {
		return nil, apperrors.ErrIssuerNotFound
	}
	found := *issuer
	return &found, nil
}

func (r *MemoryIssuerRepository) IncrementTicketsGenerated(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	issuer, ok := r.issuers[name]
	if !ok {
		return apperrors.ErrIssuerNotFound
	}
	if issuer.TicketsGenerated < issuer.MaxTickets {
		issuer.TicketsGenerated++
	}
	issuer.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryIssuerRepository) WithIssuerLock(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	lock, ok := r.locks[name]
	r.mu.Unlock()
	if !ok {
		return apperrors.ErrIssuerNotFound
	}

	lock.Lock()
	defer lock.Unlock()
	return fn(ctx)
}

// MemoryAuditRepository 稽核紀錄 (記憶體版)
type MemoryAuditRepository struct {
	mu     sync.Mutex
	nextID int
	seen   map[string]struct{}
	events []*model.TicketEvent
}

func NewMemoryAuditRepository() *MemoryAuditRepository {
	return &MemoryAuditRepository{seen: make(map[string]struct{})}
}

func (r *MemoryAuditRepository) Append(ctx context.Context, event *model.TicketEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.seen[event.EventID]; dup {
		return nil
	}
	r.seen[event.EventID] = struct{}{}

	r.nextID++
	stored := *event
	stored.ID = r.nextID
	r.events = append(r.events, &stored)
	return nil
}

func (r *MemoryAuditRepository) ListByCode(ctx context.Context, code string) ([]*model.TicketEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]*model.TicketEvent, 0)
	for _, e := range r.events {
		if e.Code == code {
			found := *e
			events = append(events, &found)
		}
	}
	return events, nil
}
