package model

import "time"

// RedemptionStatus 兌換結果
type RedemptionStatus string

const (
	RedemptionAccepted    RedemptionStatus = "accepted"
	RedemptionAlreadyUsed RedemptionStatus = "already_used"
	RedemptionNotFound    RedemptionStatus = "not_found"
)

// ValidateTicketRequest 驗票請求
type ValidateTicketRequest struct {
	Code        string `json:"code" binding:"required"`
	ValidatorID string `json:"validator_id" binding:"required"`
}

// ValidationResult 驗票結果；AlreadyUsed 時 Ticket 保留原本的 UsedAt / ValidatedBy
type ValidationResult struct {
	Status RedemptionStatus `json:"status"`
	Ticket *Ticket          `json:"ticket,omitempty"`
}

// TicketEventType 稽核事件類型
type TicketEventType string

const (
	TicketEventIssued    TicketEventType = "ticket.issued"
	TicketEventValidated TicketEventType = "ticket.validated"
)

// TicketEvent 稽核事件，經由佇列交給 worker 寫入
type TicketEvent struct {
	ID         int             `json:"id" db:"id"`
	EventID    string          `json:"event_id" db:"event_id"`
	Type       TicketEventType `json:"type" db:"type"`
	Code       string          `json:"code" db:"code"`
	IssuerName string          `json:"issuer_name" db:"issuer_name"`
	TicketType TicketType      `json:"ticket_type" db:"ticket_type"`
	Actor      string          `json:"actor" db:"actor"`
	OccurredAt time.Time       `json:"occurred_at" db:"occurred_at"`
}
