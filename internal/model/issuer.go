package model

import "time"

const DefaultMaxTickets = 5

// Issuer 發券人 (畢業生)
type Issuer struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	// TicketsGenerated 只是快取，額度判斷一律以票券重新計算
	TicketsGenerated int       `json:"tickets_generated" db:"tickets_generated"`
	MaxTickets       int       `json:"max_tickets" db:"max_tickets"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// RegisterIssuerRequest 註冊發券人請求
type RegisterIssuerRequest struct {
	Name       string `json:"name" binding:"required"`
	MaxTickets *int   `json:"max_tickets" binding:"omitempty,min=1"`
}

// TypeQuota 單一票種的額度狀況
type TypeQuota struct {
	Issued    int `json:"issued"`
	Cap       int `json:"cap"`
	Remaining int `json:"remaining"`
}

// IssuerSummary 發券人額度總覽
type IssuerSummary struct {
	Issuer          *Issuer                  `json:"issuer"`
	Issued          int                      `json:"issued"`
	RemainingGlobal int                      `json:"remaining_global"`
	ByType          map[TicketType]TypeQuota `json:"by_type"`
}
