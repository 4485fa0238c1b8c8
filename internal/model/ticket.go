package model

import (
	"strings"
	"time"

	apperrors "graduation-tickets/pkg/app_errors"

	"github.com/google/uuid"
)

// TicketType 票種
type TicketType string

const (
	TicketTypeGraduate TicketType = "graduate"
	TicketTypeSponsor  TicketType = "sponsor"
	TicketTypeFamily   TicketType = "family"
)

// TicketTypes 所有票種，順序固定
var TicketTypes = []TicketType{TicketTypeGraduate, TicketTypeSponsor, TicketTypeFamily}

// IsValid 驗證票種是否有效
func (t TicketType) IsValid() bool {
	switch t {
	case TicketTypeGraduate, TicketTypeSponsor, TicketTypeFamily:
		return true
	}
	return false
}

// ParseTicketType 只接受標準值 (忽略大小寫與前後空白)
func ParseTicketType(s string) (TicketType, error) {
	t := TicketType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", apperrors.ErrInvalidTicketType
	}
	return t, nil
}

// Ticket 入場券模型
type Ticket struct {
	ID           int        `json:"id" db:"id"`
	TicketID     uuid.UUID  `json:"ticket_id" db:"ticket_id"`
	IssuerName   string     `json:"issuer_name" db:"issuer_name"`
	GuestName    *string    `json:"guest_name,omitempty" db:"guest_name"`
	TicketType   TicketType `json:"ticket_type" db:"ticket_type"`
	Code         string     `json:"code" db:"code"`
	Used         bool       `json:"used" db:"used"`
	UsedAt       *time.Time `json:"used_at,omitempty" db:"used_at"`
	ValidatedBy  *string    `json:"validated_by,omitempty" db:"validated_by"`
	SpecialNotes *string    `json:"special_notes,omitempty" db:"special_notes"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// DisplayGuest 顯示用的來賓名稱，畢業生票預設為發券人本人
func (t *Ticket) DisplayGuest() string {
	if t.GuestName != nil && *t.GuestName != "" {
		return *t.GuestName
	}
	return t.IssuerName
}

// Clone 回傳深拷貝，避免呼叫端修改到儲存層的資料
func (t *Ticket) Clone() *Ticket {
	if t == nil {
		return nil
	}
	c := *t
	if t.GuestName != nil {
		v := *t.GuestName
		c.GuestName = &v
	}
	if t.UsedAt != nil {
		v := *t.UsedAt
		c.UsedAt = &v
	}
	if t.ValidatedBy != nil {
		v := *t.ValidatedBy
		c.ValidatedBy = &v
	}
	if t.SpecialNotes != nil {
		v := *t.SpecialNotes
		c.SpecialNotes = &v
	}
	return &c
}

// TicketCounts 每種票的已發數量，由已儲存的票券重新計算
type TicketCounts map[TicketType]int

// CountTickets 依票種分組計數
func CountTickets(tickets []*Ticket) TicketCounts {
	counts := make(TicketCounts, len(TicketTypes))
	for _, t := range tickets {
		counts[t.TicketType]++
	}
	return counts
}

func (c TicketCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// TicketStatus 列表篩選用的狀態
type TicketStatus string

const (
	TicketStatusAll       TicketStatus = ""
	TicketStatusUsed      TicketStatus = "used"
	TicketStatusAvailable TicketStatus = "available"
)

// TicketFilter 列表篩選條件，零值代表不篩選
type TicketFilter struct {
	IssuerName string
	TicketType TicketType
	Status     TicketStatus
	// Search 比對發券人、來賓與兌換碼 (不分大小寫)
	Search string
}

// Matches 供記憶體與 Redis 儲存層使用
func (f TicketFilter) Matches(t *Ticket) bool {
	if f.IssuerName != "" && t.IssuerName != f.IssuerName {
		return false
	}
	if f.TicketType != "" && t.TicketType != f.TicketType {
		return false
	}
	switch f.Status {
	case TicketStatusUsed:
		if !t.Used {
			return false
		}
	case TicketStatusAvailable:
		if t.Used {
			return false
		}
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.IssuerName), q) &&
			!strings.Contains(strings.ToLower(t.DisplayGuest()), q) &&
			!strings.Contains(strings.ToLower(t.Code), q) {
			return false
		}
	}
	return true
}

// IssueTicketRequest 發券請求
type IssueTicketRequest struct {
	IssuerName   string  `json:"issuer_name" binding:"required"`
	TicketType   string  `json:"ticket_type" binding:"required"`
	GuestName    *string `json:"guest_name"`
	SpecialNotes *string `json:"special_notes"`
}

// ListTicketsQuery 列表查詢參數
type ListTicketsQuery struct {
	Issuer string `form:"issuer"`
	Type   string `form:"type"`
	Status string `form:"status"`
	Q      string `form:"q"`
}
