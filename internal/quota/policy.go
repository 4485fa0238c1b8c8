package quota

import (
	"graduation-tickets/internal/model"
	apperrors "graduation-tickets/pkg/app_errors"
)

// Rule 單一票種的規則
type Rule struct {
	Cap               int
	RequiresGuestName bool
}

// DefaultRules 每位發券人的票種上限
var DefaultRules = map[model.TicketType]Rule{
	model.TicketTypeGraduate: {Cap: 1, RequiresGuestName: false},
	model.TicketTypeSponsor:  {Cap: 1, RequiresGuestName: true},
	model.TicketTypeFamily:   {Cap: 3, RequiresGuestName: true},
}

// Policy 純判斷，不存取任何儲存層
type Policy struct {
	rules map[model.TicketType]Rule
}

func NewPolicy() *Policy {
	return &Policy{rules: DefaultRules}
}

// Check 票種上限與總額度兩項檢查都會執行；兩者皆不符時回報票種錯誤
func (p *Policy) Check(counts model.TicketCounts, maxTickets int, t model.TicketType) error {
	rule, ok := p.rules[t]
	if !ok {
		return apperrors.ErrInvalidTicketType
	}

	typeExceeded := counts[t] >= rule.Cap
	globalExceeded := counts.Total() >= maxTickets

	switch {
	case typeExceeded:
		return apperrors.ErrQuotaExceededByType
	case globalExceeded:
		return apperrors.ErrQuotaExceededGlobal
	}
	return nil
}

func (p *Policy) CanIssue(counts model.TicketCounts, maxTickets int, t model.TicketType) bool {
	return p.Check(counts, maxTickets, t) == nil
}

func (p *Policy) RequiresGuestName(t model.TicketType) bool {
	return p.rules[t].RequiresGuestName
}

func (p *Policy) Cap(t model.TicketType) int {
	return p.rules[t].Cap
}

// RemainingCap 發券人剩餘總額度
func (p *Policy) RemainingCap(issuer *model.Issuer, counts model.TicketCounts) int {
	remaining := issuer.MaxTickets - counts.Total()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RemainingByType 各票種剩餘數量 (不考慮總額度)
func (p *Policy) RemainingByType(counts model.TicketCounts) map[model.TicketType]int {
	out := make(map[model.TicketType]int, len(p.rules))
	for t, rule := range p.rules {
		remaining := rule.Cap - counts[t]
		if remaining < 0 {
			remaining = 0
		}
		out[t] = remaining
	}
	return out
}
