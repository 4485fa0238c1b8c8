package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"graduation-tickets/internal/model"
	"graduation-tickets/internal/quota"
	apperrors "graduation-tickets/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	redisTicketSeqKey    = "tickets:seq"
	redisTicketsAllKey   = "tickets:all"
	redisTicketKeyPrefix = "ticket:code:"
)

// 兌換碼不存在、且發券人額度未滿時才寫入，並同步更新發券人索引與全域排序索引。
// 額度在寫入的同一個 script 內以已儲存的票券重新計算，不依賴發券人鎖。
var insertTicketScript = redis.NewScript(`
	local ticket_key = KEYS[1]
	local issuer_tickets_key = KEYS[2]
	local all_key = KEYS[3]
	local seq_key = KEYS[4]
	local issuer_key = KEYS[5]

	local score = ARGV[1]
	local code = ARGV[2]
	local ticket_type = ARGV[3]
	local type_cap = tonumber(ARGV[4])
	local ticket_key_prefix = ARGV[5]

	if redis.call('EXISTS', ticket_key) == 1 then
		return 0 -- 兌換碼碰撞
	end

	local max_tickets = redis.call('HGET', issuer_key, 'max_tickets')
	if not max_tickets then
		return -1 -- 發券人不存在
	end

	local codes = redis.call('LRANGE', issuer_tickets_key, 0, -1)
	local same_type = 0
	for _, c in ipairs(codes) do
		if redis.call('HGET', ticket_key_prefix .. c, 'ticket_type') == ticket_type then
			same_type = same_type + 1
		end
	end

	if same_type >= type_cap then
		return -2 -- 票種上限
	end
	if #codes >= tonumber(max_tickets) then
		return -3 -- 總額度
	end

	local id = redis.call('INCR', seq_key)
	redis.call('HSET', ticket_key, 'id', id, unpack(ARGV, 6))
	redis.call('RPUSH', issuer_tickets_key, code)
	redis.call('ZADD', all_key, score, code)

	return id
`)

// 只有 used = 0 的票會被標記
var markUsedScript = redis.NewScript(`
	local ticket_key = KEYS[1]

	if redis.call('EXISTS', ticket_key) == 0 then
		return -1 -- 不存在
	end

	if redis.call('HGET', ticket_key, 'used') == '1' then
		return 0 -- 已使用
	end

	redis.call('HSET', ticket_key, 'used', '1', 'used_at', ARGV[1], 'validated_by', ARGV[2])
	return 1
`)

type RedisTicketRepositoryImpl struct {
	client *redis.Client
	policy *quota.Policy
}

// NewRedisTicketRepository policy 為 nil 時使用預設票種上限
func NewRedisTicketRepository(client *redis.Client, policy *quota.Policy) TicketRepository {
	if policy == nil {
		policy = quota.NewPolicy()
	}
	return &RedisTicketRepositoryImpl{
		client: client,
		policy: policy,
	}
}

// 票券 key
func (r *RedisTicketRepositoryImpl) getTicketKey(code string) string {
	return redisTicketKeyPrefix + code
}

// 發券人持有的兌換碼清單 (依發券順序)
func (r *RedisTicketRepositoryImpl) getIssuerTicketsKey(issuerName string) string {
	return fmt.Sprintf("issuer:%s:tickets", issuerName)
}

func (r *RedisTicketRepositoryImpl) FindByCode(ctx context.Context, code string) (*model.Ticket, error) {
	values, err := r.client.HGetAll(ctx, r.getTicketKey(code)).Result()
	if err != nil {
		return nil, storeErr("find ticket by code", err)
	}
	if len(values) == 0 {
		return nil, apperrors.ErrTicketNotFound
	}
	return decodeTicket(values)
}

func (r *RedisTicketRepositoryImpl) FindByIssuer(ctx context.Context, issuerName string) ([]*model.Ticket, error) {
	codes, err := r.client.LRange(ctx, r.getIssuerTicketsKey(issuerName), 0, -1).Result()
	if err != nil {
		return nil, storeErr("find tickets by issuer", err)
	}

	// 最新的在前
	for i, j := 0, len(codes)-1; i < j; i, j = i+1, j-1 {
		codes[i], codes[j] = codes[j], codes[i]
	}
	return r.loadTickets(ctx, codes)
}

func (r *RedisTicketRepositoryImpl) List(ctx context.Context, filter model.TicketFilter) ([]*model.Ticket, error) {
	var codes []string
	var err error
	if filter.IssuerName != "" {
		codes, err = r.client.LRange(ctx, r.getIssuerTicketsKey(filter.IssuerName), 0, -1).Result()
	} else {
		codes, err = r.client.ZRange(ctx, redisTicketsAllKey, 0, -1).Result()
	}
	if err != nil {
		return nil, storeErr("list ticket codes", err)
	}

	all, err := r.loadTickets(ctx, codes)
	if err != nil {
		return nil, err
	}

	tickets := make([]*model.Ticket, 0, len(all))
	for _, t := range all {
		if filter.Matches(t) {
			tickets = append(tickets, t)
		}
	}
	sortNewestFirst(tickets)
	return tickets, nil
}

func (r *RedisTicketRepositoryImpl) loadTickets(ctx context.Context, codes []string) ([]*model.Ticket, error) {
	if len(codes) == 0 {
		return []*model.Ticket{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(codes))
	for i, code := range codes {
		cmds[i] = pipe.HGetAll(ctx, r.getTicketKey(code))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, storeErr("load tickets", err)
	}

	tickets := make([]*model.Ticket, 0, len(codes))
	for _, cmd := range cmds {
		values := cmd.Val()
		if len(values) == 0 {
			continue
		}
		ticket, err := decodeTicket(values)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

// InsertIfCodeUnique 同時在 script 內檢查票種上限與發券人總額度
func (r *RedisTicketRepositoryImpl) InsertIfCodeUnique(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	if !ticket.TicketType.IsValid() {
		return nil, apperrors.ErrInvalidTicketType
	}

	args := []interface{}{
		ticket.CreatedAt.UnixMilli(),
		ticket.Code,
		string(ticket.TicketType),
		r.policy.Cap(ticket.TicketType),
		redisTicketKeyPrefix,
	}
	args = append(args, encodeTicket(ticket)...)

	keys := []string{
		r.getTicketKey(ticket.Code),
		r.getIssuerTicketsKey(ticket.IssuerName),
		redisTicketsAllKey,
		redisTicketSeqKey,
		redisIssuerKey(ticket.IssuerName),
	}

	id, err := insertTicketScript.Run(ctx, r.client, keys, args...).Int64()
	if err != nil {
		return nil, storeErr("insert ticket", err)
	}
	switch id {
	case 0:
		return nil, apperrors.ErrCodeCollision
	case -1:
		return nil, apperrors.ErrIssuerNotFound
	case -2:
		return nil, apperrors.ErrQuotaExceededByType
	case -3:
		return nil, apperrors.ErrQuotaExceededGlobal
	}

	created := ticket.Clone()
	created.ID = int(id)
	created.Used = false
	created.UsedAt = nil
	created.ValidatedBy = nil
	return created, nil
}

func (r *RedisTicketRepositoryImpl) MarkUsedIfUnused(ctx context.Context, code string, validatorID string, at time.Time) (model.RedemptionStatus, *model.Ticket, error) {
	usedAt := at.UTC().Format(time.RFC3339Nano)

	result, err := markUsedScript.Run(ctx, r.client, []string{r.getTicketKey(code)}, usedAt, validatorID).Int64()
	if err != nil {
		return "", nil, storeErr("mark ticket used", err)
	}

	var status model.RedemptionStatus
	switch result {
	case 1:
		status = model.RedemptionAccepted
	case 0:
		status = model.RedemptionAlreadyUsed
	case -1:
		return model.RedemptionNotFound, nil, nil
	default:
		return "", nil, errors.New("unexpected result")
	}

	// used_at / validated_by 寫入後不再改變，之後讀到的快照一定一致
	ticket, err := r.FindByCode(ctx, code)
	if err != nil {
		return "", nil, err
	}
	return status, ticket, nil
}

func encodeTicket(t *model.Ticket) []interface{} {
	return []interface{}{
		"ticket_id", t.TicketID.String(),
		"issuer_name", t.IssuerName,
		"guest_name", derefString(t.GuestName),
		"ticket_type", string(t.TicketType),
		"code", t.Code,
		"used", "0",
		"used_at", "",
		"validated_by", "",
		"special_notes", derefString(t.SpecialNotes),
		"created_at", t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func decodeTicket(values map[string]string) (*model.Ticket, error) {
	id, err := strconv.Atoi(values["id"])
	if err != nil {
		return nil, fmt.Errorf("invalid id: %v", err)
	}

	ticketID, err := uuid.Parse(values["ticket_id"])
	if err != nil {
		return nil, fmt.Errorf("invalid ticket_id: %v", err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, values["created_at"])
	if err != nil {
		return nil, fmt.Errorf("invalid created_at: %v", err)
	}

	ticket := &model.Ticket{
		ID:           id,
		TicketID:     ticketID,
		IssuerName:   values["issuer_name"],
		GuestName:    optionalString(values["guest_name"]),
		TicketType:   model.TicketType(values["ticket_type"]),
		Code:         values["code"],
		Used:         values["used"] == "1",
		SpecialNotes: optionalString(values["special_notes"]),
		CreatedAt:    createdAt,
	}

	if ticket.Used {
		usedAt, err := time.Parse(time.RFC3339Nano, values["used_at"])
		if err != nil {
			return nil, fmt.Errorf("invalid used_at: %v", err)
		}
		ticket.UsedAt = &usedAt
		ticket.ValidatedBy = optionalString(values["validated_by"])
	}
	return ticket, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
