package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"graduation-tickets/internal/model"

	"github.com/redis/go-redis/v9"
)

const redisAuditSeqKey = "ticket-events:seq"

// event_id 沒出現過才寫入
var appendEventScript = redis.NewScript(`
	local seen_key = KEYS[1]
	local events_key = KEYS[2]
	local seq_key = KEYS[3]

	if redis.call('SADD', seen_key, ARGV[1]) == 0 then
		return 0
	end

	local id = redis.call('INCR', seq_key)
	local payload = cjson.decode(ARGV[2])
	payload['id'] = id
	redis.call('RPUSH', events_key, cjson.encode(payload))
	return id
`)

type RedisAuditRepositoryImpl struct {
	client *redis.Client
}

func NewRedisAuditRepository(client *redis.Client) AuditRepository {
	return &RedisAuditRepositoryImpl{
		client: client,
	}
}

// 單張票的事件清單
func (r *RedisAuditRepositoryImpl) getEventsKey(code string) string {
	return fmt.Sprintf("ticket:code:%s:events", code)
}

// 已寫入的 event_id 集合
func (r *RedisAuditRepositoryImpl) getSeenKey() string {
	return "ticket-events:seen"
}

func (r *RedisAuditRepositoryImpl) Append(ctx context.Context, event *model.TicketEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	keys := []string{r.getSeenKey(), r.getEventsKey(event.Code), redisAuditSeqKey}
	if err := appendEventScript.Run(ctx, r.client, keys, event.EventID, string(payload)).Err(); err != nil {
		return storeErr("append ticket event", err)
	}
	return nil
}

func (r *RedisAuditRepositoryImpl) ListByCode(ctx context.Context, code string) ([]*model.TicketEvent, error) {
	values, err := r.client.LRange(ctx, r.getEventsKey(code), 0, -1).Result()
	if err != nil {
		return nil, storeErr("list ticket events", err)
	}

	events := make([]*model.TicketEvent, 0, len(values))
	for _, v := range values {
		var event model.TicketEvent
		if err := json.Unmarshal([]byte(v), &event); err != nil {
			return nil, fmt.Errorf("unmarshal ticket event: %w", err)
		}
		events = append(events, &event)
	}
	return events, nil
}
