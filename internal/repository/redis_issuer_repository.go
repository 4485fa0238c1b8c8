package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"graduation-tickets/internal/model"
	apperrors "graduation-tickets/pkg/app_errors"
	"graduation-tickets/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	redisIssuerSeqKey = "issuers:seq"

	lockRetryInterval = 10 * time.Millisecond
)

// 發券人不存在才建立
var createIssuerScript = redis.NewScript(`
	local issuer_key = KEYS[1]
	local seq_key = KEYS[2]

	if redis.call('EXISTS', issuer_key) == 1 then
		return 0
	end

	local id = redis.call('INCR', seq_key)
	redis.call('HSET', issuer_key,
		'id', id,
		'name', ARGV[1],
		'tickets_generated', 0,
		'max_tickets', ARGV[2],
		'created_at', ARGV[3],
		'updated_at', ARGV[3])
	return id
`)

// 快取計數 +1，上限為 max_tickets
var incrementGeneratedScript = redis.NewScript(`
	local issuer_key = KEYS[1]

	if redis.call('EXISTS', issuer_key) == 0 then
		return -1
	end

	local generated = tonumber(redis.call('HGET', issuer_key, 'tickets_generated'))
	local max = tonumber(redis.call('HGET', issuer_key, 'max_tickets'))
	if generated < max then
		generated = redis.call('HINCRBY', issuer_key, 'tickets_generated', 1)
	end
	redis.call('HSET', issuer_key, 'updated_at', ARGV[1])
	return generated
`)

// 只釋放自己持有的鎖
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

type RedisIssuerRepositoryImpl struct {
	client  *redis.Client
	lockTTL time.Duration
}

func NewRedisIssuerRepository(client *redis.Client, lockTTL time.Duration) IssuerRepository {
	return &RedisIssuerRepositoryImpl{
		client:  client,
		lockTTL: lockTTL,
	}
}

// 發券人資料 key，票券 script 也會讀取
func redisIssuerKey(name string) string {
	return fmt.Sprintf("issuer:%s", name)
}

func (r *RedisIssuerRepositoryImpl) getIssuerKey(name string) string {
	return redisIssuerKey(name)
}

// 發券流程的分散式鎖 key
func (r *RedisIssuerRepositoryImpl) getLockKey(name string) string {
	return fmt.Sprintf("issuer:%s:lock", name)
}

func (r *RedisIssuerRepositoryImpl) Create(ctx context.Context, issuer *model.Issuer) (*model.Issuer, error) {
	now := time.Now().UTC()
	keys := []string{r.getIssuerKey(issuer.Name), redisIssuerSeqKey}

	id, err := createIssuerScript.Run(ctx, r.client, keys,
		issuer.Name, issuer.MaxTickets, now.Format(time.RFC3339Nano),
	).Int64()
	if err != nil {
		return nil, storeErr("create issuer", err)
	}
	if id == 0 {
		return nil, apperrors.ErrIssuerAlreadyExists
	}

	return &model.Issuer{
		ID:         int(id),
		Name:       issuer.Name,
		MaxTickets: issuer.MaxTickets,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (r *RedisIssuerRepositoryImpl) FindByName(ctx context.Context, name string) (*model.Issuer, error) {
	values, err := r.client.HGetAll(ctx, r.getIssuerKey(name)).Result()
	if err != nil {
		return nil, storeErr("find issuer", err)
	}
	if len(values) == 0 {
		return nil, apperrors.ErrIssuerNotFound
	}
	return decodeIssuer(values)
}

func (r *RedisIssuerRepositoryImpl) IncrementTicketsGenerated(ctx context.Context, name string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	result, err := incrementGeneratedScript.Run(ctx, r.client, []string{r.getIssuerKey(name)}, now).Int64()
	if err != nil {
		return storeErr("increment tickets generated", err)
	}
	if result == -1 {
		return apperrors.ErrIssuerNotFound
	}
	return nil
}

// WithIssuerLock SET NX PX 取得鎖，逾時未取得回傳 ErrLockNotAcquired
func (r *RedisIssuerRepositoryImpl) WithIssuerLock(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	exists, err := r.client.Exists(ctx, r.getIssuerKey(name)).Result()
	if err != nil {
		return storeErr("check issuer", err)
	}
	if exists == 0 {
		return apperrors.ErrIssuerNotFound
	}

	lockKey := r.getLockKey(name)
	token := uuid.NewString()

	if err := r.acquire(ctx, lockKey, token); err != nil {
		return err
	}
	defer func() {
		// 用獨立 context 釋放，呼叫端取消時鎖仍會被清掉
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := releaseLockScript.Run(releaseCtx, r.client, []string{lockKey}, token).Err(); err != nil {
			logger.WithComponent("repository").Warn("Failed to release issuer lock",
				zap.String("issuer", name),
				zap.Error(err),
			)
		}
	}()

	return fn(ctx)
}

func (r *RedisIssuerRepositoryImpl) acquire(ctx context.Context, lockKey, token string) error {
	deadline := time.Now().Add(r.lockTTL)

	for {
		ok, err := r.client.SetNX(ctx, lockKey, token, r.lockTTL).Result()
		if err != nil {
			return storeErr("acquire issuer lock", err)
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return apperrors.ErrLockNotAcquired
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}

func decodeIssuer(values map[string]string) (*model.Issuer, error) {
	id, err := strconv.Atoi(values["id"])
	if err != nil {
		return nil, fmt.Errorf("invalid id: %v", err)
	}

	generated, err := strconv.Atoi(values["tickets_generated"])
	if err != nil {
		return nil, fmt.Errorf("invalid tickets_generated: %v", err)
	}

	maxTickets, err := strconv.Atoi(values["max_tickets"])
	if err != nil {
		return nil, fmt.Errorf("invalid max_tickets: %v", err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, values["created_at"])
	if err != nil {
		return nil, fmt.Errorf("invalid created_at: %v", err)
	}

	updatedAt, err := time.Parse(time.RFC3339Nano, values["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("invalid updated_at: %v", err)
	}

	return &model.Issuer{
		ID:               id,
		Name:             values["name"],
		TicketsGenerated: generated,
		MaxTickets:       maxTickets,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}, nil
}
