package worker

import (
	"context"
	"errors"

	"graduation-tickets/internal/queue"
	"graduation-tickets/internal/repository"
	apperrors "graduation-tickets/pkg/app_errors"
	"graduation-tickets/pkg/logger"

	"go.uber.org/zap"
)

type AuditWorker interface {
	// 訂閱稽核事件並寫入稽核紀錄
	Start(ctx context.Context) error
	// Done 在訂閱結束、所有已取出的事件處理完後關閉
	Done() <-chan struct{}
}

type AuditWorkerImpl struct {
	repo  repository.AuditRepository
	queue queue.EventQueue
	done  chan struct{}
}

func NewAuditWorker(repo repository.AuditRepository, queue queue.EventQueue) AuditWorker {
	return &AuditWorkerImpl{
		repo:  repo,
		queue: queue,
		done:  make(chan struct{}),
	}
}

func (w *AuditWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeEvents(ctx)
	if err != nil {
		return err
	}

	log := logger.WithComponent("audit-worker")
	go func() {
		defer close(w.done)
		for msg := range msgs {
			event := msg.Data
			err := w.repo.Append(ctx, event)

			switch {
			case err == nil:
				msg.Ack()
			case errors.Is(err, apperrors.ErrStoreUnavailable):
				// 儲存層暫時不可用，稍後重試
				log.Warn("Append ticket event failed, requeue",
					zap.String("event_id", event.EventID),
					zap.Error(err),
				)
				msg.Nack(true)
			default:
				log.Error("Append ticket event failed, discard",
					zap.String("event_id", event.EventID),
					zap.Error(err),
				)
				msg.Nack(false)
			}
		}
	}()
	return nil
}

func (w *AuditWorkerImpl) Done() <-chan struct{} {
	return w.done
}
