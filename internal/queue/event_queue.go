package queue

import (
	"context"
	"errors"

	"graduation-tickets/internal/model"
)

var ErrQueueFull = errors.New("event queue is full")

type Delivery struct {
	Data *model.TicketEvent
	Ack  func()
	Nack func(requeue bool)
}

type EventQueue interface {
	// 發送稽核事件到隊列
	PublishEvent(ctx context.Context, event *model.TicketEvent) error
	// 訂閱稽核事件
	SubscribeEvents(ctx context.Context) (<-chan Delivery, error)
}

type EventQueueImpl struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch chan *model.TicketEvent
}

func NewEventQueue(bufferSize int) EventQueue {
	return &EventQueueImpl{
		ch: make(chan *model.TicketEvent, bufferSize),
	}
}

// PublishEvent 佇列滿時直接回傳 ErrQueueFull，不阻塞發券與驗票
func (q *EventQueueImpl) PublishEvent(ctx context.Context, event *model.TicketEvent) error {
	select {
	case q.ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

func (q *EventQueueImpl) SubscribeEvents(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-q.ch:
				if !ok {
					return
				}

				d := Delivery{
					Data: event,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if requeue {
							// 重回隊列；滿了就丟掉
							select {
							case q.ch <- event:
							default:
							}
						}
					},
				}

				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
