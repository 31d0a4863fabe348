package mq

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Subscriber is any service that can be subscribed to and unsubscribed
// from. M is the message type the subscription delivers.
type Subscriber[M any] interface {
	Subscribe() (uuid.UUID, <-chan M, error)
	DeSubscribe(id uuid.UUID) error
}

// SubscribeProcessor subscribes to a service, transforms each message and
// forwards the result to outputStream until the context is cancelled or
// the subscription is closed. The transform can skip a message by
// returning skip=true; transform errors drop the message. The output
// stream is closed when the processor exits.
func SubscribeProcessor[S Subscriber[M], M any, O any](
	ctx context.Context,
	service S,
	transformFunc func(msg M) (O, bool, error),
	outputStream chan<- O,
) {
	go func() {
		uid, inputCh, err := service.Subscribe()
		if err != nil {
			slog.Error("subscribe failed", "err", err)
			close(outputStream)
			return
		}

		defer func() {
			if err := service.DeSubscribe(uid); err != nil {
				slog.Warn("de-subscribe failed", "subscriber", uid, "err", err)
			}
			close(outputStream)
		}()

		for {
			select {
			case msg, ok := <-inputCh:
				if !ok {
					return
				}

				output, skip, err := transformFunc(msg)
				if err != nil {
					continue
				}
				if skip {
					continue
				}

				select {
				case outputStream <- output:
				case <-ctx.Done():
					return
				}

			case <-ctx.Done():
				return
			}
		}
	}()
}
