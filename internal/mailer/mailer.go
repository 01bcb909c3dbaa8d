// Package mailer defines the outbound email contract consumed by the
// registration and password-reset workflows. Delivery is asynchronous and
// best-effort: implementations must never propagate a failure back into
// the transaction that requested the email.
package mailer

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/marketplace-reputation/internal/queue"
)

// Mailer dispatches workflow emails. Both methods are fire-and-forget.
type Mailer interface {
	SendRegistrationEmail(ctx context.Context, to, name, confirmLink string)
	SendPasswordResetEmail(ctx context.Context, to, name, code string)
}

// Queue publishes email requests to the message broker, where the
// background consumer performs actual delivery. Publishing happens in a
// goroutine so the calling request never blocks on the broker; errors are
// logged inside the publisher and absorbed here.
type Queue struct{}

// NewQueue returns the broker-backed mailer.
func NewQueue() *Queue { return &Queue{} }

func (q *Queue) SendRegistrationEmail(ctx context.Context, to, name, confirmLink string) {
	dispatch(queue.EmailRequestedEvent{
		Kind:        queue.EmailKindRegistration,
		To:          to,
		Name:        name,
		ConfirmLink: confirmLink,
	})
}

func (q *Queue) SendPasswordResetEmail(ctx context.Context, to, name, code string) {
	dispatch(queue.EmailRequestedEvent{
		Kind:      queue.EmailKindPasswordReset,
		To:        to,
		Name:      name,
		ResetCode: code,
	})
}

func dispatch(ev queue.EmailRequestedEvent) {
	ev.QueuedAt = time.Now().UTC().Format(time.RFC3339)
	go func() {
		// Detached from the request context: the caller already got its
		// response and must not be cancelled along with it.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := queue.PublishEmailRequested(ctx, ev); err != nil {
			log.Printf("mailer: dropping %s email to %s: %v", ev.Kind, ev.To, err)
		}
	}()
}
