// Package notify delivers in-platform notifications on a best-effort basis.
// Dispatch failures are logged and never surfaced to callers.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	UserId  uuid.UUID
	Kind    string
	Title   string
	Message string
	Link    string
}

type Dispatcher interface {
	Notify(ctx context.Context, n Notification)
}

// SlogDispatcher records deliveries in the application log. It stands in
// for the platform's real delivery channels, which live outside this core.
type SlogDispatcher struct {
	log *slog.Logger
}

func NewSlogDispatcher(log *slog.Logger) *SlogDispatcher {
	return &SlogDispatcher{log: log}
}

func (d *SlogDispatcher) Notify(_ context.Context, n Notification) {
	d.log.Info("notification dispatched",
		"user_id", n.UserId.String(),
		"kind", n.Kind,
		"title", n.Title,
		"link", n.Link,
	)
}

// AsyncDispatcher fans a notification out on its own goroutine with a short
// delivery window, so callers never block on a slow channel.
type AsyncDispatcher struct {
	inner   Dispatcher
	timeout time.Duration
}

func NewAsyncDispatcher(inner Dispatcher, timeout time.Duration) *AsyncDispatcher {
	return &AsyncDispatcher{inner: inner, timeout: timeout}
}

func (d *AsyncDispatcher) Notify(_ context.Context, n Notification) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		d.inner.Notify(ctx, n)
	}()
}
