package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/event"
	"github.com/oksasatya/go-ddd-group-chat/pkg/mailer"
)

const mailTimeout = 15 * time.Second

type indexer interface {
	Apply(ctx context.Context, ev event.ChatEvent) error
}

type sender interface {
	Send(ctx context.Context, job mailer.EmailJob) error
}

// processor applies one broker delivery. A nil mail sender disables notices.
type processor struct {
	index   indexer
	mail    sender
	appName string
	logger  *logrus.Logger
}

// handle reports whether a failed delivery is worth redelivering. Malformed
// bodies are dropped.
func (p *processor) handle(ctx context.Context, body []byte) (requeue bool, err error) {
	var ev event.ChatEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return false, fmt.Errorf("decode event: %w", err)
	}
	if ev.Type == "" {
		return false, fmt.Errorf("decode event: missing type")
	}

	if err := p.index.Apply(ctx, ev); err != nil {
		return true, fmt.Errorf("index %s: %w", ev.Type, err)
	}

	if p.mail == nil {
		return false, nil
	}
	job, ok := mailer.MembershipNotice(p.appName, ev)
	if !ok {
		return false, nil
	}
	c, cancel := context.WithTimeout(ctx, mailTimeout)
	defer cancel()
	if err := p.mail.Send(c, job); err != nil {
		return true, fmt.Errorf("send notice to %s: %w", job.To, err)
	}
	p.logger.WithFields(logrus.Fields{"type": ev.Type, "group_id": ev.GroupID, "user_id": ev.UserID}).Info("membership notice sent")
	return false, nil
}
