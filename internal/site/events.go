package site

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	pberrors "git.home.luguber.info/inful/postbuilder/internal/errors"
	"git.home.luguber.info/inful/postbuilder/internal/logfields"
)

// PageRenderedEvent is published for every page written during a build.
type PageRenderedEvent struct {
	BuildID  string    `json:"build_id"`
	Source   string    `json:"source"`
	Output   string    `json:"output"`
	Title    string    `json:"title,omitempty"`
	Layout   string    `json:"layout"`
	Rendered time.Time `json:"rendered_at"`
}

// BuildCompletedEvent is published once per finished build.
type BuildCompletedEvent struct {
	BuildID   string        `json:"build_id"`
	Pages     int           `json:"pages"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"duration_ns"`
	Completed time.Time     `json:"completed_at"`
}

// Publisher emits build events over NATS. Publishing failures degrade to
// warnings; event delivery is never allowed to fail a build.
type Publisher struct {
	conn   *nats.Conn
	prefix string
}

// NewPublisher connects to NATS and returns a Publisher.
func NewPublisher(url, subjectPrefix string) (*Publisher, error) {
	conn, err := nats.Connect(url, nats.Name("postbuilder"))
	if err != nil {
		return nil, pberrors.WrapError(err, pberrors.CategoryPublish, "failed to connect to NATS").
			WithContext("url", url)
	}

	slog.Info("Connected to NATS for build events", "url", url, logfields.Subject(subjectPrefix))
	return &Publisher{conn: conn, prefix: subjectPrefix}, nil
}

// PageRendered publishes a page-rendered event.
func (p *Publisher) PageRendered(evt PageRenderedEvent) error {
	return p.publish(p.prefix+".page.rendered", evt)
}

// BuildCompleted publishes a build-completed event.
func (p *Publisher) BuildCompleted(evt BuildCompletedEvent) error {
	return p.publish(p.prefix+".build.completed", evt)
}

func (p *Publisher) publish(subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return pberrors.PublishFailed(err, subject)
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return pberrors.PublishFailed(err, subject)
	}
	return nil
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if err := p.conn.Drain(); err != nil {
		slog.Warn("Failed to drain NATS connection", logfields.Error(err))
	}
}
