// Package audit ведёт журнал административных действий. Каждая запись
// содержит id запроса, URL, действие, цель, исход и замаскированную
// копию ответа. Записи только добавляются.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/auth-service/internal/lib/redact"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/auth-service/internal/metrics"
)

// Действия журнала аудита.
const (
	ActionAdminLogin    = "admin_login"
	ActionListUsers     = "list_users"
	ActionGetUser       = "get_user"
	ActionDisableUser   = "disable_user"
	ActionEnableUser    = "enable_user"
	ActionResetPassword = "reset_password"
	ActionDeleteUser    = "delete_user"
)

// Исходы действий.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// RedactionFailed подставляется вместо ответа, который не удалось замаскировать.
const RedactionFailed = "<redaction failed>"

// Entry запись журнала аудита.
type Entry struct {
	RequestID string    `json:"request_id"`
	URL       string    `json:"url"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	Outcome   string    `json:"outcome"`
	Payload   any       `json:"payload,omitempty"`
	At        time.Time `json:"at"`
}

// Sink получатель записей аудита.
type Sink interface {
	Write(ctx context.Context, e Entry) error
}

// Auditor маскирует ответ и раздаёт запись всем получателям. Ошибки
// получателей логируются и не влияют на обработку запроса.
type Auditor struct {
	log     *slog.Logger
	sinks   []Sink
	metrics *metrics.Metrics
	now     func() time.Time
}

// New создаёт Auditor. m может быть nil.
func New(log *slog.Logger, m *metrics.Metrics, sinks ...Sink) *Auditor {
	return &Auditor{
		log:     log,
		sinks:   sinks,
		metrics: m,
		now:     time.Now,
	}
}

// Record маскирует payload и передаёт запись получателям.
func (a *Auditor) Record(ctx context.Context, e Entry, payload any) {
	const op = "audit.Record"

	redacted, err := redact.Payload(payload)
	if err != nil {
		a.log.Error("failed to redact audit payload",
			sl.Op(op),
			slog.String("action", e.Action),
			sl.Err(err),
		)
		redacted = RedactionFailed
	}
	e.Payload = redacted
	if e.At.IsZero() {
		e.At = a.now().UTC()
	}

	a.metrics.AdminAction(e.Action, e.Outcome)
	for _, sink := range a.sinks {
		if err := sink.Write(ctx, e); err != nil {
			a.log.Error("audit sink failed",
				sl.Op(op),
				slog.String("action", e.Action),
				slog.String("request_id", e.RequestID),
				sl.Err(err),
			)
		}
	}
}
