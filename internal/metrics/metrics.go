// Package metrics объявляет счётчики Prometheus сервиса аутентификации.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы операций для меток outcome.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics набор счётчиков сервиса.
type Metrics struct {
	TokensIssued    *prometheus.CounterVec
	TokenRejections *prometheus.CounterVec
	Logins          *prometheus.CounterVec
	AdminActions    *prometheus.CounterVec
}

// New регистрирует счётчики в reg. Для reg == nil счётчики создаются, но
// нигде не регистрируются.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TokensIssued: f.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_tokens_issued_total",
			Help: "Number of issued tokens by kind.",
		}, []string{"kind"}),
		TokenRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_token_rejections_total",
			Help: "Number of rejected bearer tokens by guard kind.",
		}, []string{"kind"}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Number of login attempts by outcome.",
		}, []string{"outcome"}),
		AdminActions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_admin_actions_total",
			Help: "Number of audited administrative actions.",
		}, []string{"action", "outcome"}),
	}
}

// TokenIssued отмечает выпуск токена вида kind.
func (m *Metrics) TokenIssued(kind string) {
	if m == nil {
		return
	}
	m.TokensIssued.WithLabelValues(kind).Inc()
}

// TokenRejected отмечает отклонённый токен вида kind.
func (m *Metrics) TokenRejected(kind string) {
	if m == nil {
		return
	}
	m.TokenRejections.WithLabelValues(kind).Inc()
}

// Login отмечает попытку входа.
func (m *Metrics) Login(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

// AdminAction отмечает административное действие.
func (m *Metrics) AdminAction(action, outcome string) {
	if m == nil {
		return
	}
	m.AdminActions.WithLabelValues(action, outcome).Inc()
}
