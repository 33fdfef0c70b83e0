package middlewarectx

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/auth-service/internal/services/audit"
)

// Recorder принимает записи журнала аудита.
type Recorder interface {
	Record(ctx context.Context, e audit.Entry, payload any)
}

// Target возвращает идентификатор аккаунта из параметра пути {id}.
func Target(r *http.Request) string {
	raw := chi.URLParam(r, "id")
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// Audit записывает в журнал каждый ответ административного обработчика:
// id запроса, URL, действие, цель из параметра {id} и исход по статусу.
// Тело ответа копируется и передаётся в журнал как есть, маскирует его Recorder.
func Audit(rec Recorder, action string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Audit"

			var body bytes.Buffer
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&body)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			outcome := audit.OutcomeSuccess
			if status >= http.StatusBadRequest {
				outcome = audit.OutcomeFailure
			}

			var payload any
			if body.Len() > 0 {
				if err := json.Unmarshal(body.Bytes(), &payload); err != nil {
					log.Debug("audit payload is not json",
						sl.Op(op),
						slog.String("action", action),
					)
					payload = body.String()
				}
			}

			rec.Record(r.Context(), audit.Entry{
				RequestID: middleware.GetReqID(r.Context()),
				URL:       r.URL.String(),
				Action:    action,
				Target:    Target(r),
				Outcome:   outcome,
			}, payload)
		})
	}
}
