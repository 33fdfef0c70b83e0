package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
)

// LogSink пишет записи аудита в лог.
type LogSink struct {
	log *slog.Logger
}

// NewLogSink создаёт LogSink.
func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

// Write пишет запись одной строкой лога.
func (s *LogSink) Write(ctx context.Context, e Entry) error {
	s.log.LogAttrs(ctx, slog.LevelInfo, "audit",
		slog.String("request_id", e.RequestID),
		slog.String("url", e.URL),
		slog.String("action", e.Action),
		slog.String("target", e.Target),
		slog.String("outcome", e.Outcome),
		slog.Any("payload", e.Payload),
		slog.Time("at", e.At),
	)
	return nil
}

// Publisher публикует сообщение в брокер.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Параметры очереди BrokerSink.
const (
	DefaultBrokerQueueSize = 256
	publishTimeout         = 5 * time.Second
)

var (
	// ErrQueueFull очередь публикации переполнена, запись отброшена.
	ErrQueueFull = errors.New("audit broker queue is full")
	// ErrSinkClosed запись пришла после Close.
	ErrSinkClosed = errors.New("audit broker sink is closed")
)

// BrokerSink публикует записи аудита в обменник RabbitMQ; ключ
// маршрутизации равен действию. Write только ставит запись в очередь,
// публикует фоновая горутина, поэтому медленный брокер не задерживает ответ.
type BrokerSink struct {
	pub     Publisher
	log     *slog.Logger
	timeout time.Duration

	mu      sync.RWMutex
	closed  bool
	entries chan Entry
	done    chan struct{}
}

// NewBrokerSink создаёт BrokerSink и запускает публикацию. size <= 0
// означает DefaultBrokerQueueSize. Владелец обязан вызвать Close.
func NewBrokerSink(pub Publisher, log *slog.Logger, size int) *BrokerSink {
	if size <= 0 {
		size = DefaultBrokerQueueSize
	}
	s := &BrokerSink{
		pub:     pub,
		log:     log,
		timeout: publishTimeout,
		entries: make(chan Entry, size),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

// Write ставит запись в очередь. Не блокируется: при переполненной
// очереди возвращает ErrQueueFull.
func (s *BrokerSink) Write(_ context.Context, e Entry) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrSinkClosed
	}
	select {
	case s.entries <- e:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close перестаёт принимать записи и ждёт публикации уже поставленных.
func (s *BrokerSink) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.entries)
	}
	s.mu.Unlock()
	<-s.done
}

func (s *BrokerSink) run() {
	const op = "audit.BrokerSink.run"
	defer close(s.done)

	for e := range s.entries {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		err := s.pub.Publish(ctx, "audit."+e.Action, e)
		cancel()
		if err != nil {
			s.log.Error("failed to publish audit entry",
				sl.Op(op),
				slog.String("action", e.Action),
				slog.String("request_id", e.RequestID),
				sl.Err(err),
			)
		}
	}
}
