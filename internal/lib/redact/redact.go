// Package redact маскирует чувствительные поля в произвольных
// JSON-подобных значениях перед записью в журнал аудита.
//
// Ключ считается чувствительным, если его имя (без учёта регистра)
// содержит одну из подстрок denylist. Обход рекурсивный: вложенные
// объекты и массивы обрабатываются на любой глубине. Входное значение
// не изменяется, возвращается новая копия.
package redact

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mask значение, которым заменяются чувствительные поля.
const Mask = "***"

var denylist = []string{"password", "token", "secret"}

// IsSensitive сообщает, нужно ли маскировать поле с таким именем.
func IsSensitive(key string) bool {
	lower := strings.ToLower(key)
	for _, pattern := range denylist {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// Value возвращает копию v, в которой значения чувствительных ключей
// заменены на Mask. Поддерживаются map[string]any и []any; остальные
// значения возвращаются как есть.
func Value(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, val := range typed {
			if IsSensitive(k) {
				out[k] = Mask
				continue
			}
			out[k] = Value(val)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, val := range typed {
			out[i] = Value(val)
		}
		return out
	default:
		return v
	}
}

// Payload приводит произвольное значение (структуру, map, срез) к
// JSON-подобному виду и маскирует его. Ошибка возвращается, если
// значение не сериализуется в JSON.
func Payload(v any) (any, error) {
	const op = "redact.Payload"
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return Value(generic), nil
}
