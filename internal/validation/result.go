package validation

import "strings"

// Result результат проверки одного поля. Value содержит нормализованное значение.
type Result struct {
	Valid bool
	Error string
	Value string
}

func ok(value string) Result {
	return Result{Valid: true, Value: value}
}

func fail(message string) Result {
	return Result{Valid: false, Error: message}
}

// FieldError ошибка конкретного поля запроса
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors набор ошибок полей, реализует error
type Errors []FieldError

func (e Errors) Error() string {
	messages := make([]string, 0, len(e))
	for _, fe := range e {
		messages = append(messages, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

// Messages только тексты ошибок, в порядке полей
func (e Errors) Messages() []string {
	out := make([]string, 0, len(e))
	for _, fe := range e {
		out = append(out, fe.Message)
	}
	return out
}

func (e *Errors) add(field string, r Result) {
	if !r.Valid {
		*e = append(*e, FieldError{Field: field, Message: r.Error})
	}
}
