package models

import "fmt"

// ErrorResponse описывает ошибку с кодом и сообщением.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Message    string `json:"reason"`
}

// NewErrorResponse создает новую ошибку с кодом и сообщением.
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Message:    message}
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return e.Message
}

// ValidationError - некорректная запись, отбрасывается на границе и не
// попадает в рабочий набор обработчика жизненного цикла.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// NotFoundError - ссылка на несуществующую запись.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// PersistenceError - не удалось сохранить переход тендера; переход
// отбрасывается в текущем цикле и повторяется в следующем.
type PersistenceError struct {
	TenderID string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist transition of tender %s: %v", e.TenderID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ConfigurationError - недопустимый параметр запуска, фатально для приложения.
type ConfigurationError struct {
	Param  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Param, e.Reason)
}
