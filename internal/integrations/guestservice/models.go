package guestservice

// Profile профиль гостя из сервиса гостевых профилей
type Profile struct {
	ExternalID  string `json:"external_id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	VisitsCount int    `json:"visits_count"`
	Blacklisted bool   `json:"blacklisted"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ErrorResponse модель ошибки от сервиса профилей
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
