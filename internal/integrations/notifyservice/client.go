package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client клиент сервиса уведомлений
// Доставка напоминаний и push-уведомлений лежит на внешнем сервисе,
// движок бронирования только отправляет события смены статуса
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// StatusEvent событие смены статуса бронирования
type StatusEvent struct {
	BookingID     int64  `json:"booking_id"`
	ResourceCode  string `json:"resource_code"`
	CustomerPhone string `json:"customer_phone"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
	BookingDate   string `json:"booking_date"`
	StartTime     string `json:"start_time"`
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// NotifyStatusChange отправляет событие смены статуса
// Отправка best-effort: ошибка доставки логируется и не откатывает переход
func (c *Client) NotifyStatusChange(ctx context.Context, event StatusEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notifyservice client: failed to marshal event: %w", err)
	}

	reqURL := fmt.Sprintf("%s/internal/notifications/booking-status", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("notifyservice client: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notifyservice client: failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("notifyservice client: unexpected status code %d", resp.StatusCode)
	}

	return nil
}
