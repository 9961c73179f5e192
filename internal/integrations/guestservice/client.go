package guestservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client клиент для работы с сервисом гостевых профилей
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса профилей
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetProfileByPhone получает профиль гостя по номеру телефона
func (c *Client) GetProfileByPhone(ctx context.Context, phone string) (*Profile, error) {
	reqURL := fmt.Sprintf("%s/internal/guests?phone=%s", c.baseURL, url.QueryEscape(phone))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrGuestNotFound
	default:
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, errResp.Message)
		}
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &profile, nil
}

// GetProfileWithGracefulDegradation получает профиль гостя с graceful degradation
// При недоступности сервиса профилей возвращает ErrServiceDegraded: бронирование
// принимается без проверки черного списка, недоступность профилей не должна
// останавливать продажи
func (c *Client) GetProfileWithGracefulDegradation(ctx context.Context, phone string) (*Profile, error) {
	profile, err := c.GetProfileByPhone(ctx, phone)
	if err != nil {
		// Новый гость без профиля это нормальная ситуация, пробрасываем дальше
		if err == ErrGuestNotFound {
			c.log.Info("No guest profile found for phone=%s", phone)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("GuestService unavailable, applying graceful degradation for phone=%s: %v", phone, err)
		return nil, fmt.Errorf("%w: phone=%s, error=%v", ErrServiceDegraded, phone, err)
	}

	return profile, nil
}
