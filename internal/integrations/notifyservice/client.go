package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с NotifyService
// Все отправки идут как side-channel: ошибки уведомлений не должны
// ломать операции планирования
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// NotifyChairFree отправляет клиенту уведомление "кресло освободилось"
func (c *Client) NotifyChairFree(ctx context.Context, notification *ChairFreeNotification) error {
	url := fmt.Sprintf("%s/internal/notifications/chair-free", c.baseURL)
	return c.post(ctx, url, notification)
}

// ReportNoShow отправляет отчет о неявке
// NotifyService понижает уровень лояльности клиента на своей стороне
func (c *Client) ReportNoShow(ctx context.Context, report *NoShowReport) error {
	url := fmt.Sprintf("%s/internal/loyalty/no-show", c.baseURL)
	return c.post(ctx, url, report)
}

// NotifyChairFreeWithGracefulDegradation отправляет уведомление с graceful degradation
// При недоступности NotifyService возвращает ErrServiceDegraded: запись уже
// переведена в нужный статус, уведомление можно потерять
func (c *Client) NotifyChairFreeWithGracefulDegradation(ctx context.Context, notification *ChairFreeNotification) error {
	if err := c.NotifyChairFree(ctx, notification); err != nil {
		c.log.Error("NotifyService unavailable, chair-free notification dropped for appointment_id=%d: %v",
			notification.AppointmentID, err)
		return fmt.Errorf("%w: appointment_id=%d, error=%v", ErrServiceDegraded, notification.AppointmentID, err)
	}

	c.log.Info("Chair-free notification sent for appointment_id=%d", notification.AppointmentID)
	return nil
}

// ReportNoShowWithGracefulDegradation отправляет отчет о неявке с graceful degradation
func (c *Client) ReportNoShowWithGracefulDegradation(ctx context.Context, report *NoShowReport) error {
	if err := c.ReportNoShow(ctx, report); err != nil {
		c.log.Error("NotifyService unavailable, no-show report dropped for appointment_id=%d: %v",
			report.AppointmentID, err)
		return fmt.Errorf("%w: appointment_id=%d, error=%v", ErrServiceDegraded, report.AppointmentID, err)
	}

	c.log.Info("No-show report sent for appointment_id=%d", report.AppointmentID)
	return nil
}

func (c *Client) post(ctx context.Context, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
