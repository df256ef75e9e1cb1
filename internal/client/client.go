package client

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/denmor86/ya-orderbot/internal/models"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	ordersURL  string
	mediaURL   string
	httpClient HTTPClient
	limiter    *RateLimiter
}

// NewClient - создание клиента бэкенда заказов. ordersURL указывает на коллекцию заказов
// (например https://host/api/orders/), mediaURL - база для относительных путей чеков;
// если она пустая, используется схема и хост ordersURL.
func NewClient(ordersURL, mediaURL string, client HTTPClient) (*Client, error) {
	orders, err := url.Parse(ordersURL)
	if err != nil || orders.Scheme == "" || orders.Host == "" {
		return nil, fmt.Errorf("invalid orders url %q", ordersURL)
	}
	if !strings.HasSuffix(orders.Path, "/") {
		orders.Path += "/"
	}
	orders.RawQuery = ""

	if mediaURL == "" {
		mediaURL = orders.Scheme + "://" + orders.Host
	}

	return &Client{
		ordersURL:  orders.String(),
		mediaURL:   strings.TrimRight(mediaURL, "/"),
		httpClient: client,
		limiter:    NewRateLimiter(),
	}, nil
}

// ListOrders - список заказов, опционально отфильтрованный по статусу
func (c *Client) ListOrders(ctx context.Context, status *models.Status) ([]models.Order, error) {
	target := c.ordersURL
	if status != nil {
		query := url.Values{}
		query.Set("status", string(*status))
		target += "?" + query.Encode()
	}

	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, target, nil, &orders, nil); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder - получение одного заказа
func (c *Client) GetOrder(ctx context.Context, id models.OrderID) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, c.orderURL(id), nil, &order, ErrOrderNotFound); err != nil {
		return nil, err
	}
	return &order, nil
}

// SetStatus - частичное обновление статуса заказа. Тело ответа не проверяется.
func (c *Client) SetStatus(ctx context.Context, id models.OrderID, status models.Status) error {
	body, err := json.Marshal(models.StatusUpdate{Status: status})
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, c.orderURL(id), body, nil, ErrOrderNotFound)
}

func (c *Client) orderURL(id models.OrderID) string {
	return c.ordersURL + url.PathEscape(id.String()) + "/"
}

func (c *Client) do(ctx context.Context, method, target string, body []byte, out interface{}, notFound error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrBackendUnavailable, method, target, err)
	}
	defer resp.Body.Close()

	if err := HandleErrorResponse(resp, notFound); err != nil {
		var rateLimitErr *RateLimitError
		if errors.As(err, &rateLimitErr) {
			c.limiter.BlockFor(rateLimitErr.RetryAfter)
		}
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// HandleErrorResponse переводит код ответа в типизированную ошибку. notFound
// возвращается на 404, если ресурс адресный; иначе 404 считается недоступностью.
func HandleErrorResponse(resp *http.Response, notFound error) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return NewRateLimitError(resp.Header)
	case resp.StatusCode == http.StatusNotFound && notFound != nil:
		return notFound
	default:
		return fmt.Errorf("%w: unexpected status %d", ErrBackendUnavailable, resp.StatusCode)
	}
}
