package client

//go:generate mockgen -source=backend.go -destination=mocks/mock_backend.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/denmor86/ya-orderbot/internal/models"
)

// OrdersBackend - операции над заказами удалённого бэкенда
type OrdersBackend interface {
	ListOrders(ctx context.Context, status *models.Status) ([]models.Order, error)
	GetOrder(ctx context.Context, id models.OrderID) (*models.Order, error)
	SetStatus(ctx context.Context, id models.OrderID, status models.Status) error
}

// ReceiptFetcher - загрузка изображения чека об оплате
type ReceiptFetcher interface {
	FetchReceipt(ctx context.Context, ref string) ([]byte, error)
}

var (
	ErrBackendUnavailable = errors.New("orders backend unavailable")
	ErrOrderNotFound      = errors.New("order not found")
	ErrMalformedResponse  = errors.New("malformed backend response")
	ErrMediaFetchFailed   = errors.New("receipt fetch failed")
)

type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

// Unwrap позволяет вызывающему коду проверять errors.Is(err, ErrBackendUnavailable)
func (e *RateLimitError) Unwrap() error {
	return ErrBackendUnavailable
}

func NewRateLimitError(headers http.Header) *RateLimitError {
	return &RateLimitError{
		RetryAfter: ParseRetryAfter(headers),
	}
}
