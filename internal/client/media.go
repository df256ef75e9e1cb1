package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// максимальный размер изображения чека
const maxReceiptSize = 10 << 20

// ResolveReceiptURL возвращает абсолютный адрес чека
func (c *Client) ResolveReceiptURL(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty receipt reference", ErrMediaFetchFailed)
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return c.mediaURL + ref, nil
}

// FetchReceipt загружает изображение чека. Любая ошибка приводится к ErrMediaFetchFailed.
func (c *Client) FetchReceipt(ctx context.Context, ref string) ([]byte, error) {
	target, err := c.ResolveReceiptURL(ref)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMediaFetchFailed, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMediaFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrMediaFetchFailed, target, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReceiptSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMediaFetchFailed, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMediaFetchFailed)
	}
	if len(data) > maxReceiptSize {
		return nil, fmt.Errorf("%w: receipt larger than %d bytes", ErrMediaFetchFailed, maxReceiptSize)
	}
	return data, nil
}
