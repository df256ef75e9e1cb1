package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/denmor86/ya-orderbot/internal/chat"
	"github.com/denmor86/ya-orderbot/internal/client"
	"github.com/denmor86/ya-orderbot/internal/dedup"
	"github.com/denmor86/ya-orderbot/internal/logger"
	"github.com/denmor86/ya-orderbot/internal/metrics"
	"github.com/denmor86/ya-orderbot/internal/models"
)

const (
	StatusUpdateFailedText = "❌ Ошибка при обновлении статуса"
	ApprovalBusyText       = "⏳ Заказ уже обрабатывается"
)

var (
	ErrApprovalInProgress = errors.New("order approval already in progress")
	ErrUnknownDecision    = errors.New("unknown approval decision")
)

// Decision - решение администратора по заказу
type Decision string

const (
	DecisionApprove Decision = ActionApprove
	DecisionReject  Decision = ActionReject
)

// Status - целевой статус заказа для решения
func (d Decision) Status() (models.Status, error) {
	switch d {
	case DecisionApprove:
		return models.StatusApproved, nil
	case DecisionReject:
		return models.StatusRejected, nil
	}
	return "", ErrUnknownDecision
}

// ApprovalRequest - нажатие кнопки одобрения/отклонения под сообщением с заказом
type ApprovalRequest struct {
	CallbackID string
	ChatID     int64
	MessageID  int
	OrderID    models.OrderID
	Decision   Decision
}

// Approval применяет решения по заказам. Одновременные нажатия по одному заказу
// обрабатываются по одному: повторное нажатие получает ответ и ничего не меняет.
type Approval struct {
	Backend   client.OrdersBackend
	Messenger chat.Messenger
	Notified  dedup.Store
	Metrics   *metrics.BotMetrics

	mu       sync.Mutex
	inflight map[models.OrderID]struct{}
}

func NewApproval(backend client.OrdersBackend, messenger chat.Messenger, notified dedup.Store, m *metrics.BotMetrics) *Approval {
	return &Approval{
		Backend:   backend,
		Messenger: messenger,
		Notified:  notified,
		Metrics:   m,
		inflight:  make(map[models.OrderID]struct{}),
	}
}

func (a *Approval) acquire(id models.OrderID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, busy := a.inflight[id]; busy {
		return false
	}
	a.inflight[id] = struct{}{}
	return true
}

func (a *Approval) release(id models.OrderID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.inflight, id)
}

func (a *Approval) answer(ctx context.Context, callbackID, text string) {
	if err := a.Messenger.AnswerCallback(ctx, callbackID, text); err != nil {
		logger.Warn("failed to answer callback", "callback", callbackID, "error", err)
	}
}

// Apply меняет статус заказа на бэкенде. При успехе убирает кнопки и снимает отметку
// об уведомлении; при ошибке кнопки остаются, чтобы администратор мог повторить.
func (a *Approval) Apply(ctx context.Context, req ApprovalRequest) error {
	status, err := req.Decision.Status()
	if err != nil {
		return err
	}

	if !a.acquire(req.OrderID) {
		a.Metrics.RecordApproval(string(req.Decision), metrics.ApprovalBusy)
		a.answer(ctx, req.CallbackID, ApprovalBusyText)
		return ErrApprovalInProgress
	}
	defer a.release(req.OrderID)

	if err := a.Backend.SetStatus(ctx, req.OrderID, status); err != nil {
		a.Metrics.RecordApproval(string(req.Decision), metrics.ApprovalFailed)
		a.answer(ctx, req.CallbackID, StatusUpdateFailedText)
		return fmt.Errorf("failed to set status %s for order %s: %w", status, req.OrderID, err)
	}

	a.answer(ctx, req.CallbackID, fmt.Sprintf("✅ Статус изменён на: %s", status))
	if err := a.Messenger.RemoveKeyboard(ctx, req.ChatID, req.MessageID); err != nil {
		logger.Warn("failed to remove keyboard", "order", req.OrderID, "error", err)
	}
	if err := a.Notified.Clear(ctx, req.OrderID); err != nil {
		logger.Error("failed to clear notified order", "order", req.OrderID, "error", err)
	}
	a.Metrics.RecordApproval(string(req.Decision), metrics.ApprovalApplied)
	logger.Info("order status changed", "order", req.OrderID, "status", status)
	return nil
}
