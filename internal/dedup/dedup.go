// Package dedup хранит множество заказов, о которых администратору уже отправлено уведомление.
package dedup

import (
	"context"
	"time"

	"github.com/denmor86/ya-orderbot/internal/models"
)

// Store - множество уведомлённых заказов. Реализации безопасны для
// одновременного использования опросчиком и обработчиком подтверждений.
type Store interface {
	IsNotified(ctx context.Context, id models.OrderID) (bool, error)
	MarkNotified(ctx context.Context, id models.OrderID) error
	// MarkAttempted отмечает заказ, уведомление о котором доставить не удалось.
	// Отметка действует до перезапуска процесса и не сохраняется в долговременное хранилище.
	MarkAttempted(ctx context.Context, id models.OrderID) error
	// Clear снимает отметку после смены статуса заказа и запоминает время снятия
	Clear(ctx context.Context, id models.OrderID) error
	// ClearedSince сообщает, снималась ли отметка с заказа начиная с момента since
	ClearedSince(ctx context.Context, id models.OrderID, since time.Time) (bool, error)
	// Prune удаляет отметки о снятии, сделанные раньше before
	Prune(ctx context.Context, before time.Time) error
	Close() error
}
