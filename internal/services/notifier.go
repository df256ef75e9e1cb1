package services

//go:generate mockgen -source=notifier.go -destination=mocks/mock_notifier.go -package=mocks

import (
	"context"

	"github.com/denmor86/ya-orderbot/internal/logger"
	"github.com/denmor86/ya-orderbot/internal/metrics"
	"github.com/denmor86/ya-orderbot/internal/models"
)

// Notifier - уведомление администратора о новом заказе. Ошибки не возвращаются:
// доставка деградирует до текста, а итог логируется. Результат сообщает,
// дошло ли до чата хоть какое-то сообщение.
type Notifier interface {
	Notify(ctx context.Context, order models.Order) bool
}

// AdminNotifier отправляет карточку нового заказа в чат администраторов
type AdminNotifier struct {
	Cards       *CardSender
	AdminChatID int64
	Metrics     *metrics.BotMetrics
}

func NewAdminNotifier(cards *CardSender, adminChatID int64, m *metrics.BotMetrics) *AdminNotifier {
	return &AdminNotifier{Cards: cards, AdminChatID: adminChatID, Metrics: m}
}

func (n *AdminNotifier) Notify(ctx context.Context, order models.Order) bool {
	result, err := n.Cards.Send(ctx, n.AdminChatID, order, NewOrderCaption(order), NotificationKeyboard(order.ID))
	n.Metrics.RecordNotification(result)
	if err != nil {
		logger.Error("failed to notify admin", "order", order.ID, "error", err)
		return false
	}
	logger.Info("sent notification for new order", "order", order.ID, "delivery", result)
	return true
}
