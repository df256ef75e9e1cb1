package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/denmor86/ya-orderbot/internal/chat"
	"github.com/denmor86/ya-orderbot/internal/client"
	"github.com/denmor86/ya-orderbot/internal/logger"
	"github.com/denmor86/ya-orderbot/internal/metrics"
	"github.com/denmor86/ya-orderbot/internal/models"
)

const (
	ReceiptFetchFailedNote = "❌ Ошибка: Не удалось загрузить чек."
	ReceiptSendFailedNote  = "❌ Ошибка: Не удалось отправить чек."
)

// Действия кнопок заказа
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

func orderDetails(b *strings.Builder, order models.Order) {
	fmt.Fprintf(b, "🆔 ID: %s\n", order.ID)
	fmt.Fprintf(b, "👤 Имя: %s\n", order.Name)
	fmt.Fprintf(b, "📅 Время: %s\n", models.FormatTimestamp(order.CreatedAt))
	fmt.Fprintf(b, "📱 Телефон: %s\n", order.Phone)
	fmt.Fprintf(b, "📦 Товар: %s\n", order.Product)
	fmt.Fprintf(b, "🔢 Количество: %d\n", order.Quantity)
}

// NewOrderCaption - подпись уведомления о новом заказе
func NewOrderCaption(order models.Order) string {
	var b strings.Builder
	b.WriteString("🛒 Новый заказ!\n\n")
	orderDetails(&b, order)
	return b.String()
}

// StatusCaption - подпись карточки в списке заказов по статусу
func StatusCaption(order models.Order, status models.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 Заказ со статусом '%s'\n\n", status)
	orderDetails(&b, order)
	fmt.Fprintf(&b, "📝 Статус: %s\n", order.Status)
	return b.String()
}

// SearchCaption - подпись карточки найденного заказа
func SearchCaption(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Результаты поиска по ID: %s\n\n", order.ID)
	orderDetails(&b, order)
	fmt.Fprintf(&b, "📝 Статус: %s\n", order.Status)
	return b.String()
}

// NotificationKeyboard - кнопки уведомления, каждая в своей строке
func NotificationKeyboard(id models.OrderID) chat.Keyboard {
	return chat.Keyboard{
		chat.Row(chat.Button{Text: "✅ Одобрить", Data: chat.ActionKey(ActionApprove, id.String())}),
		chat.Row(chat.Button{Text: "❌ Отклонить", Data: chat.ActionKey(ActionReject, id.String())}),
	}
}

// DecisionKeyboard - кнопки карточки ожидающего заказа в списках и поиске.
// Для решённых заказов клавиатуры нет.
func DecisionKeyboard(order models.Order) chat.Keyboard {
	if order.Status != models.StatusPending {
		return nil
	}
	id := order.ID.String()
	return chat.Keyboard{
		chat.Row(
			chat.Button{Text: "✅ Одобрить " + id, Data: chat.ActionKey(ActionApprove, id)},
			chat.Button{Text: "❌ Отклонить " + id, Data: chat.ActionKey(ActionReject, id)},
		),
	}
}

// CardSender доставляет карточку заказа: фото чека с подписью, а при сбое - текст с пометкой об ошибке
type CardSender struct {
	Messenger chat.Messenger
	Receipts  client.ReceiptFetcher
}

func NewCardSender(messenger chat.Messenger, receipts client.ReceiptFetcher) *CardSender {
	return &CardSender{Messenger: messenger, Receipts: receipts}
}

// Send возвращает способ доставки (metrics.Notify*) и ошибку, если не удалось отправить даже текст
func (s *CardSender) Send(ctx context.Context, chatID int64, order models.Order, caption string, kb chat.Keyboard) (string, error) {
	data, err := s.Receipts.FetchReceipt(ctx, order.Receipt)
	if err != nil {
		logger.Warn("receipt fetch failed", "order", order.ID, "error", err)
		return s.sendText(ctx, chatID, caption+"\n"+ReceiptFetchFailedNote, kb)
	}

	filename := fmt.Sprintf("receipt_%s.jpg", order.ID)
	if _, err := s.Messenger.SendPhoto(ctx, chatID, data, filename, caption, kb); err != nil {
		logger.Warn("receipt photo send failed", "order", order.ID, "error", err)
		return s.sendText(ctx, chatID, caption+"\n"+ReceiptSendFailedNote, kb)
	}
	return metrics.NotifyPhoto, nil
}

func (s *CardSender) sendText(ctx context.Context, chatID int64, text string, kb chat.Keyboard) (string, error) {
	if _, err := s.Messenger.SendText(ctx, chatID, text, kb); err != nil {
		return metrics.NotifyFailed, fmt.Errorf("%w: %w", chat.ErrDeliveryFailed, err)
	}
	return metrics.NotifyTextFallback, nil
}
