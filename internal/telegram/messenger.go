// Package telegram реализует транспорт чата поверх Telegram Bot API.
package telegram

//go:generate mockgen -source=messenger.go -destination=mocks/mock_telegram.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/denmor86/ya-orderbot/internal/chat"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotAPI - используемая часть клиента tgbotapi
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Messenger отправляет сообщения через Bot API. tgbotapi не принимает context,
// поэтому время запроса ограничивается таймаутом HTTP-клиента бота.
type Messenger struct {
	API BotAPI
}

func NewMessenger(api BotAPI) *Messenger {
	return &Messenger{API: api}
}

// Markup переводит клавиатуру в формат Bot API
func Markup(kb chat.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func deliveryError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", chat.ErrDeliveryFailed, op, err)
}

func (m *Messenger) SendText(ctx context.Context, chatID int64, text string, kb chat.Keyboard) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, deliveryError("send text", err)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if len(kb) > 0 {
		msg.ReplyMarkup = Markup(kb)
	}
	sent, err := m.API.Send(msg)
	if err != nil {
		return 0, deliveryError("send text", err)
	}
	return sent.MessageID, nil
}

func (m *Messenger) SendPhoto(ctx context.Context, chatID int64, data []byte, filename, caption string, kb chat.Keyboard) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, deliveryError("send photo", err)
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	photo.Caption = caption
	if len(kb) > 0 {
		photo.ReplyMarkup = Markup(kb)
	}
	sent, err := m.API.Send(photo)
	if err != nil {
		return 0, deliveryError("send photo", err)
	}
	return sent.MessageID, nil
}

func (m *Messenger) SendDocument(ctx context.Context, chatID int64, data []byte, filename, caption string) error {
	if err := ctx.Err(); err != nil {
		return deliveryError("send document", err)
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	doc.Caption = caption
	if _, err := m.API.Send(doc); err != nil {
		return deliveryError("send document", err)
	}
	return nil
}

func (m *Messenger) EditText(ctx context.Context, chatID int64, messageID int, text string, kb chat.Keyboard) error {
	if err := ctx.Err(); err != nil {
		return deliveryError("edit text", err)
	}
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if len(kb) > 0 {
		markup := Markup(kb)
		edit.ReplyMarkup = &markup
	}
	if _, err := m.API.Request(edit); err != nil && !isNotModified(err) {
		return deliveryError("edit text", err)
	}
	return nil
}

func (m *Messenger) RemoveKeyboard(ctx context.Context, chatID int64, messageID int) error {
	if err := ctx.Err(); err != nil {
		return deliveryError("remove keyboard", err)
	}
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := m.API.Request(edit); err != nil && !isNotModified(err) {
		return deliveryError("remove keyboard", err)
	}
	return nil
}

func (m *Messenger) AnswerCallback(ctx context.Context, callbackID, text string) error {
	if err := ctx.Err(); err != nil {
		return deliveryError("answer callback", err)
	}
	if _, err := m.API.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		return deliveryError("answer callback", err)
	}
	return nil
}

// Telegram отвечает ошибкой, если новое содержимое совпадает со старым
func isNotModified(err error) bool {
	return strings.Contains(err.Error(), "message is not modified")
}
