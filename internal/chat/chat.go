// Package chat описывает контракт отправки сообщений администратору, не привязанный к конкретному мессенджеру.
package chat

//go:generate mockgen -source=chat.go -destination=mocks/mock_chat.go -package=mocks

import (
	"context"
	"errors"
	"strings"
)

var ErrDeliveryFailed = errors.New("chat delivery failed")

// Button - кнопка встроенной клавиатуры, Data возвращается в обратном вызове
type Button struct {
	Text string
	Data string
}

// Keyboard - строки кнопок встроенной клавиатуры
type Keyboard [][]Button

// Row - удобный конструктор строки клавиатуры
func Row(buttons ...Button) []Button {
	return buttons
}

// Messenger - исходящие операции транспорта. Методы, возвращающие int, отдают идентификатор отправленного сообщения.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string, kb Keyboard) (int, error)
	SendPhoto(ctx context.Context, chatID int64, data []byte, filename, caption string, kb Keyboard) (int, error)
	SendDocument(ctx context.Context, chatID int64, data []byte, filename, caption string) error
	EditText(ctx context.Context, chatID int64, messageID int, text string, kb Keyboard) error
	RemoveKeyboard(ctx context.Context, chatID int64, messageID int) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

// Message - входящее текстовое сообщение или команда
type Message struct {
	ChatID    int64
	UserID    int64
	MessageID int
	Text      string
	// Command - имя команды без "/" и упоминания бота, пустое для обычного текста
	Command string
	// Args - текст после команды
	Args string
}

// Callback - нажатие кнопки встроенной клавиатуры
type Callback struct {
	ID        string
	ChatID    int64
	UserID    int64
	MessageID int
	Data      string
}

// ActionKey - ключ кнопки вида "<action>_<id>"
func ActionKey(action, id string) string {
	return action + "_" + id
}

// ParseActionKey разбирает ключ по первому "_": "approve_42" -> ("approve", "42")
func ParseActionKey(data string) (action, id string, ok bool) {
	action, id, ok = strings.Cut(data, "_")
	if !ok || action == "" || id == "" {
		return "", "", false
	}
	return action, id, true
}
