package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/denmor86/ya-orderbot/internal/chat"
	"github.com/denmor86/ya-orderbot/internal/client"
	"github.com/denmor86/ya-orderbot/internal/logger"
	"github.com/denmor86/ya-orderbot/internal/models"
	"github.com/denmor86/ya-orderbot/internal/reports"
	"github.com/denmor86/ya-orderbot/internal/services"
	"github.com/denmor86/ya-orderbot/internal/validators"
)

// Toggle - переключатель уведомлений о новых заказах
type Toggle interface {
	Enabled() bool
	Set(enabled bool)
}

type commandHandler func(ctx context.Context, msg chat.Message)
type callbackHandler func(ctx context.Context, cb chat.Callback)

// Router - обработчик команд и нажатий кнопок администраторов
type Router struct {
	Messenger     chat.Messenger
	Console       *services.Console
	Cards         *services.CardSender
	Approval      *services.Approval
	Notifications Toggle

	admins    map[int64]struct{}
	commands  map[string]commandHandler
	callbacks map[string]callbackHandler
}

func NewRouter(messenger chat.Messenger, console *services.Console, cards *services.CardSender,
	approval *services.Approval, notifications Toggle, admins []int64) *Router {
	r := &Router{
		Messenger:     messenger,
		Console:       console,
		Cards:         cards,
		Approval:      approval,
		Notifications: notifications,
		admins:        make(map[int64]struct{}, len(admins)),
	}
	for _, id := range admins {
		r.admins[id] = struct{}{}
	}
	r.commands = map[string]commandHandler{
		"start":         r.cmdStart,
		"help":          r.cmdHelp,
		"stats":         r.cmdStats,
		"orders":        r.cmdOrders,
		"pending":       r.cmdList(models.StatusPending),
		"approved":      r.cmdList(models.StatusApproved),
		"rejected":      r.cmdList(models.StatusRejected),
		"customers":     r.cmdCustomers,
		"finance":       r.cmdFinance,
		"products":      r.cmdProducts,
		"download":      r.cmdDownload,
		"notifications": r.cmdNotifications,
	}
	r.callbacks = map[string]callbackHandler{
		DataViewStats:        r.cbScreen(r.statsScreen),
		DataViewCustomers:    r.cbScreen(r.customersScreen),
		DataFinancialSummary: r.cbScreen(r.financeScreen),
		DataTopProducts:      r.cbScreen(r.productsScreen),
		DataSearchByID:       r.cbScreen(static(searchPrompt)),
		DataSelectPeriod:     r.cbScreen(static(periodMenu)),
		DataBackToMain:       r.cbScreen(static(mainMenu)),
		DataDownloadStats:    r.cbDownload(r.Console.ExportAll),
		DataDownloadFinance:  r.cbDownload(r.Console.ExportAll),
		DataDownloadProducts: r.cbDownload(r.Console.ExportAll),
	}
	return r
}

func static(f func() screen) func(context.Context) screen {
	return func(context.Context) screen { return f() }
}

// IsAdmin проверяет, что чат входит в список администраторов
func (r *Router) IsAdmin(chatID int64) bool {
	_, ok := r.admins[chatID]
	return ok
}

// HandleMessage обрабатывает команды и числовые сообщения (поиск заказа по ID)
func (r *Router) HandleMessage(ctx context.Context, msg chat.Message) {
	if msg.Command != "" {
		if !r.IsAdmin(msg.ChatID) {
			logger.Warn("command from non-admin", "chat", msg.ChatID, "user", msg.UserID, "command", msg.Command)
			r.send(ctx, msg.ChatID, screen{Text: NotAdminText})
			return
		}
		handler, ok := r.commands[msg.Command]
		if !ok {
			logger.Debug("unknown command", "command", msg.Command)
			return
		}
		logger.Info("admin command", "chat", msg.ChatID, "command", msg.Command)
		handler(ctx, msg)
		return
	}

	if !r.IsAdmin(msg.ChatID) || !validators.CheckOrderID(msg.Text) {
		return
	}
	r.search(ctx, msg.ChatID, models.OrderID(strings.TrimSpace(msg.Text)))
}

// HandleCallback обрабатывает нажатия кнопок меню и решений по заказам
func (r *Router) HandleCallback(ctx context.Context, cb chat.Callback) {
	if !r.IsAdmin(cb.ChatID) {
		logger.Warn("callback from non-admin", "chat", cb.ChatID, "user", cb.UserID, "data", cb.Data)
		r.answer(ctx, cb.ID, NotAdminText)
		return
	}

	if handler, ok := r.callbacks[cb.Data]; ok {
		handler(ctx, cb)
		return
	}

	switch action, arg, _ := chat.ParseActionKey(cb.Data); action {
	case services.ActionApprove, services.ActionReject:
		r.cbDecision(ctx, cb, services.Decision(action), models.OrderID(arg))
		return
	}

	if rest, ok := strings.CutPrefix(cb.Data, prefixDownloadPeriod); ok {
		if period, err := reports.ParsePeriod(rest); err == nil {
			r.cbDownload(func(ctx context.Context) (services.Export, error) {
				return r.Console.ExportPeriod(ctx, period)
			})(ctx, cb)
			return
		}
	}
	if rest, ok := strings.CutPrefix(cb.Data, prefixPeriod); ok {
		if period, err := reports.ParsePeriod(rest); err == nil {
			r.cbScreen(func(ctx context.Context) screen { return r.periodScreen(ctx, period) })(ctx, cb)
			return
		}
	}
	if rest, ok := strings.CutPrefix(cb.Data, prefixView); ok {
		if status, page, ok := parseView(rest); ok {
			r.answer(ctx, cb.ID, "")
			r.listOrders(ctx, cb.ChatID, status, page)
			return
		}
	}

	logger.Debug("unknown callback", "data", cb.Data)
	r.answer(ctx, cb.ID, "")
}

// parseView разбирает "<status>_<page>"
func parseView(s string) (models.Status, int, bool) {
	idx := strings.LastIndex(s, "_")
	if idx < 0 {
		return "", 0, false
	}
	status, ok := models.ParseStatus(s[:idx])
	if !ok {
		return "", 0, false
	}
	page, ok := validators.CheckPage(s[idx+1:])
	if !ok {
		return "", 0, false
	}
	return status, page, true
}

func (r *Router) send(ctx context.Context, chatID int64, s screen) {
	if _, err := r.Messenger.SendText(ctx, chatID, s.Text, s.Keyboard); err != nil {
		logger.Error("failed to send message", "chat", chatID, "error", err)
	}
}

func (r *Router) edit(ctx context.Context, cb chat.Callback, s screen) {
	if err := r.Messenger.EditText(ctx, cb.ChatID, cb.MessageID, s.Text, s.Keyboard); err != nil {
		logger.Error("failed to edit message", "chat", cb.ChatID, "message", cb.MessageID, "error", err)
	}
}

func (r *Router) answer(ctx context.Context, callbackID, text string) {
	if err := r.Messenger.AnswerCallback(ctx, callbackID, text); err != nil {
		logger.Warn("failed to answer callback", "callback", callbackID, "error", err)
	}
}

// cbScreen - нажатие, заменяющее текст сообщения с меню
func (r *Router) cbScreen(build func(context.Context) screen) callbackHandler {
	return func(ctx context.Context, cb chat.Callback) {
		r.answer(ctx, cb.ID, "")
		r.edit(ctx, cb, build(ctx))
	}
}

// cbDownload - нажатие, присылающее файл выгрузки
func (r *Router) cbDownload(export func(context.Context) (services.Export, error)) callbackHandler {
	return func(ctx context.Context, cb chat.Callback) {
		r.answer(ctx, cb.ID, GeneratingText)
		r.sendExport(ctx, cb.ChatID, export)
	}
}

func (r *Router) cbDecision(ctx context.Context, cb chat.Callback, decision services.Decision, id models.OrderID) {
	err := r.Approval.Apply(ctx, services.ApprovalRequest{
		CallbackID: cb.ID,
		ChatID:     cb.ChatID,
		MessageID:  cb.MessageID,
		OrderID:    id,
		Decision:   decision,
	})
	if err != nil && !errors.Is(err, services.ErrApprovalInProgress) {
		logger.Warn("order decision failed", "order", id, "decision", decision, "error", err)
	}
}

func (r *Router) sendExport(ctx context.Context, chatID int64, export func(context.Context) (services.Export, error)) {
	file, err := export(ctx)
	if err != nil {
		logger.Error("failed to build export", "error", err)
		r.send(ctx, chatID, textScreen(ExportFailedText))
		return
	}
	if err := r.Messenger.SendDocument(ctx, chatID, file.Data, file.Filename, ExportCaption); err != nil {
		logger.Error("failed to send export", "file", file.Filename, "error", err)
		r.send(ctx, chatID, textScreen(ExportFailedText))
		return
	}
	r.send(ctx, chatID, textScreen(ExportDoneText))
}

// listOrders присылает карточки страницы заказов статуса и сообщение с навигацией
func (r *Router) listOrders(ctx context.Context, chatID int64, status models.Status, page int) {
	result, err := r.Console.Page(ctx, status, page)
	if err != nil {
		logger.Error("failed to load orders", "status", status, "error", err)
		r.send(ctx, chatID, textScreen(fmt.Sprintf("❌ Ошибка при загрузке заказов со статусом '%s'.", status)))
		return
	}
	if len(result.Orders) == 0 {
		r.send(ctx, chatID, textScreen(fmt.Sprintf("❌ Нет заказов со статусом '%s'.", status)))
		return
	}
	for _, order := range result.Orders {
		if _, err := r.Cards.Send(ctx, chatID, order, services.StatusCaption(order, status), services.DecisionKeyboard(order)); err != nil {
			logger.Error("failed to send order card", "order", order.ID, "error", err)
		}
	}
	r.send(ctx, chatID, pageNavigation(status, result.Page, result.TotalPages))
}

// search присылает карточку заказа по ID
func (r *Router) search(ctx context.Context, chatID int64, id models.OrderID) {
	order, err := r.Console.Search(ctx, id)
	switch {
	case errors.Is(err, client.ErrOrderNotFound):
		r.send(ctx, chatID, textScreen(fmt.Sprintf("❌ Заказ с ID %s не найден.", id)))
		return
	case err != nil:
		logger.Error("order search failed", "order", id, "error", err)
		r.send(ctx, chatID, textScreen(DataFailedText))
		return
	}
	if _, err := r.Cards.Send(ctx, chatID, *order, services.SearchCaption(*order), services.DecisionKeyboard(*order)); err != nil {
		logger.Error("failed to send order card", "order", id, "error", err)
	}
	r.send(ctx, chatID, textScreen(SearchDoneText))
}
