package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/denmor86/ya-orderbot/internal/chat"
	"github.com/denmor86/ya-orderbot/internal/models"
	"github.com/denmor86/ya-orderbot/internal/reports"
)

// Данные кнопок меню
const (
	DataViewStats        = "view_stats"
	DataViewCustomers    = "view_customers"
	DataSearchByID       = "search_by_id"
	DataDownloadStats    = "download_stats"
	DataSelectPeriod     = "select_period"
	DataTopProducts      = "top_products"
	DataFinancialSummary = "financial_summary"
	DataDownloadFinance  = "download_financial"
	DataDownloadProducts = "download_products"
	DataBackToMain       = "back_to_main"

	prefixView           = "view_"
	prefixPeriod         = "period_"
	prefixDownloadPeriod = "download_period_"
)

// Тексты ответов
const (
	NotAdminText         = "Вы не администратор!"
	MainMenuText         = "👋 Добро пожаловать в админ-панель!\nВыберите действие:"
	OrdersMenuText       = "📋 Выберите тип заказов для просмотра:"
	SearchPromptText     = "🔍 Введите ID заказа для поиска:"
	SearchDoneText       = "🔍 Поиск завершен"
	PeriodMenuText       = "Выберите период для просмотра заказов:"
	EmptyPeriodText      = "❌ Нет заказов за выбранный период."
	EndOfListText        = "📄 Конец списка"
	GeneratingText       = "⏳ Генерация файла..."
	ExportCaption        = "📊 Статистика заказов"
	ExportDoneText       = "✅ Файл статистики успешно сгенерирован"
	ExportFailedText     = "❌ Ошибка при генерации файла статистики."
	DataFailedText       = "❌ Ошибка при получении данных."
	StatsFailedText      = "❌ Ошибка при получении статистики"
	NotificationsOnText  = "🔔 Уведомления о новых заказах включены"
	NotificationsOffText = "🔕 Уведомления о новых заказах выключены"
	NotificationsUsage   = "Использование: /notifications [on|off]"
)

// screen - текст сообщения с клавиатурой
type screen struct {
	Text     string
	Keyboard chat.Keyboard
}

type command struct {
	Name        string
	Description string
}

// commands в порядке вывода в /help
var commands = []command{
	{Name: "start", Description: "🚀 Запустить бота и открыть админ-панель"},
	{Name: "help", Description: "❓ Показать список команд"},
	{Name: "stats", Description: "📊 Показать статистику"},
	{Name: "orders", Description: "📋 Показать все заказы"},
	{Name: "pending", Description: "⏳ Показать ожидающие заказы"},
	{Name: "approved", Description: "✅ Показать одобренные заказы"},
	{Name: "rejected", Description: "❌ Показать отклоненные заказы"},
	{Name: "customers", Description: "👥 Показать частых клиентов"},
	{Name: "finance", Description: "💰 Финансовая сводка"},
	{Name: "products", Description: "📦 Статистика по товарам"},
	{Name: "download", Description: "📥 Скачать полный отчет"},
	{Name: "notifications", Description: "🔔 Уведомления о новых заказах [on|off]"},
}

func button(text, data string) chat.Button {
	return chat.Button{Text: text, Data: data}
}

func backRow(data string) []chat.Button {
	return chat.Row(button("🔙 Назад", data))
}

// viewData - данные кнопки просмотра страницы заказов статуса
func viewData(status models.Status, page int) string {
	return prefixView + string(status) + "_" + strconv.Itoa(page)
}

func mainMenu() screen {
	return screen{
		Text: MainMenuText,
		Keyboard: chat.Keyboard{
			chat.Row(button("📊 Статистика", DataViewStats)),
			chat.Row(button("📜 Одобренные", viewData(models.StatusApproved, 1))),
			chat.Row(button("🚫 Отклонённые", viewData(models.StatusRejected, 1))),
			chat.Row(button("⏳ Ожидающие", viewData(models.StatusPending, 1))),
			chat.Row(button("🔍 Поиск по ID", DataSearchByID)),
			chat.Row(button("📱 Частые клиенты", DataViewCustomers)),
			chat.Row(button("📥 Скачать статистику", DataDownloadStats)),
			chat.Row(button("📅 Заказы за период", DataSelectPeriod)),
			chat.Row(button("📈 Топ товары", DataTopProducts)),
			chat.Row(button("💰 Финансовая сводка", DataFinancialSummary)),
		},
	}
}

func helpScreen() screen {
	var b strings.Builder
	b.WriteString("📝 Список доступных команд:\n\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "/%s - %s\n", cmd.Name, cmd.Description)
	}
	return screen{Text: b.String()}
}

func ordersMenu() screen {
	return screen{
		Text: OrdersMenuText,
		Keyboard: chat.Keyboard{
			chat.Row(button("⏳ Ожидающие", viewData(models.StatusPending, 1))),
			chat.Row(button("✅ Одобренные", viewData(models.StatusApproved, 1))),
			chat.Row(button("❌ Отклонённые", viewData(models.StatusRejected, 1))),
			backRow(DataBackToMain),
		},
	}
}

func searchPrompt() screen {
	return screen{Text: SearchPromptText, Keyboard: chat.Keyboard{backRow(DataBackToMain)}}
}

func periodMenu() screen {
	var row []chat.Button
	for _, p := range reports.Periods {
		row = append(row, button("📅 "+p.Label(), prefixPeriod+string(p)))
	}
	return screen{
		Text:     PeriodMenuText,
		Keyboard: chat.Keyboard{row, backRow(DataBackToMain)},
	}
}

// textScreen - сообщение с единственной кнопкой возврата в главное меню
func textScreen(text string) screen {
	return screen{Text: text, Keyboard: chat.Keyboard{backRow(DataBackToMain)}}
}

// pageNavigation - сообщение под карточками страницы заказов
func pageNavigation(status models.Status, page, total int) screen {
	if page <= 1 && page >= total {
		return textScreen(EndOfListText)
	}
	var nav []chat.Button
	if page > 1 {
		nav = append(nav, button("⬅️ Назад", viewData(status, page-1)))
	}
	if page < total {
		nav = append(nav, button("➡️ Вперед", viewData(status, page+1)))
	}
	return screen{
		Text:     fmt.Sprintf("📄 Страница %d из %d", page, total),
		Keyboard: chat.Keyboard{nav, backRow(DataBackToMain)},
	}
}

func notificationsScreen(enabled bool) screen {
	if enabled {
		return screen{Text: NotificationsOnText + "\n" + NotificationsUsage}
	}
	return screen{Text: NotificationsOffText + "\n" + NotificationsUsage}
}
