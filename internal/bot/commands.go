package bot

import (
	"context"
	"strings"

	"github.com/denmor86/ya-orderbot/internal/chat"
	"github.com/denmor86/ya-orderbot/internal/logger"
	"github.com/denmor86/ya-orderbot/internal/models"
	"github.com/denmor86/ya-orderbot/internal/reports"
)

func (r *Router) cmdStart(ctx context.Context, msg chat.Message) {
	r.send(ctx, msg.ChatID, mainMenu())
}

func (r *Router) cmdHelp(ctx context.Context, msg chat.Message) {
	r.send(ctx, msg.ChatID, helpScreen())
}

func (r *Router) cmdStats(ctx context.Context, msg chat.Message) {
	r.send(ctx, msg.ChatID, r.statsScreen(ctx))
}

func (r *Router) cmdOrders(ctx context.Context, msg chat.Message) {
	r.send(ctx, msg.ChatID, ordersMenu())
}

func (r *Router) cmdList(status models.Status) commandHandler {
	return func(ctx context.Context, msg chat.Message) {
		r.listOrders(ctx, msg.ChatID, status, 1)
	}
}

func (r *Router) cmdCustomers(ctx context.Context, msg chat.Message) {
	r.send(ctx, msg.ChatID, r.customersScreen(ctx))
}

func (r *Router) cmdFinance(ctx context.Context, msg chat.Message) {
	r.send(ctx, msg.ChatID, r.financeScreen(ctx))
}

func (r *Router) cmdProducts(ctx context.Context, msg chat.Message) {
	r.send(ctx, msg.ChatID, r.productsScreen(ctx))
}

func (r *Router) cmdDownload(ctx context.Context, msg chat.Message) {
	r.send(ctx, msg.ChatID, screen{Text: GeneratingText})
	r.sendExport(ctx, msg.ChatID, r.Console.ExportAll)
}

// cmdNotifications показывает или переключает уведомления о новых заказах
func (r *Router) cmdNotifications(ctx context.Context, msg chat.Message) {
	switch strings.ToLower(msg.Args) {
	case "":
	case "on":
		r.Notifications.Set(true)
		logger.Info("notifications enabled", "chat", msg.ChatID, "user", msg.UserID)
	case "off":
		r.Notifications.Set(false)
		logger.Info("notifications disabled", "chat", msg.ChatID, "user", msg.UserID)
	default:
		r.send(ctx, msg.ChatID, screen{Text: NotificationsUsage})
		return
	}
	r.send(ctx, msg.ChatID, notificationsScreen(r.Notifications.Enabled()))
}

func (r *Router) statsScreen(ctx context.Context) screen {
	stats, err := r.Console.Statistics(ctx)
	if err != nil {
		logger.Error("failed to compute statistics", "error", err)
		return textScreen(StatsFailedText)
	}
	return textScreen(reports.RenderStatistics(stats))
}

func (r *Router) customersScreen(ctx context.Context) screen {
	stats, err := r.Console.Statistics(ctx)
	if err != nil {
		logger.Error("failed to compute customers", "error", err)
		return textScreen(DataFailedText)
	}
	return textScreen(reports.RenderCustomers(stats))
}

func (r *Router) financeScreen(ctx context.Context) screen {
	finance, err := r.Console.Finance(ctx)
	if err != nil {
		logger.Error("failed to compute finance", "error", err)
		return textScreen(DataFailedText)
	}
	return screen{
		Text: reports.RenderFinance(finance),
		Keyboard: chat.Keyboard{
			chat.Row(button("📥 Скачать детали", DataDownloadFinance)),
			backRow(DataBackToMain),
		},
	}
}

func (r *Router) productsScreen(ctx context.Context) screen {
	products, err := r.Console.Products(ctx)
	if err != nil {
		logger.Error("failed to compute products", "error", err)
		return textScreen(DataFailedText)
	}
	return screen{
		Text: reports.RenderProducts(products),
		Keyboard: chat.Keyboard{
			chat.Row(button("📥 Скачать детали", DataDownloadProducts)),
			backRow(DataBackToMain),
		},
	}
}

func (r *Router) periodScreen(ctx context.Context, period reports.Period) screen {
	back := backRow(DataSelectPeriod)
	report, err := r.Console.Period(ctx, period)
	if err != nil {
		logger.Error("failed to compute period", "period", period, "error", err)
		return screen{Text: DataFailedText, Keyboard: chat.Keyboard{back}}
	}
	if len(report.Orders) == 0 {
		return screen{Text: EmptyPeriodText, Keyboard: chat.Keyboard{back}}
	}
	return screen{
		Text: reports.RenderPeriod(report),
		Keyboard: chat.Keyboard{
			chat.Row(button("📥 Скачать детали", prefixDownloadPeriod+string(period))),
			back,
		},
	}
}
