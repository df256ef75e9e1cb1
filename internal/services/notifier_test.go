package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/denmor86/ya-orderbot/internal/chat"
	chatmocks "github.com/denmor86/ya-orderbot/internal/chat/mocks"
	"github.com/denmor86/ya-orderbot/internal/client"
	clientmocks "github.com/denmor86/ya-orderbot/internal/client/mocks"
	"github.com/denmor86/ya-orderbot/internal/metrics"
	"github.com/denmor86/ya-orderbot/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/mock/gomock"
)

const adminChatID = int64(714948319)

func newOrder(id string) models.Order {
	return models.Order{
		ID:        models.OrderID(id),
		Name:      "Ali",
		Phone:     "+998901234567",
		Product:   "Katta gulqand",
		Quantity:  2,
		Status:    models.StatusPending,
		CreatedAt: "2024-05-01T10:15:30Z",
		Receipt:   "/media/receipts/" + id + ".jpg",
	}
}

func TestNewOrderCaption(t *testing.T) {
	expected := "🛒 Новый заказ!\n\n" +
		"🆔 ID: 42\n" +
		"👤 Имя: Ali\n" +
		"📅 Время: 01.05.2024 10:15:30\n" +
		"📱 Телефон: +998901234567\n" +
		"📦 Товар: Katta gulqand\n" +
		"🔢 Количество: 2\n"
	if diff := cmp.Diff(expected, NewOrderCaption(newOrder("42"))); diff != "" {
		t.Errorf("Caption mismatch (-want +got):\n%s", diff)
	}

	order := newOrder("43")
	order.CreatedAt = "yesterday"
	if !strings.Contains(NewOrderCaption(order), "📅 Время: yesterday\n") {
		t.Errorf("Expected raw timestamp for unparsable value")
	}
}

func TestNotificationKeyboard(t *testing.T) {
	expected := chat.Keyboard{
		{{Text: "✅ Одобрить", Data: "approve_42"}},
		{{Text: "❌ Отклонить", Data: "reject_42"}},
	}
	if diff := cmp.Diff(expected, NotificationKeyboard("42")); diff != "" {
		t.Errorf("Keyboard mismatch (-want +got):\n%s", diff)
	}

	resolved := newOrder("42")
	resolved.Status = models.StatusApproved
	if kb := DecisionKeyboard(resolved); kb != nil {
		t.Errorf("Expected no keyboard for resolved order, got %v", kb)
	}
}

func TestAdminNotifier_Notify(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockMessenger := chatmocks.NewMockMessenger(ctrl)
	mockReceipts := clientmocks.NewMockReceiptFetcher(ctrl)

	order := newOrder("42")
	caption := NewOrderCaption(order)
	kb := NotificationKeyboard(order.ID)

	testCases := []struct {
		TestName       string
		SetupMocks     func()
		ExpectedResult string
	}{
		{
			TestName: "Success. Photo with caption #1",
			SetupMocks: func() {
				mockReceipts.EXPECT().FetchReceipt(gomock.Any(), order.Receipt).Return([]byte("JPEG"), nil)
				mockMessenger.EXPECT().SendPhoto(gomock.Any(), adminChatID, []byte("JPEG"), "receipt_42.jpg", caption, kb).Return(10, nil)
			},
			ExpectedResult: metrics.NotifyPhoto,
		},
		{
			TestName: "Success. Receipt fetch failed, text fallback #2",
			SetupMocks: func() {
				mockReceipts.EXPECT().FetchReceipt(gomock.Any(), order.Receipt).Return(nil, client.ErrMediaFetchFailed)
				mockMessenger.EXPECT().SendText(gomock.Any(), adminChatID, caption+"\n"+ReceiptFetchFailedNote, kb).Return(11, nil)
			},
			ExpectedResult: metrics.NotifyTextFallback,
		},
		{
			TestName: "Success. Photo send failed, text fallback #3",
			SetupMocks: func() {
				mockReceipts.EXPECT().FetchReceipt(gomock.Any(), order.Receipt).Return([]byte("JPEG"), nil)
				mockMessenger.EXPECT().SendPhoto(gomock.Any(), adminChatID, gomock.Any(), gomock.Any(), caption, kb).Return(0, errors.New("photo too large"))
				mockMessenger.EXPECT().SendText(gomock.Any(), adminChatID, caption+"\n"+ReceiptSendFailedNote, kb).Return(12, nil)
			},
			ExpectedResult: metrics.NotifyTextFallback,
		},
		{
			TestName: "Error. Chat unavailable #4",
			SetupMocks: func() {
				mockReceipts.EXPECT().FetchReceipt(gomock.Any(), order.Receipt).Return(nil, client.ErrMediaFetchFailed)
				mockMessenger.EXPECT().SendText(gomock.Any(), adminChatID, gomock.Any(), kb).Return(0, errors.New("network down"))
			},
			ExpectedResult: metrics.NotifyFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			tc.SetupMocks()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			cards := NewCardSender(mockMessenger, mockReceipts)
			result, err := cards.Send(ctx, adminChatID, order, caption, kb)
			if result != tc.ExpectedResult {
				t.Errorf("Expected result %q, got %q", tc.ExpectedResult, result)
			}
			if tc.ExpectedResult == metrics.NotifyFailed && !errors.Is(err, chat.ErrDeliveryFailed) {
				t.Errorf("Expected ErrDeliveryFailed, got '%v'", err)
			}
			if tc.ExpectedResult != metrics.NotifyFailed && err != nil {
				t.Errorf("Expected no error, got '%v'", err)
			}
		})
	}
}

func TestAdminNotifier_ReportsDelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockMessenger := chatmocks.NewMockMessenger(ctrl)
	mockReceipts := clientmocks.NewMockReceiptFetcher(ctrl)

	notifier := NewAdminNotifier(NewCardSender(mockMessenger, mockReceipts), adminChatID,
		metrics.NewBotMetricsWithRegisterer(prometheus.NewRegistry()))

	testCases := []struct {
		TestName          string
		SetupMocks        func()
		ExpectedDelivered bool
	}{
		{
			TestName: "Success. Photo delivered #1",
			SetupMocks: func() {
				mockReceipts.EXPECT().FetchReceipt(gomock.Any(), gomock.Any()).Return([]byte("JPEG"), nil)
				mockMessenger.EXPECT().SendPhoto(gomock.Any(), adminChatID, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(10, nil)
			},
			ExpectedDelivered: true,
		},
		{
			TestName: "Success. Text fallback delivered #2",
			SetupMocks: func() {
				mockReceipts.EXPECT().FetchReceipt(gomock.Any(), gomock.Any()).Return(nil, client.ErrMediaFetchFailed)
				mockMessenger.EXPECT().SendText(gomock.Any(), adminChatID, gomock.Any(), gomock.Any()).Return(11, nil)
			},
			ExpectedDelivered: true,
		},
		{
			TestName: "Error. Nothing delivered #3",
			SetupMocks: func() {
				mockReceipts.EXPECT().FetchReceipt(gomock.Any(), gomock.Any()).Return(nil, client.ErrMediaFetchFailed)
				mockMessenger.EXPECT().SendText(gomock.Any(), adminChatID, gomock.Any(), gomock.Any()).Return(0, errors.New("network down"))
			},
			ExpectedDelivered: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			tc.SetupMocks()
			if delivered := notifier.Notify(context.Background(), newOrder("42")); delivered != tc.ExpectedDelivered {
				t.Errorf("Expected delivered %v, got %v", tc.ExpectedDelivered, delivered)
			}
		})
	}
}
