package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/denmor86/ya-orderbot/internal/client"
	clientmocks "github.com/denmor86/ya-orderbot/internal/client/mocks"
	"github.com/denmor86/ya-orderbot/internal/models"
	"github.com/denmor86/ya-orderbot/internal/reports"
	"go.uber.org/mock/gomock"
)

func ordersRange(n int) []models.Order {
	orders := make([]models.Order, 0, n)
	for i := 1; i <= n; i++ {
		orders = append(orders, newOrder(fmt.Sprint(i)))
	}
	return orders
}

func TestPaginate(t *testing.T) {
	testCases := []struct {
		TestName      string
		Total         int
		Page          int
		ExpectedPage  int
		ExpectedPages int
		ExpectedFirst models.OrderID
		ExpectedLen   int
		HasPrev       bool
		HasNext       bool
	}{
		{TestName: "First page of 12 #1", Total: 12, Page: 1, ExpectedPage: 1, ExpectedPages: 3, ExpectedFirst: "1", ExpectedLen: 5, HasNext: true},
		{TestName: "Middle page #2", Total: 12, Page: 2, ExpectedPage: 2, ExpectedPages: 3, ExpectedFirst: "6", ExpectedLen: 5, HasPrev: true, HasNext: true},
		{TestName: "Last partial page #3", Total: 12, Page: 3, ExpectedPage: 3, ExpectedPages: 3, ExpectedFirst: "11", ExpectedLen: 2, HasPrev: true},
		{TestName: "Page beyond end is clamped #4", Total: 12, Page: 9, ExpectedPage: 3, ExpectedPages: 3, ExpectedFirst: "11", ExpectedLen: 2, HasPrev: true},
		{TestName: "Exactly one page #5", Total: 5, Page: 1, ExpectedPage: 1, ExpectedPages: 1, ExpectedFirst: "1", ExpectedLen: 5},
		{TestName: "Empty list #6", Total: 0, Page: 1, ExpectedPage: 1, ExpectedPages: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			page := Paginate(ordersRange(tc.Total), models.StatusPending, tc.Page)
			if page.Page != tc.ExpectedPage || page.TotalPages != tc.ExpectedPages {
				t.Errorf("Expected page %d/%d, got %d/%d", tc.ExpectedPage, tc.ExpectedPages, page.Page, page.TotalPages)
			}
			if len(page.Orders) != tc.ExpectedLen {
				t.Fatalf("Expected %d orders, got %d", tc.ExpectedLen, len(page.Orders))
			}
			if tc.ExpectedLen > 0 && page.Orders[0].ID != tc.ExpectedFirst {
				t.Errorf("Expected first order %s, got %s", tc.ExpectedFirst, page.Orders[0].ID)
			}
			if page.HasPrev() != tc.HasPrev || page.HasNext() != tc.HasNext {
				t.Errorf("Unexpected navigation prev=%v next=%v", page.HasPrev(), page.HasNext())
			}
		})
	}
}

func TestConsole_Queries(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockBackend := clientmocks.NewMockOrdersBackend(ctrl)

	console := NewConsole(mockBackend, time.UTC)
	console.now = func() time.Time { return time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	approved := models.StatusApproved
	mockBackend.EXPECT().ListOrders(gomock.Any(), &approved).Return(ordersRange(7), nil)
	page, err := console.Page(ctx, models.StatusApproved, 2)
	if err != nil || len(page.Orders) != 2 {
		t.Errorf("Unexpected page %+v (%v)", page, err)
	}

	mockBackend.EXPECT().GetOrder(gomock.Any(), models.OrderID("404")).Return(nil, client.ErrOrderNotFound)
	if _, err := console.Search(ctx, "404"); !errors.Is(err, client.ErrOrderNotFound) {
		t.Errorf("Expected ErrOrderNotFound, got '%v'", err)
	}

	mockBackend.EXPECT().ListOrders(gomock.Any(), nil).Return(nil, client.ErrBackendUnavailable)
	if _, err := console.Statistics(ctx); !errors.Is(err, client.ErrBackendUnavailable) {
		t.Errorf("Expected ErrBackendUnavailable, got '%v'", err)
	}

	mockBackend.EXPECT().ListOrders(gomock.Any(), nil).Return(ordersRange(3), nil)
	export, err := console.ExportPeriod(ctx, reports.PeriodToday)
	if err != nil {
		t.Fatalf("ExportPeriod failed: %v", err)
	}
	if export.Filename != "period_today_20240501_180000.xlsx" || len(export.Data) == 0 {
		t.Errorf("Unexpected export %s (%d bytes)", export.Filename, len(export.Data))
	}
}
