package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	chatmocks "github.com/denmor86/ya-orderbot/internal/chat/mocks"
	"github.com/denmor86/ya-orderbot/internal/client"
	clientmocks "github.com/denmor86/ya-orderbot/internal/client/mocks"
	"github.com/denmor86/ya-orderbot/internal/dedup"
	"github.com/denmor86/ya-orderbot/internal/models"
	"go.uber.org/mock/gomock"
)

func TestApproval_Apply(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockBackend := clientmocks.NewMockOrdersBackend(ctrl)
	mockMessenger := chatmocks.NewMockMessenger(ctrl)

	testCases := []struct {
		TestName         string
		Request          ApprovalRequest
		SetupMocks       func()
		ExpectedError    error
		ExpectedNotified bool
	}{
		{
			TestName: "Success. Approve order #1",
			Request:  ApprovalRequest{CallbackID: "cb1", ChatID: adminChatID, MessageID: 10, OrderID: "42", Decision: DecisionApprove},
			SetupMocks: func() {
				gomock.InOrder(
					mockBackend.EXPECT().SetStatus(gomock.Any(), models.OrderID("42"), models.StatusApproved).Return(nil),
					mockMessenger.EXPECT().AnswerCallback(gomock.Any(), "cb1", "✅ Статус изменён на: approved").Return(nil),
					mockMessenger.EXPECT().RemoveKeyboard(gomock.Any(), adminChatID, 10).Return(nil),
				)
			},
			ExpectedNotified: false,
		},
		{
			TestName: "Success. Reject order, callback answer expired #2",
			Request:  ApprovalRequest{CallbackID: "cb2", ChatID: adminChatID, MessageID: 11, OrderID: "42", Decision: DecisionReject},
			SetupMocks: func() {
				mockBackend.EXPECT().SetStatus(gomock.Any(), models.OrderID("42"), models.StatusRejected).Return(nil)
				mockMessenger.EXPECT().AnswerCallback(gomock.Any(), "cb2", "✅ Статус изменён на: rejected").Return(errors.New("query is too old"))
				mockMessenger.EXPECT().RemoveKeyboard(gomock.Any(), adminChatID, 11).Return(nil)
			},
			ExpectedNotified: false,
		},
		{
			TestName: "Error. Backend unavailable keeps buttons #3",
			Request:  ApprovalRequest{CallbackID: "cb3", ChatID: adminChatID, MessageID: 12, OrderID: "42", Decision: DecisionApprove},
			SetupMocks: func() {
				mockBackend.EXPECT().SetStatus(gomock.Any(), models.OrderID("42"), models.StatusApproved).Return(client.ErrBackendUnavailable)
				mockMessenger.EXPECT().AnswerCallback(gomock.Any(), "cb3", StatusUpdateFailedText).Return(nil)
			},
			ExpectedError:    client.ErrBackendUnavailable,
			ExpectedNotified: true,
		},
		{
			TestName:         "Error. Unknown decision #4",
			Request:          ApprovalRequest{CallbackID: "cb4", OrderID: "42", Decision: "archive"},
			SetupMocks:       func() {},
			ExpectedError:    ErrUnknownDecision,
			ExpectedNotified: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			tc.SetupMocks()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			notified := dedup.NewMemorySet()
			_ = notified.MarkNotified(ctx, tc.Request.OrderID)

			approval := NewApproval(mockBackend, mockMessenger, notified, nil)
			err := approval.Apply(ctx, tc.Request)

			if tc.ExpectedError == nil && err != nil {
				t.Errorf("Expected no error, got '%v'", err)
			}
			if tc.ExpectedError != nil && !errors.Is(err, tc.ExpectedError) {
				t.Errorf("Expected error: '%v', got: '%v'", tc.ExpectedError, err)
			}
			if ok, _ := notified.IsNotified(ctx, tc.Request.OrderID); ok != tc.ExpectedNotified {
				t.Errorf("Expected notified=%v, got %v", tc.ExpectedNotified, ok)
			}
		})
	}
}

func TestApproval_DoublePress(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockBackend := clientmocks.NewMockOrdersBackend(ctrl)
	mockMessenger := chatmocks.NewMockMessenger(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})

	mockBackend.EXPECT().SetStatus(gomock.Any(), models.OrderID("42"), models.StatusApproved).
		DoAndReturn(func(ctx context.Context, id models.OrderID, status models.Status) error {
			close(started)
			<-release
			return nil
		}).Times(1)
	mockMessenger.EXPECT().AnswerCallback(gomock.Any(), "second", ApprovalBusyText).Return(nil)
	mockMessenger.EXPECT().AnswerCallback(gomock.Any(), "first", gomock.Any()).Return(nil)
	mockMessenger.EXPECT().RemoveKeyboard(gomock.Any(), adminChatID, 10).Return(nil)

	approval := NewApproval(mockBackend, mockMessenger, dedup.NewMemorySet(), nil)

	done := make(chan error, 1)
	go func() {
		done <- approval.Apply(context.Background(), ApprovalRequest{
			CallbackID: "first", ChatID: adminChatID, MessageID: 10, OrderID: "42", Decision: DecisionApprove,
		})
	}()
	<-started

	err := approval.Apply(context.Background(), ApprovalRequest{
		CallbackID: "second", ChatID: adminChatID, MessageID: 10, OrderID: "42", Decision: DecisionReject,
	})
	if !errors.Is(err, ErrApprovalInProgress) {
		t.Errorf("Expected ErrApprovalInProgress, got '%v'", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Errorf("Expected first press to succeed, got '%v'", err)
	}
}

func TestDecision_Status(t *testing.T) {
	for decision, expected := range map[Decision]models.Status{
		DecisionApprove: models.StatusApproved,
		DecisionReject:  models.StatusRejected,
	} {
		t.Run(fmt.Sprint(decision), func(t *testing.T) {
			status, err := decision.Status()
			if err != nil || status != expected {
				t.Errorf("Expected %s, got %s (%v)", expected, status, err)
			}
		})
	}
}
