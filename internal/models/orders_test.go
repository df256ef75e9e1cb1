package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOrderDecode(t *testing.T) {
	testCases := []struct {
		TestName      string
		Payload       string
		ExpectedOrder Order
		ExpectedError bool
	}{
		{
			TestName: "Success. Integer id #1",
			Payload:  `{"id":12,"name":"Ali","phone":"+998901112233","product":"Katta gulqand","quantity":2,"status":"pending","created_at":"2024-05-01T10:00:00Z","receipt":"/media/r.jpg"}`,
			ExpectedOrder: Order{
				ID: "12", Name: "Ali", Phone: "+998901112233", Product: "Katta gulqand", Quantity: 2,
				Status: StatusPending, CreatedAt: "2024-05-01T10:00:00Z", Receipt: "/media/r.jpg",
			},
		},
		{
			TestName:      "Success. String id #2",
			Payload:       `{"id":"a-7","status":"approved"}`,
			ExpectedOrder: Order{ID: "a-7", Status: StatusApproved},
		},
		{
			TestName:      "Success. Null id #3",
			Payload:       `{"id":null}`,
			ExpectedOrder: Order{},
		},
		{
			TestName:      "Error. Object id #4",
			Payload:       `{"id":{"v":1}}`,
			ExpectedError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			var order Order
			err := json.Unmarshal([]byte(tc.Payload), &order)
			if tc.ExpectedError {
				if err == nil {
					t.Errorf("Expected error, got order %+v", order)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got '%v'", err)
			}
			if diff := cmp.Diff(tc.ExpectedOrder, order); diff != "" {
				t.Errorf("Unexpected order (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOrderValidate(t *testing.T) {
	if err := (Order{}).Validate(); err != ErrOrderIDRequired {
		t.Errorf("Expected ErrOrderIDRequired, got '%v'", err)
	}
	if err := (Order{ID: "1"}).Validate(); err != nil {
		t.Errorf("Expected no error, got '%v'", err)
	}
}

func TestFormatTimestamp(t *testing.T) {
	testCases := []struct {
		Input    string
		Expected string
	}{
		{Input: "2024-05-01T10:11:12Z", Expected: "01.05.2024 10:11:12"},
		{Input: "2024-05-01T10:11:12.345678+05:00", Expected: "01.05.2024 10:11:12"},
		{Input: "2024-05-01T10:11:12", Expected: "01.05.2024 10:11:12"},
		{Input: "yesterday", Expected: "yesterday"},
	}
	for _, tc := range testCases {
		if got := FormatTimestamp(tc.Input); got != tc.Expected {
			t.Errorf("FormatTimestamp(%q): expected '%s', got '%s'", tc.Input, tc.Expected, got)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if s, ok := ParseStatus("rejected"); !ok || s != StatusRejected {
		t.Errorf("Expected rejected status, got %q %v", s, ok)
	}
	if _, ok := ParseStatus("shipped"); ok {
		t.Errorf("Expected unknown status")
	}
}
