package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseAdminIDs(t *testing.T) {
	testCases := []struct {
		TestName    string
		Input       string
		ExpectedIDs []int64
		ExpectError bool
	}{
		{
			TestName:    "Success. Several ids #1",
			Input:       "714948319, 6094832311,575262312",
			ExpectedIDs: []int64{714948319, 6094832311, 575262312},
		},
		{
			TestName:    "Success. Empty items skipped #2",
			Input:       ",42,,",
			ExpectedIDs: []int64{42},
		},
		{
			TestName:    "Success. Empty list #3",
			Input:       "",
			ExpectedIDs: nil,
		},
		{
			TestName:    "Error. Not a number #4",
			Input:       "42,admin",
			ExpectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			ids, err := ParseAdminIDs(tc.Input)
			if tc.ExpectError {
				if err == nil {
					t.Errorf("Expected error, got ids %v", ids)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got '%v'", err)
			}
			if diff := cmp.Diff(tc.ExpectedIDs, ids); diff != "" {
				t.Errorf("Unexpected ids (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Poller.PollInterval.Seconds() != 10 {
		t.Errorf("Expected 10s poll interval, got %v", cfg.Poller.PollInterval)
	}
	if !cfg.Poller.NotificationsEnabled {
		t.Errorf("Expected notifications enabled by default")
	}
	if cfg.Bot.Location == nil {
		t.Errorf("Expected default location")
	}
}
