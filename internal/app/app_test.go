package app

import (
	"context"
	"os"
	"testing"

	"github.com/denmor86/ya-orderbot/internal/config"
	"github.com/denmor86/ya-orderbot/internal/dedup"
	"github.com/denmor86/ya-orderbot/internal/logger"
	"github.com/google/go-cmp/cmp"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.DefaultConfig().Server.LogLevel); err != nil {
		logger.Panic(err)
	}
	os.Exit(m.Run())
}

func TestAdmins(t *testing.T) {
	testCases := []struct {
		TestName string
		Config   config.BotConfig
		Expected []int64
	}{
		{TestName: "Success. Admins and notification chat #1", Config: config.BotConfig{AdminIDs: []int64{1, 2}, AdminChatID: -100}, Expected: []int64{1, 2, -100}},
		{TestName: "Success. No notification chat #2", Config: config.BotConfig{AdminIDs: []int64{1}}, Expected: []int64{1}},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			if diff := cmp.Diff(tc.Expected, Admins(tc.Config)); diff != "" {
				t.Errorf("Admins mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewStore_Memory(t *testing.T) {
	store, err := NewStore(context.Background(), "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := store.(*dedup.MemorySet); !ok {
		t.Errorf("Expected memory store, got %T", store)
	}
}
