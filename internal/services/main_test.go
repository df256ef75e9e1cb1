package services

import (
	"os"
	"testing"

	"github.com/denmor86/ya-orderbot/internal/config"
	"github.com/denmor86/ya-orderbot/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.DefaultConfig().Server.LogLevel); err != nil {
		logger.Panic(err)
	}
	os.Exit(m.Run())
}
