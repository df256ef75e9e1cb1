package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestBotMetrics_Record(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewBotMetricsWithRegisterer(registry)

	m.RecordTick(TickOK, time.Second)
	m.RecordTick(TickFailed, 0)
	m.RecordTick(TickOK, time.Second)
	m.RecordNotification(NotifyTextFallback)
	m.RecordApproval("approved", ApprovalApplied)
	m.SetNotificationsEnabled(true)

	if got := testutil.ToFloat64(m.pollTicks.WithLabelValues(TickOK)); got != 2 {
		t.Errorf("Expected 2 ok ticks, got %v", got)
	}
	if got := testutil.ToFloat64(m.notifications.WithLabelValues(NotifyTextFallback)); got != 1 {
		t.Errorf("Expected 1 fallback notification, got %v", got)
	}
	if got := testutil.ToFloat64(m.approvals.WithLabelValues("approved", ApprovalApplied)); got != 1 {
		t.Errorf("Expected 1 applied approval, got %v", got)
	}
	if got := testutil.ToFloat64(m.enabled); got != 1 {
		t.Errorf("Expected enabled gauge 1, got %v", got)
	}

	// повторная регистрация возвращает существующие коллекторы
	again := NewBotMetricsWithRegisterer(registry)
	if got := testutil.ToFloat64(again.pollTicks.WithLabelValues(TickOK)); got != 2 {
		t.Errorf("Expected shared collector, got %v", got)
	}
}

func TestBotMetrics_NilReceiver(t *testing.T) {
	var m *BotMetrics
	m.RecordTick(TickOK, time.Second)
	m.RecordNotification(NotifyPhoto)
	m.RecordApproval("rejected", ApprovalFailed)
	m.RecordUpdate("message")
	m.RecordPanic()
	m.SetNotificationsEnabled(false)
}
