package metrics_test

import (
	"testing"

	"github.com/yeisme/photovault/pkg/configs"
	"github.com/yeisme/photovault/pkg/metrics"
)

func TestInitMetricsDisabledIsNoop(t *testing.T) {
	if err := metrics.InitMetrics(configs.MetricsConfig{Enabled: false}); err != nil {
		t.Fatalf("disabled init: %v", err)
	}
}

// 注册表为包级单例，启用路径在单个进程里只跑一次.
func TestInitMetricsEnabledRegisters(t *testing.T) {
	cfg := configs.MetricsConfig{Enabled: true, RuntimeMetrics: true}
	if err := metrics.InitMetrics(cfg); err != nil {
		t.Fatalf("enabled init: %v", err)
	}

	metrics.RequestCounter.WithLabelValues("GET", "/api/v1/photos").Inc()
	metrics.ActiveConnections.Set(1)
}
