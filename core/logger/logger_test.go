package logger

import (
	"testing"

	"log/slog"
)

func TestComponentLoggersUsableBeforeInit(t *testing.T) {
	for name, l := range map[string]*slog.Logger{
		"L":          L,
		"DB":         DB,
		"TG":         TG,
		"MIG":        MIG,
		"TWire":      TWire,
		"SEED":       SEED,
		"SVCUsers":   SVCUsers,
		"SVCItems":   SVCItems,
		"SVCButtons": SVCButtons,
	} {
		if l == nil {
			t.Fatalf("%s is nil before InitLogger", name)
		}
	}
	SVCButtons.Info("logger.smoke")
}
