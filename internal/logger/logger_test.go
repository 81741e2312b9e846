package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/aliskhannn/learning-galaxy/internal/config"
)

func TestNew(t *testing.T) {
	cases := []struct {
		name    string
		cfg     config.Config
		enabled zapcore.Level
		wantErr bool
	}{
		{name: "development", cfg: config.Config{Env: "local"}, enabled: zapcore.DebugLevel},
		{name: "production", cfg: config.Config{Env: "production"}, enabled: zapcore.InfoLevel},
		{name: "explicit level", cfg: config.Config{Env: "local", LogLevel: "warn"}, enabled: zapcore.WarnLevel},
		{name: "bad level", cfg: config.Config{LogLevel: "loud"}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := New(&tc.cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if !l.Core().Enabled(tc.enabled) {
				t.Errorf("level %s should be enabled", tc.enabled)
			}
			if tc.enabled > zapcore.DebugLevel && l.Core().Enabled(tc.enabled-1) {
				t.Errorf("level %s should be disabled", tc.enabled-1)
			}
		})
	}
}
