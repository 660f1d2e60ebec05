package main

import (
	"testing"
	"time"
)

func TestServeConfig(t *testing.T) {
	defer func(addr string, idle time.Duration, fps int) {
		flagSSHAddr, flagIdle, flagFPS = addr, idle, fps
	}(flagSSHAddr, flagIdle, flagFPS)

	tests := []struct {
		name    string
		idle    time.Duration
		fps     int
		wantErr bool
	}{
		{"valid", 5 * time.Minute, 30, false},
		{"zero idle", 0, 30, true},
		{"zero fps", time.Minute, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flagSSHAddr, flagIdle, flagFPS = ":2222", tt.idle, tt.fps
			cfg, err := serveConfig()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Address != ":2222" || cfg.TickRate != tt.fps || cfg.IdleTimeout != tt.idle {
				t.Errorf("expected flags copied into config, got %+v", cfg)
			}
		})
	}
}
