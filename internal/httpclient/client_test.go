package httpclient

import (
	"testing"
	"time"
)

func TestNew_Timeout(t *testing.T) {
	c := New(5 * time.Second)
	if c.Timeout != 5*time.Second {
		t.Errorf("Timeout = %s, want 5s", c.Timeout)
	}

	c = New(0)
	if c.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s, want default 30s", c.Timeout)
	}
}

func TestEnvDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"unset", "", 30 * time.Second},
		{"integer seconds", "15", 15 * time.Second},
		{"duration string", "2m", 2 * time.Minute},
		{"garbage", "soon", 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("OPENFILES_HTTP_TIMEOUT", tt.value)
			}
			got := envDuration("OPENFILES_HTTP_TIMEOUT", 30*time.Second)
			if got != tt.want {
				t.Errorf("envDuration = %s, want %s", got, tt.want)
			}
		})
	}
}
