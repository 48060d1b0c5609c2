package utils

import (
	"net/http/httptest"
	"testing"
)

func TestParseHostNoPort(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"10.0.0.1:8080", "10.0.0.1"},
		{"[::1]:80", "::1"},
		{"::1", "::1"},
		{"192.168.1.2", "192.168.1.2"},
	}
	for _, tt := range tests {
		if got := ParseHostNoPort(tt.in); got != tt.want {
			t.Errorf("ParseHostNoPort(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		realIP     string
		trustProxy bool
		want       string
	}{
		{"remote addr only", "", "", false, "192.0.2.1"},
		{"proxy headers ignored when untrusted", "10.0.0.5", "", false, "192.0.2.1"},
		{"first forwarded for", "10.0.0.5, 10.0.0.6", "", true, "10.0.0.5"},
		{"real ip", "", "10.0.0.7", true, "10.0.0.7"},
		{"trusted without headers", "", "", true, "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", "192.168.1.10", " ", "garbage", "::1"})

	if m.IsEmpty() {
		t.Fatal("IsEmpty() = true, want false")
	}

	tests := []struct {
		ip   string
		want bool
	}{
		{"10.1.2.3", true},
		{"192.168.1.10", true},
		{"192.168.1.11", false},
		{"::1", true},
		{"::ffff:10.0.0.1", true},
		{"not-an-ip", false},
	}
	for _, tt := range tests {
		if got := m.Allow(tt.ip); got != tt.want {
			t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}

	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("NewIPMatcher(nil).IsEmpty() = false")
	}
}
