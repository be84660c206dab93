package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/sangkips/galleauto-billing/internal/config"
)

func TestReportDate(t *testing.T) {
	now := time.Date(2024, 3, 14, 17, 30, 0, 0, time.Local)
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "2024-03-14", false},
		{"2024-02-29", "2024-02-29", false},
		{"14/03/2024", "", true},
		{"2024-13-01", "", true},
	}
	for _, tt := range tests {
		got, err := reportDate(tt.in, now)
		if tt.wantErr {
			if err == nil {
				t.Errorf("reportDate(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil || got.Format(dateLayout) != tt.want || got.Hour() != 0 {
			t.Errorf("reportDate(%q) = %v, %v; want %s midnight", tt.in, got, err, tt.want)
		}
	}
}

func TestCommandTree(t *testing.T) {
	root := NewRootCommand(&config.Config{})
	for _, path := range [][]string{
		{"migrate"},
		{"report", "daily"},
		{"printer", "list"},
		{"printer", "test"},
		{"invoice", "next-number"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd.Name() != path[len(path)-1] {
			t.Errorf("command %q not registered: %v", strings.Join(path, " "), err)
		}
	}

	daily, _, _ := root.Find([]string{"report", "daily"})
	for _, flag := range []string{"date", "dir", "format"} {
		if daily.Flags().Lookup(flag) == nil {
			t.Errorf("report daily is missing --%s", flag)
		}
	}
}
