package clipboard

import (
	"errors"
	"os/exec"
	"testing"
)

func TestRunFirst(t *testing.T) {
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not installed")
	}

	tests := []struct {
		name    string
		cmds    [][]string
		want    string
		wantErr error
	}{
		{
			name:    "nothing installed",
			cmds:    [][]string{{"genko-missing-reader"}},
			wantErr: ErrUnavailable,
		},
		{
			name: "skips missing commands",
			cmds: [][]string{{"genko-missing-reader"}, {"echo", "-n", "原稿"}},
			want: "原稿",
		},
		{
			name: "first success wins",
			cmds: [][]string{{"echo", "-n", "a"}, {"echo", "-n", "b"}},
			want: "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runFirst(tt.cmds)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("runFirst() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("runFirst() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("runFirst() = %q, want %q", got, tt.want)
			}
		})
	}
}
