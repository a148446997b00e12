package clipboard

import (
	"errors"
	"testing"

	"github.com/atotto/clipboard"
)

func TestSystemWriteAll(t *testing.T) {
	if !Available() {
		if err := (System{}).WriteAll("x"); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("WriteAll() error = %v, want %v", err, ErrUnavailable)
		}
		t.Skip("no clipboard utility on this host")
	}

	if err := (System{}).WriteAll("Xk3!pq9@Lm2#"); err != nil {
		t.Skipf("clipboard present but not writable here: %v", err)
	}
	got, err := clipboard.ReadAll()
	if err != nil {
		t.Skipf("clipboard not readable here: %v", err)
	}
	if got != "Xk3!pq9@Lm2#" {
		t.Errorf("clipboard = %q, want %q", got, "Xk3!pq9@Lm2#")
	}
}
