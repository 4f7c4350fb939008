package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSpinnerBasic(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Testing...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
	// Non-terminal writers get no animation frames.
	if buf.Len() != 0 {
		t.Errorf("unexpected output on non-terminal writer: %q", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, &bytes.Buffer{}, "Testing with context...")
	s.Start()

	// Cancel the context
	cancel()

	// Give goroutine time to notice cancellation
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, &bytes.Buffer{}, "Testing with timeout...")
	s.Start()

	// Wait for timeout
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(&bytes.Buffer{}, "Testing idempotent stop...")
	s.Start()

	// Stop multiple times should not panic
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinner(&bytes.Buffer{}, "Never started")
	s.Stop()
}

func TestSpinnerStopWithMessage(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Testing success...")
	s.Start()
	s.StopWithSuccess("Done!")
	if !strings.Contains(buf.String(), iconSuccess+" Done!") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	s = newSpinner(&buf, "Testing error...")
	s.Start()
	s.StopWithError("Failed!")
	if !strings.Contains(buf.String(), iconError+" Failed!") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWithSpinner(t *testing.T) {
	var buf bytes.Buffer
	n, err := withSpinner(context.Background(), &buf, "Counting", func() (int, string, error) {
		return 42, "Counted 42", nil
	})
	if err != nil || n != 42 {
		t.Fatalf("withSpinner() = %d, %v", n, err)
	}
	if !strings.Contains(buf.String(), "Counted 42") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	boom := errors.New("boom")
	_, err = withSpinner(context.Background(), &buf, "Failing", func() (int, string, error) {
		return 0, "", boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if !strings.Contains(buf.String(), iconError+" Failing") {
		t.Errorf("output = %q", buf.String())
	}
}
