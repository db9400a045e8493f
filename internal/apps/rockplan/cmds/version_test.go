package rockplan

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rockplan/rockplan/internal/versioncheck"
)

// lockedBuffer lets the test read the output while runVersion still runs.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunVersionPrintsBeforeCheckCompletes(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	check := func(ctx context.Context) *versioncheck.Result {
		<-release
		return nil
	}

	out := &lockedBuffer{}
	done := make(chan error, 1)
	go func() { done <- runVersion(t.Context(), out, check) }()

	// The version line must appear while the lookup is still blocked.
	deadline := time.After(2 * time.Second)
	for !strings.Contains(out.String(), "rockplan") {
		select {
		case <-deadline:
			t.Fatal("version line not printed while the release lookup was pending")
		case <-time.After(5 * time.Millisecond):
		}
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("runVersion() error = %v", err)
	}
}

func TestRunVersionNilResult(t *testing.T) {
	t.Parallel()

	out := &lockedBuffer{}
	err := runVersion(t.Context(), out, func(ctx context.Context) *versioncheck.Result { return nil })
	if err != nil {
		t.Fatalf("runVersion() error = %v", err)
	}
	if !strings.Contains(out.String(), "rockplan local") {
		t.Fatalf("output = %q, want the version line", out.String())
	}
}
