// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/invowk/wappcheck/internal/testutil"
	"github.com/invowk/wappcheck/pkg/wapp"
)

// syncBuffer is a bytes.Buffer safe for the watcher goroutine to write while
// the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, buf *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(buf.String(), want) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in output:\n%s", want, buf.String())
}

func TestValidate_Watch(t *testing.T) {
	t.Parallel()

	root := writePackage(t, validManifestJSON)

	var stdout, stderr syncBuffer
	app := NewApp(Dependencies{Config: staticProvider{cfg: testConfig()}, Stdout: &stdout, Stderr: &stderr})
	cmd := NewRootCommand(app)
	cmd.SetArgs([]string{"validate", root, "--watch", "--debounce", "50ms"})

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- cmd.ExecuteContext(ctx) }()

	waitFor(t, &stderr, "Watching 1 package(s)")
	if !strings.Contains(stdout.String(), "1 package(s) valid") {
		t.Fatalf("initial report missing:\n%s", stdout.String())
	}

	segments := append([]string{root}, testutil.AppsDirSegments...)
	manifest := filepath.Join(append(segments, testutil.DemoApp, wapp.ManifestFileName)...)
	if err := os.WriteFile(manifest, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, &stdout, "1 of 1 package(s) invalid")

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("validate --watch returned %v, want nil after cancellation", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("validate --watch did not stop after cancellation")
	}
}

func TestValidate_WatchMissingPath(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing")
	_, _, err := runCLI(t, staticProvider{cfg: testConfig()}, "validate", missing, "--watch")
	if err == nil {
		t.Fatal("expected error when watching a missing path")
	}
	if !strings.Contains(err.Error(), "watch packages") {
		t.Errorf("error = %v, want watch failure", err)
	}
}
