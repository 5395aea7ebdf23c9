// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/invowk/wappcheck/internal/config"
	"github.com/invowk/wappcheck/internal/testutil"
	"github.com/invowk/wappcheck/pkg/wapp"
)

const validManifestJSON = `{
  "app": {"name": "demo", "url": "/katana/demo/", "include": "katana.wapps.demo.urls"},
  "version": "1.0.0",
  "warrior-compatibility": "3.4.0:",
  "warrior-incompatibility": ""
}`

// staticProvider returns a fixed configuration without touching the filesystem.
type staticProvider struct {
	cfg  *config.Config
	path string
	err  error
}

func (p staticProvider) Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error) {
	cfg, _, err := p.Resolve(ctx, opts)
	return cfg, err
}

func (p staticProvider) Resolve(context.Context, config.LoadOptions) (*config.Config, string, error) {
	if p.err != nil {
		return nil, "", p.err
	}
	return p.cfg, p.path, nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Framework.Version = "3.6.0"
	cfg.Framework.KnownVersions = []string{"3.3.0", "3.4.0", "3.5.0", "3.6.0"}
	return cfg
}

// runCLI executes the command tree with args and returns stdout, stderr and
// the returned error.
func runCLI(t *testing.T, provider config.Provider, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{Config: provider, Stdout: &stdout, Stderr: &stderr})
	root := NewRootCommand(app)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// writePackage creates an installation package with a single "demo" app.
// An empty manifest skips wf_config.json.
func writePackage(t *testing.T, manifest string) string {
	t.Helper()

	p := testutil.NewPackage(t, testutil.DemoApp)
	p.WriteFile(t, "demo/urls.py", "urlpatterns = []\n")
	if manifest != "" {
		p.WriteFile(t, wapp.ManifestFileName, manifest)
	}
	return p.Root
}
