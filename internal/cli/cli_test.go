package cli

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netcanvas/internal/config"
)

func init() {
	color.NoColor = true
}

func writeConfig(t *testing.T) string {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.IDs = "counter"
	path := filepath.Join(t.TempDir(), "netcanvas.yaml")
	require.NoError(t, cfg.Save(path))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "netcanvas dev\n", out)
}

func TestRunScript(t *testing.T) {
	cfgPath := writeConfig(t)
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "demo.yaml")
	require.NoError(t, os.WriteFile(scriptPath, []byte(`
name: demo
steps:
  - op: click
    device: Router0
  - op: click
    device: Switch0
`), 0644))

	t.Run("prints a report", func(t *testing.T) {
		out, err := execute(t, "--config", cfgPath, "run", scriptPath)
		require.NoError(t, err)
		assert.Contains(t, out, "run demo")
		assert.Contains(t, out, "linked device-1 to device-2")
		assert.Contains(t, out, "2 steps, 2 devices, 1 links, selection idle")
	})

	t.Run("exports the result", func(t *testing.T) {
		exportPath := filepath.Join(dir, "out.yaml")
		out, err := execute(t, "--config", cfgPath, "run", scriptPath, "--export", "yaml", "--out", exportPath)
		require.NoError(t, err)
		assert.Contains(t, out, "wrote "+exportPath)

		data, err := os.ReadFile(exportPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "name: Switch0")
		assert.Contains(t, string(data), "links:")
	})

	t.Run("fails on a bad step", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("steps:\n  - op: submit\n"), 0644))
		out, err := execute(t, "--config", cfgPath, "run", bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "step 1 (submit)")
		assert.NotContains(t, out, "steps,")
	})

	t.Run("missing script", func(t *testing.T) {
		_, err := execute(t, "--config", cfgPath, "run", filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "netcanvas.yaml")

	out, err := execute(t, "config", "init", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	_, err = execute(t, "config", "init", "--path", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "config", "init", "--path", path, "--force")
	assert.NoError(t, err)

	out, err = execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "File: "+path)
	assert.Contains(t, out, "Canvas: 800x600")
}

func TestServe(t *testing.T) {
	cfg, _, err := config.LoadFromPath(writeConfig(t))
	require.NoError(t, err)
	a, err := newApp(cfg, io.Discard)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base := "http://" + ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serveOn(ctx, ln) }()

	resp, err := http.Post(base+"/api/devices/device-1/click", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(base + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "netcanvas_http_requests_total")
	assert.Contains(t, string(body), "netcanvas_editor_events_total")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
