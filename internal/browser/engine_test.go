package browser

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/mcp-playwright-server/internal/constants"
)

func TestNewRejectsUnknownEngine(t *testing.T) {
	_, err := New("firefox-over-carrier-pigeon", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown browser engine")
}

func TestNewChromedpDoesNotLaunch(t *testing.T) {
	engine, err := New(constants.EngineChromedp, Options{Headless: true})
	require.NoError(t, err)
	assert.IsType(t, &Chromedp{}, engine)
	assert.NoError(t, engine.Close())
}

func TestNewPlaywrightDoesNotStartDriver(t *testing.T) {
	engine, err := New(constants.EnginePlaywrightGo, Options{Headless: true, DriverDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &Playwright{}, engine)
	assert.NoError(t, engine.Close())
}

func TestPlaywrightMissingDriverFailsPerCall(t *testing.T) {
	engine := NewPlaywright(Options{Headless: true, DriverDir: t.TempDir()})

	for i := 0; i < 2; i++ {
		session, err := engine.Open(context.Background())
		require.Error(t, err)
		assert.Nil(t, session)
		assert.Contains(t, err.Error(), "start playwright")
	}
	assert.Nil(t, engine.pw)
	assert.NoError(t, engine.Close())
}

func TestPlaywrightOpenHonorsCancelledContext(t *testing.T) {
	engine := NewPlaywright(Options{Headless: true, DriverDir: t.TempDir()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Open(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestChromedpOpenFailsForMissingExecutable(t *testing.T) {
	engine := NewChromedp(Options{Headless: true, ExecPath: "/nonexistent/chrome-binary"})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	session, err := engine.Open(ctx)
	require.Error(t, err)
	assert.Nil(t, session)
}

func TestTimeoutMillis(t *testing.T) {
	_, ok := timeoutMillis(context.Background())
	assert.False(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ms, ok := timeoutMillis(ctx)
	require.True(t, ok)
	assert.Greater(t, ms, float64(0))
	assert.LessOrEqual(t, ms, float64(time.Minute.Milliseconds()))
}

// Real browser round trips need a local Chromium and network access.
func TestEnginesEndToEnd(t *testing.T) {
	if os.Getenv("MCP_BROWSER_E2E") != "1" {
		t.Skip("set MCP_BROWSER_E2E=1 to run against a real browser")
	}

	for _, name := range []string{constants.EnginePlaywrightGo, constants.EngineChromedp} {
		t.Run(name, func(t *testing.T) {
			engine, err := New(name, Options{Headless: true})
			require.NoError(t, err)
			t.Cleanup(func() { _ = engine.Close() })

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			session, err := engine.Open(ctx)
			require.NoError(t, err)
			defer func() { _ = session.Close() }()

			require.NoError(t, session.Navigate("https://example.com"))
			data, err := session.Screenshot()
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}
}
