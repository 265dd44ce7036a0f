package di

import (
	"bufio"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/tagexport/internal/config"
	"github.com/listenupapp/tagexport/internal/di/providers"
	"github.com/listenupapp/tagexport/internal/session"
)

func testFlags(t *testing.T) config.Flags {
	t.Helper()
	dir := t.TempDir()
	return config.Flags{
		Env:        "development",
		EnvFile:    filepath.Join(dir, "missing.env"),
		LogLevel:   "error",
		LogFormat:  "json",
		LibraryDir: dir,
		Reader:     config.ReaderNative,
		Host:       "127.0.0.1",
		Port:       "0",
	}
}

func TestLibrary_BuildsService(t *testing.T) {
	injector := NewContainer(testFlags(t), "test")
	defer injector.Shutdown()

	library, log, err := Library(injector)
	require.NoError(t, err)
	require.NotNil(t, library)
	require.NotNil(t, log)

	// The service and the container share one session.
	sess := do.MustInvoke[*session.Session](injector)
	assert.Same(t, sess, library.Session())
}

func TestLibrary_ConfigError(t *testing.T) {
	flags := testFlags(t)
	flags.Reader = "bogus"

	injector := NewContainer(flags, "test")
	defer injector.Shutdown()

	_, _, err := Library(injector)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid tag reader")
}

func TestBootstrap_BuildsServer(t *testing.T) {
	injector := NewContainer(testFlags(t), "v1.2.3")

	srv, err := Bootstrap(injector)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", srv.Addr)
	assert.NotNil(t, srv.Handler)

	version := do.MustInvoke[providers.Version](injector)
	assert.Equal(t, providers.Version("v1.2.3"), version)

	injector.Shutdown()
}

func TestBootstrap_ShutdownClosesEventStreams(t *testing.T) {
	injector := NewContainer(testFlags(t), "test")

	srv, err := Bootstrap(injector)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/v1/events")
	require.NoError(t, err)
	defer resp.Body.Close()

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "event: connected\n", line)

	start := time.Now()
	injector.Shutdown()
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.ErrorIs(t, <-served, http.ErrServerClosed)
}
