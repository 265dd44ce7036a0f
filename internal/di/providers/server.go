package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/listenupapp/tagexport/internal/api"
	"github.com/listenupapp/tagexport/internal/config"
	"github.com/listenupapp/tagexport/internal/logger"
	"github.com/listenupapp/tagexport/internal/service"
	"github.com/listenupapp/tagexport/internal/sse"
)

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.Logger)

	// Start in background
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable. The listener is not
// started by the provider; call ListenAndServe from the serve command.
type HTTPServerHandle struct {
	*http.Server
	api *api.Server
}

// ListenAndServe serves until Shutdown. A clean shutdown returns nil.
func (h *HTTPServerHandle) ListenAndServe() error {
	if err := h.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	defer h.api.Close()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	libraryService := do.MustInvoke[*service.LibraryService](i)
	version := do.MustInvoke[Version](i)

	handler := api.NewServer(libraryService, sseHandle.Manager, cfg.Server, string(version), log.Logger)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Event streams never end on their own; close them so Shutdown only
	// waits on regular requests.
	srv.RegisterOnShutdown(sseHandle.cancel)

	return &HTTPServerHandle{Server: srv, api: handler}, nil
}
