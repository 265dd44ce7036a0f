// Package di provides dependency injection configuration for tagexport.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/tagexport/internal/config"
	"github.com/listenupapp/tagexport/internal/di/providers"
	"github.com/listenupapp/tagexport/internal/logger"
	"github.com/listenupapp/tagexport/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
// Nothing is built until it is first invoked.
func NewContainer(flags config.Flags, version string) *do.RootScope {
	injector := do.New()

	// Inputs
	do.ProvideValue(injector, flags)
	do.ProvideValue(injector, providers.Version(version))

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Extraction layer
	do.Provide(injector, providers.ProvideTagReader)
	do.Provide(injector, providers.ProvideExtractor)
	do.Provide(injector, providers.ProvidePipeline)
	do.Provide(injector, providers.ProvideEnumerator)
	do.Provide(injector, providers.ProvideSampler)
	do.Provide(injector, providers.ProvideExporter)
	do.Provide(injector, providers.ProvideSession)

	// Business services
	do.Provide(injector, providers.ProvideLibraryService)

	// Server
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Library builds everything the one-shot commands need and returns the
// orchestrator. Config and tag reader errors surface here.
func Library(injector do.Injector) (*service.LibraryService, *logger.Logger, error) {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return nil, nil, err
	}
	log := do.MustInvoke[*logger.Logger](injector)

	library, err := do.Invoke[*service.LibraryService](injector)
	if err != nil {
		return nil, nil, err
	}
	return library, log, nil
}

// Bootstrap initializes the serve stack and returns the HTTP server handle.
// The listener is started by the caller.
func Bootstrap(injector do.Injector) (*providers.HTTPServerHandle, error) {
	if _, _, err := Library(injector); err != nil {
		return nil, err
	}
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)

	return do.Invoke[*providers.HTTPServerHandle](injector)
}
