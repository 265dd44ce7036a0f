package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/tagexport/internal/config"
	"github.com/listenupapp/tagexport/internal/export"
	"github.com/listenupapp/tagexport/internal/logger"
	"github.com/listenupapp/tagexport/internal/pipeline"
	"github.com/listenupapp/tagexport/internal/scanner"
	"github.com/listenupapp/tagexport/internal/service"
	"github.com/listenupapp/tagexport/internal/session"
)

// ProvideLibraryService provides the preview and export orchestrator.
func ProvideLibraryService(i do.Injector) (*service.LibraryService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLibraryService(
		do.MustInvoke[*scanner.Enumerator](i),
		do.MustInvoke[*scanner.Sampler](i),
		do.MustInvoke[*pipeline.Pipeline](i),
		do.MustInvoke[*export.Exporter](i),
		do.MustInvoke[*session.Session](i),
		service.OptionsFromConfig(cfg),
		log.Logger,
	), nil
}
