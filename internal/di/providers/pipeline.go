package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/tagexport/internal/config"
	"github.com/listenupapp/tagexport/internal/export"
	"github.com/listenupapp/tagexport/internal/extract"
	"github.com/listenupapp/tagexport/internal/logger"
	"github.com/listenupapp/tagexport/internal/pipeline"
	"github.com/listenupapp/tagexport/internal/scanner"
	"github.com/listenupapp/tagexport/internal/scanner/audio"
	"github.com/listenupapp/tagexport/internal/session"
)

// ProvideTagReader provides the configured tag reading backend.
func ProvideTagReader(i do.Injector) (audio.Reader, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return audio.NewReader(cfg.Library.Reader, audio.AudiometaProber{})
}

// ProvideExtractor provides the per-file metadata extractor.
func ProvideExtractor(i do.Injector) (*extract.Extractor, error) {
	reader := do.MustInvoke[audio.Reader](i)
	log := do.MustInvoke[*logger.Logger](i)

	return extract.New(reader, log.Logger), nil
}

// ProvidePipeline provides the batch pipeline.
func ProvidePipeline(i do.Injector) (*pipeline.Pipeline, error) {
	extractor := do.MustInvoke[*extract.Extractor](i)
	log := do.MustInvoke[*logger.Logger](i)

	return pipeline.New(extractor, log.Logger), nil
}

// ProvideEnumerator provides the candidate file enumerator.
func ProvideEnumerator(i do.Injector) (*scanner.Enumerator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return scanner.NewEnumerator(log.Logger, cfg.Library.Extensions), nil
}

// ProvideSampler provides the preview sampler on the global random source.
func ProvideSampler(_ do.Injector) (*scanner.Sampler, error) {
	return scanner.NewSampler(nil), nil
}

// ProvideExporter provides the JSON exporter.
func ProvideExporter(i do.Injector) (*export.Exporter, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return export.New(log.Logger, cfg.Export.FileName), nil
}

// ProvideSession provides the process-wide session state.
func ProvideSession(_ do.Injector) (*session.Session, error) {
	return session.New(), nil
}
