package cms

import (
	"time"

	"github.com/google/uuid"

	"github.com/agencykit/cms/blocks"
	"github.com/agencykit/cms/internal/logging"
	"github.com/agencykit/cms/internal/logging/gologger"
	"github.com/agencykit/cms/internal/markdown"
	"github.com/agencykit/cms/media"
	"github.com/agencykit/cms/pages"
	"github.com/agencykit/cms/pkg/interfaces"
	"github.com/agencykit/cms/sections"
	"github.com/agencykit/cms/seo"
)

// PageService exports the page service contract for consumers of the cms
// package.
type PageService = pages.Service

// Module is the top level editing runtime. It wires the page service,
// template registry, media library, SEO analyzer, and markdown importer
// behind one constructor so hosts only inject their own store and
// collaborators.
type Module struct {
	cfg       Config
	providers interfaces.LoggerProvider

	pages     pages.Service
	templates *sections.Registry
	renderer  *blocks.Renderer
	library   *media.Library
	uploader  *media.Uploader
	analyzer  *seo.Analyzer
	importer  *markdown.Importer
	notifier  interfaces.Notifier
}

// Option overrides a collaborator at construction time.
type Option func(*moduleDeps)

type moduleDeps struct {
	provider interfaces.LoggerProvider
	store    pages.Store
	notifier interfaces.Notifier
	blobs    interfaces.BlobStore
	probe    interfaces.PerformanceProbe
	id       func() uuid.UUID
	now      func() time.Time
}

// WithLoggerProvider injects a custom logger provider, bypassing the
// built-in go-logger wiring.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(d *moduleDeps) {
		d.provider = provider
	}
}

// WithStore injects the site document store. Defaults to an in-memory store.
func WithStore(store pages.Store) Option {
	return func(d *moduleDeps) {
		d.store = store
	}
}

// WithNotifier injects the publish notifier.
func WithNotifier(notifier interfaces.Notifier) Option {
	return func(d *moduleDeps) {
		d.notifier = notifier
	}
}

// WithBlobStore injects the backing store for media uploads. Without one the
// media library still works but uploads are unavailable.
func WithBlobStore(store interfaces.BlobStore) Option {
	return func(d *moduleDeps) {
		d.blobs = store
	}
}

// WithPerformanceProbe injects the probe used by SEO analysis.
func WithPerformanceProbe(probe interfaces.PerformanceProbe) Option {
	return func(d *moduleDeps) {
		d.probe = probe
	}
}

// WithIDGenerator overrides the id source used across subsystems.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(d *moduleDeps) {
		d.id = gen
	}
}

// WithClock overrides the timestamp source used across subsystems.
func WithClock(now func() time.Time) Option {
	return func(d *moduleDeps) {
		d.now = now
	}
}

// New constructs the CMS module. A zero Config means DefaultConfig.
func New(cfg Config, opts ...Option) (*Module, error) {
	if cfg.isZero() {
		cfg = DefaultConfig()
	} else if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deps := &moduleDeps{}
	for _, opt := range opts {
		opt(deps)
	}

	provider := deps.provider
	if provider == nil {
		built, err := gologger.NewProvider(cfg.loggerConfig())
		if err != nil {
			return nil, err
		}
		provider = built
	}

	store := deps.store
	if store == nil {
		store = pages.NewMemoryStore(nil)
	}

	pageOpts := []pages.Option{pages.WithLogger(logging.PagesLogger(provider))}
	if deps.id != nil {
		pageOpts = append(pageOpts, pages.WithIDGenerator(deps.id))
	}
	if deps.now != nil {
		pageOpts = append(pageOpts, pages.WithClock(deps.now))
	}
	if cfg.Features.Notifications && deps.notifier != nil {
		pageOpts = append(pageOpts, pages.WithNotifier(deps.notifier))
	}

	pageService, err := pages.NewService(store, pageOpts...)
	if err != nil {
		return nil, err
	}

	registry := sections.NewRegistry(sections.RegistryWithLogger(logging.SectionsLogger(provider)))
	if err := sections.SeedTemplates(registry); err != nil {
		return nil, err
	}

	m := &Module{
		cfg:       cfg,
		providers: provider,
		pages:     pageService,
		templates: registry,
		renderer:  blocks.NewRenderer(),
		notifier:  deps.notifier,
	}

	if cfg.Features.MediaLibrary {
		m.library = media.NewLibrary(nil, media.LibraryWithLogger(logging.MediaLogger(provider)))
		if deps.blobs != nil {
			uploadOpts := []media.UploaderOption{
				media.WithConstraints(cfg.uploadConstraints()),
				media.WithLogger(logging.MediaLogger(provider)),
			}
			if deps.id != nil {
				uploadOpts = append(uploadOpts, media.WithIDGenerator(deps.id))
			}
			if deps.now != nil {
				uploadOpts = append(uploadOpts, media.WithClock(deps.now))
			}
			m.uploader = media.NewUploader(deps.blobs, m.library, uploadOpts...)
		}
	}

	if cfg.Features.SEOAnalysis {
		analyzerOpts := []seo.AnalyzerOption{seo.WithLogger(logging.SEOLogger(provider))}
		if deps.probe != nil {
			analyzerOpts = append(analyzerOpts, seo.WithProbe(deps.probe))
		}
		m.analyzer = seo.NewAnalyzer(analyzerOpts...)
	}

	if cfg.Features.Markdown {
		importerOpts := []markdown.ImporterOption{markdown.ImporterWithLogger(logging.PagesLogger(provider))}
		if deps.id != nil {
			importerOpts = append(importerOpts, markdown.ImporterWithIDGenerator(deps.id))
		}
		importer, err := markdown.NewImporter(pageService, importerOpts...)
		if err != nil {
			return nil, err
		}
		m.importer = importer
	}

	return m, nil
}

// Pages returns the page service.
func (m *Module) Pages() PageService {
	return m.pages
}

// Templates returns the template registry, seeded with the builtins.
func (m *Module) Templates() *sections.Registry {
	return m.templates
}

// Renderer returns the block preview renderer.
func (m *Module) Renderer() *blocks.Renderer {
	return m.renderer
}

// Media returns the media library, or nil when the feature is disabled.
func (m *Module) Media() *media.Library {
	return m.library
}

// Uploader returns the media uploader, or nil when no blob store was
// injected or the media feature is disabled.
func (m *Module) Uploader() *media.Uploader {
	return m.uploader
}

// Analyzer returns the SEO analyzer, or nil when the feature is disabled.
func (m *Module) Analyzer() *seo.Analyzer {
	return m.analyzer
}

// Importer returns the markdown importer, or nil when the feature is
// disabled.
func (m *Module) Importer() *markdown.Importer {
	return m.importer
}

// Logger returns a named logger from the module's provider.
func (m *Module) Logger(name string) interfaces.Logger {
	return logging.ModuleLogger(m.providers, name)
}
