package markdown

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/agencykit/cms/domain"
	"github.com/agencykit/cms/internal/logging"
	"github.com/agencykit/cms/pages"
	"github.com/agencykit/cms/pkg/interfaces"
)

var ErrPageServiceRequired = errors.New("markdown: page service is required")

// ImportResult summarizes a batch import. One bad document never aborts the
// batch; its error is recorded and the rest proceed.
type ImportResult struct {
	Created []*pages.Page
	Errors  []error
}

// Importer turns Markdown documents into draft pages.
type Importer struct {
	pages  pages.Service
	parser *Parser
	id     func() uuid.UUID
	logger interfaces.Logger
}

// ImporterOption configures an Importer.
type ImporterOption func(*Importer)

// ImporterWithIDGenerator overrides the block id source.
func ImporterWithIDGenerator(gen func() uuid.UUID) ImporterOption {
	return func(i *Importer) {
		if gen != nil {
			i.id = gen
		}
	}
}

// ImporterWithLogger attaches a logger.
func ImporterWithLogger(logger interfaces.Logger) ImporterOption {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewImporter constructs an importer writing through the page service.
func NewImporter(svc pages.Service, opts ...ImporterOption) (*Importer, error) {
	if svc == nil {
		return nil, ErrPageServiceRequired
	}
	imp := &Importer{
		pages:  svc,
		parser: NewParser(),
		id:     uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp, nil
}

// ImportDocument creates and saves one page from a parsed document. The
// frontmatter title falls back to the file name; a missing status imports as
// draft.
func (i *Importer) ImportDocument(ctx context.Context, doc *Document) (*pages.Page, error) {
	if doc == nil {
		return nil, errors.New("markdown: document is required")
	}

	title := strings.TrimSpace(doc.Meta.Title)
	if title == "" {
		title = fallbackTitle(doc.Path)
	}

	page, err := i.pages.Create(ctx, pages.CreateRequest{
		Title:    title,
		Slug:     doc.Meta.Slug,
		Author:   doc.Meta.Author,
		Category: doc.Meta.Category,
		Tags:     doc.Meta.Tags,
	})
	if err != nil {
		return nil, fmt.Errorf("markdown: create page for %s: %w", doc.Path, err)
	}

	page.Content = i.parser.Blocks(doc.Body, i.id)
	page.Status = domain.Choose(doc.Meta.Status)
	page.Excerpt = doc.Meta.Excerpt
	page.SEO.Title = title
	page.SEO.Description = doc.Meta.Excerpt

	saved, err := i.pages.Save(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("markdown: save page for %s: %w", doc.Path, err)
	}

	i.logger.Info("document imported", "path", doc.Path, "page_id", saved.ID, "blocks", len(saved.Content))
	return saved, nil
}

// ImportSources parses and imports raw documents keyed by path.
func (i *Importer) ImportSources(ctx context.Context, sources map[string][]byte) (*ImportResult, error) {
	result := &ImportResult{}
	for path, source := range sources {
		doc, err := ParseDocument(path, source)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		page, err := i.ImportDocument(ctx, doc)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Created = append(result.Created, page)
	}
	if len(result.Errors) > 0 {
		return result, fmt.Errorf("markdown: %d of %d documents failed", len(result.Errors), len(sources))
	}
	return result, nil
}

// fallbackTitle derives a human title from the file name.
func fallbackTitle(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	name = strings.TrimSpace(name)
	if name == "" {
		return "Untitled"
	}
	words := strings.Fields(name)
	for idx, word := range words {
		words[idx] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
