package pages

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/agencykit/cms/blocks"
	"github.com/agencykit/cms/domain"
	"github.com/agencykit/cms/internal/logging"
	"github.com/agencykit/cms/pkg/interfaces"
	"github.com/agencykit/cms/sections"
	"github.com/agencykit/cms/seo"
)

// Store persists the whole-site document. There is no per-page write: every
// save serializes the full document so unrelated domains round-trip intact.
type Store interface {
	Load(ctx context.Context) (*SiteData, error)
	Save(ctx context.Context, data *SiteData) error
}

// CreateRequest carries the inputs for a new page. Slug is optional and is
// derived from the title when absent.
type CreateRequest struct {
	Title    string
	Slug     string
	Author   string
	Category string
	Tags     []string
}

// Query filters the page list. Zero-value fields are ignored; populated
// fields combine with AND.
type Query struct {
	Search   string
	Status   domain.Status
	Category string
}

// PublishRequest marks a page published and optionally notifies a recipient.
type PublishRequest struct {
	PageID   uuid.UUID
	NotifyTo string
}

// Service manages the page collection and its persistence.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Page, error)
	Get(ctx context.Context, id uuid.UUID) (*Page, error)
	GetBySlug(ctx context.Context, pageSlug string) (*Page, error)
	List(ctx context.Context) ([]*Page, error)
	Filter(ctx context.Context, q Query) ([]*Page, error)
	Save(ctx context.Context, page *Page) (*Page, error)
	Duplicate(ctx context.Context, id uuid.UUID) (*Page, error)
	ApplyTemplate(ctx context.Context, id uuid.UUID, tpl sections.Template) (*Page, error)
	Publish(ctx context.Context, req PublishRequest) (*Page, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	mu       sync.Mutex
	store    Store
	site     *SiteData
	loaded   bool
	notifier interfaces.Notifier
	id       func() uuid.UUID
	now      func() time.Time
	logger   interfaces.Logger
}

// Option configures the service at construction time.
type Option func(*service)

// WithIDGenerator overrides the page id source.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(s *service) {
		if gen != nil {
			s.id = gen
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithNotifier attaches a notifier used on publish. Notification failures are
// logged, never fatal.
func WithNotifier(notifier interfaces.Notifier) Option {
	return func(s *service) {
		s.notifier = notifier
	}
}

// WithLogger attaches a logger to the service.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs a page service backed by the given store. The site
// document is loaded lazily on first use and cached; the service is the
// single owner of the in-memory page collection after that.
func NewService(store Store, opts ...Option) (Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	s := &service{
		store:  store,
		id:     uuid.New,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ensureLoaded fetches the site document on first use. Callers hold s.mu.
func (s *service) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	doc, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("pages: load site document: %w", err)
	}
	if doc == nil {
		doc = &SiteData{}
	}
	s.site = doc
	s.loaded = true
	s.logger.Debug("site document loaded", "pages", len(doc.Pages))
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Page, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	pageSlug, err := s.normalizeSlug(req.Slug, title)
	if err != nil {
		return nil, err
	}

	now := s.now()
	page := &Page{
		ID:        s.id(),
		Title:     title,
		Slug:      s.uniqueSlug(pageSlug, uuid.Nil),
		Content:   []blocks.Block{},
		Sections:  []sections.Section{},
		SEO:       seo.Default(),
		Status:    domain.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
		Author:    req.Author,
		Category:  req.Category,
	}
	if req.Tags != nil {
		page.Tags = append([]string(nil), req.Tags...)
	}

	s.site.Pages = append(s.site.Pages, page)
	s.logger.Info("page created", "page_id", page.ID, "slug", page.Slug)
	return page.Clone(), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	page := s.find(id)
	if page == nil {
		return nil, &NotFoundError{ID: id}
	}
	return page.Clone(), nil
}

func (s *service) GetBySlug(ctx context.Context, pageSlug string) (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	for _, page := range s.site.Pages {
		if page.Slug == pageSlug {
			return page.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: slug %q", ErrPageNotFound, pageSlug)
}

func (s *service) List(ctx context.Context) ([]*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return ClonePages(s.site.Pages), nil
}

func (s *service) Filter(ctx context.Context, q Query) ([]*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]*Page, 0, len(s.site.Pages))
	for _, page := range s.site.Pages {
		if needle != "" && !matchesSearch(page, needle) {
			continue
		}
		if q.Status != "" && page.Status != q.Status {
			continue
		}
		if q.Category != "" && page.Category != q.Category {
			continue
		}
		out = append(out, page.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// Save upserts the page into the collection and persists the whole site
// document. On persistence failure the in-memory edit is kept; the caller
// retries the save, local state stays the source of truth. UpdatedAt is only
// refreshed when the save reaches the store.
func (s *service) Save(ctx context.Context, page *Page) (*Page, error) {
	if page == nil {
		return nil, ErrPageRequired
	}
	if page.ID == uuid.Nil {
		return nil, ErrPageIDRequired
	}
	if strings.TrimSpace(page.Title) == "" {
		return nil, ErrTitleRequired
	}
	if err := page.SEO.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSEOInvalid, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	candidate := page.Clone()
	pageSlug, err := s.normalizeSlug(candidate.Slug, candidate.Title)
	if err != nil {
		return nil, err
	}
	candidate.Slug = s.uniqueSlug(pageSlug, candidate.ID)

	stamped := candidate.Clone()
	stamped.UpdatedAt = s.now()

	s.upsert(stamped)
	if err := s.persist(ctx); err != nil {
		// Keep the edit in memory but revert the timestamp so a later
		// successful save is the one that stamps it.
		s.upsert(candidate)
		s.logger.Error("page save failed", "page_id", page.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	s.logger.Info("page saved", "page_id", stamped.ID, "slug", stamped.Slug)
	return stamped.Clone(), nil
}

func (s *service) Duplicate(ctx context.Context, id uuid.UUID) (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	source := s.find(id)
	if source == nil {
		return nil, &NotFoundError{ID: id}
	}

	now := s.now()
	duplicate := source.Clone()
	duplicate.ID = s.id()
	duplicate.Title = source.Title + " (Copy)"
	duplicate.Slug = s.uniqueSlug(source.Slug+"-copy", duplicate.ID)
	duplicate.Status = domain.StatusDraft
	duplicate.CreatedAt = now
	duplicate.UpdatedAt = now

	s.site.Pages = append(s.site.Pages, duplicate)
	s.logger.Info("page duplicated", "source_id", id, "page_id", duplicate.ID)
	return duplicate.Clone(), nil
}

// ApplyTemplate replaces the page's content and sections with deep copies of
// the template's and shallow-merges the template's SEO patch over the page's
// metadata. The change is in-memory; a subsequent Save persists it.
func (s *service) ApplyTemplate(ctx context.Context, id uuid.UUID, tpl sections.Template) (*Page, error) {
	if err := tpl.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	page := s.find(id)
	if page == nil {
		return nil, &NotFoundError{ID: id}
	}

	applied := tpl.Clone()
	page.Content = applied.Content
	if page.Content == nil {
		page.Content = []blocks.Block{}
	}
	page.Sections = applied.Sections
	if page.Sections == nil {
		page.Sections = []sections.Section{}
	}
	page.SEO = seo.Merge(page.SEO, applied.SEO)

	s.logger.Info("template applied", "page_id", id, "template_id", tpl.ID)
	return page.Clone(), nil
}

func (s *service) Publish(ctx context.Context, req PublishRequest) (*Page, error) {
	s.mu.Lock()
	if err := s.ensureLoaded(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	page := s.find(req.PageID)
	if page == nil {
		s.mu.Unlock()
		return nil, &NotFoundError{ID: req.PageID}
	}

	previousStatus := page.Status
	previousUpdated := page.UpdatedAt
	page.Status = domain.StatusPublished
	page.UpdatedAt = s.now()
	if err := s.persist(ctx); err != nil {
		page.Status = previousStatus
		page.UpdatedAt = previousUpdated
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	published := page.Clone()
	s.mu.Unlock()

	if s.notifier != nil && req.NotifyTo != "" {
		receipt, err := s.notifier.Send(ctx, interfaces.Notification{
			To:       req.NotifyTo,
			Subject:  fmt.Sprintf("Page published: %s", published.Title),
			HTMLBody: fmt.Sprintf("<p>The page <strong>%s</strong> is now live at /%s.</p>", published.Title, published.Slug),
		})
		if err != nil {
			s.logger.Warn("publish notification failed", "page_id", published.ID, "error", err)
		} else {
			s.logger.Debug("publish notification sent", "page_id", published.ID, "receipt", receipt.ID)
		}
	}

	s.logger.Info("page published", "page_id", published.ID, "slug", published.Slug)
	return published, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return false, err
	}
	idx := -1
	for i, page := range s.site.Pages {
		if page.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	removed := s.site.Pages[idx]
	s.site.Pages = append(s.site.Pages[:idx], s.site.Pages[idx+1:]...)
	if err := s.persist(ctx); err != nil {
		s.logger.Error("page delete persist failed", "page_id", id, "error", err)
		return true, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	s.logger.Info("page deleted", "page_id", removed.ID, "slug", removed.Slug)
	return true, nil
}

// persist writes the whole site document. Callers hold s.mu.
func (s *service) persist(ctx context.Context) error {
	return s.store.Save(ctx, s.site.Clone())
}

// find returns the live page with the given id. Callers hold s.mu and must
// clone before returning anything to callers outside the service.
func (s *service) find(id uuid.UUID) *Page {
	for _, page := range s.site.Pages {
		if page.ID == id {
			return page
		}
	}
	return nil
}

// upsert replaces the page with a matching id or appends it. Callers hold
// s.mu.
func (s *service) upsert(page *Page) {
	for i, existing := range s.site.Pages {
		if existing.ID == page.ID {
			s.site.Pages[i] = page
			return
		}
	}
	s.site.Pages = append(s.site.Pages, page)
}

// normalizeSlug runs the raw slug (or the title when the slug is blank)
// through the normalizer.
func (s *service) normalizeSlug(raw, title string) (string, error) {
	source := strings.TrimSpace(raw)
	if source == "" {
		source = title
	}
	normalized, err := slug.Normalize(source)
	if err != nil || normalized == "" {
		return "", fmt.Errorf("pages: invalid slug %q: %w", source, err)
	}
	return normalized, nil
}

// uniqueSlug suffixes the slug with a counter until no other page claims it.
// Callers hold s.mu.
func (s *service) uniqueSlug(base string, selfID uuid.UUID) string {
	candidate := base
	for n := 2; s.slugTaken(candidate, selfID); n++ {
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
	return candidate
}

func (s *service) slugTaken(candidate string, selfID uuid.UUID) bool {
	for _, page := range s.site.Pages {
		if page.Slug == candidate && page.ID != selfID {
			return true
		}
	}
	return false
}

func matchesSearch(page *Page, needle string) bool {
	if strings.Contains(strings.ToLower(page.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(page.Slug), needle) {
		return true
	}
	for _, tag := range page.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
