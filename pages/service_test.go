package pages_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/agencykit/cms/blocks"
	"github.com/agencykit/cms/domain"
	"github.com/agencykit/cms/pages"
	"github.com/agencykit/cms/pkg/interfaces"
	"github.com/agencykit/cms/sections"
	"github.com/agencykit/cms/seo"
)

type stubNotifier struct {
	sent []interfaces.Notification
	err  error
}

func (s *stubNotifier) Send(_ context.Context, msg interfaces.Notification) (interfaces.NotificationReceipt, error) {
	s.sent = append(s.sent, msg)
	if s.err != nil {
		return interfaces.NotificationReceipt{}, s.err
	}
	return interfaces.NotificationReceipt{ID: "receipt-1"}, nil
}

func newTestService(t *testing.T, store pages.Store, opts ...pages.Option) pages.Service {
	t.Helper()
	svc, err := pages.NewService(store, opts...)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func mustCreate(t *testing.T, svc pages.Service, title string) *pages.Page {
	t.Helper()
	page, err := svc.Create(context.Background(), pages.CreateRequest{Title: title})
	if err != nil {
		t.Fatalf("create %q: %v", title, err)
	}
	return page
}

func TestCreateDerivesSlugAndDefaults(t *testing.T) {
	svc := newTestService(t, pages.NewMemoryStore(nil))

	page := mustCreate(t, svc, "Meet The Models")
	if page.Slug != "meet-the-models" {
		t.Fatalf("slug = %q", page.Slug)
	}
	if page.Status != domain.StatusDraft {
		t.Fatalf("status = %q", page.Status)
	}
	if page.SEO.Robots != seo.RobotsIndexFollow {
		t.Fatalf("robots = %q", page.SEO.Robots)
	}
	if page.Content == nil || page.Sections == nil {
		t.Fatal("content and sections must start empty, not nil")
	}
	if page.CreatedAt.IsZero() || page.UpdatedAt.IsZero() {
		t.Fatal("timestamps must be set")
	}
}

func TestCreateRequiresTitle(t *testing.T) {
	svc := newTestService(t, pages.NewMemoryStore(nil))
	if _, err := svc.Create(context.Background(), pages.CreateRequest{Title: "  "}); !errors.Is(err, pages.ErrTitleRequired) {
		t.Fatalf("got %v, want ErrTitleRequired", err)
	}
}

func TestCreateUniquifiesSlugs(t *testing.T) {
	svc := newTestService(t, pages.NewMemoryStore(nil))

	first := mustCreate(t, svc, "About")
	second := mustCreate(t, svc, "About")
	if first.Slug != "about" || second.Slug != "about-2" {
		t.Fatalf("slugs = %q, %q", first.Slug, second.Slug)
	}
}

func TestSavePersistsWholeDocumentAndStampsUpdatedAt(t *testing.T) {
	store := pages.NewMemoryStore(nil)
	clock := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(t, store, pages.WithClock(func() time.Time { return clock }))

	page := mustCreate(t, svc, "Services")
	clock = clock.Add(time.Hour)
	page.Title = "Our Services"

	saved, err := svc.Save(context.Background(), page)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !saved.UpdatedAt.Equal(clock) {
		t.Fatalf("updated at = %v, want %v", saved.UpdatedAt, clock)
	}

	doc := store.Snapshot()
	if len(doc.Pages) != 1 || doc.Pages[0].Title != "Our Services" {
		t.Fatalf("persisted doc = %+v", doc)
	}
}

func TestSaveFailureKeepsLocalEditWithoutStamping(t *testing.T) {
	store := pages.NewMemoryStore(nil)
	clock := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(t, store, pages.WithClock(func() time.Time { return clock }))

	page := mustCreate(t, svc, "Team")
	created := page.UpdatedAt

	store.FailSave(errors.New("disk full"))
	clock = clock.Add(time.Hour)
	page.Title = "Meet The Team"

	if _, err := svc.Save(context.Background(), page); !errors.Is(err, pages.ErrPersistFailed) {
		t.Fatalf("got %v, want ErrPersistFailed", err)
	}

	// The edit stays in memory so the user can retry.
	kept, err := svc.Get(context.Background(), page.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if kept.Title != "Meet The Team" {
		t.Fatalf("title = %q, local edit must survive a failed save", kept.Title)
	}
	if !kept.UpdatedAt.Equal(created) {
		t.Fatalf("updated at = %v, must only be stamped by a successful save", kept.UpdatedAt)
	}

	// Retry after the store heals.
	store.FailSave(nil)
	saved, err := svc.Save(context.Background(), kept)
	if err != nil {
		t.Fatalf("retry save: %v", err)
	}
	if !saved.UpdatedAt.Equal(clock) {
		t.Fatalf("retry updated at = %v, want %v", saved.UpdatedAt, clock)
	}
}

func TestSaveRejectsInvalidSEO(t *testing.T) {
	svc := newTestService(t, pages.NewMemoryStore(nil))
	page := mustCreate(t, svc, "Blog")
	page.SEO.CanonicalURL = "not a url"

	if _, err := svc.Save(context.Background(), page); !errors.Is(err, pages.ErrSEOInvalid) {
		t.Fatalf("got %v, want ErrSEOInvalid", err)
	}
}

func TestDuplicateCopiesEverythingExceptIdentity(t *testing.T) {
	clock := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(t, pages.NewMemoryStore(nil), pages.WithClock(func() time.Time { return clock }))

	page := mustCreate(t, svc, "Portfolio")
	page.Content = []blocks.Block{
		{ID: uuid.New(), Type: blocks.TypeParagraph, Content: map[string]any{"text": "work"}, Order: 0},
	}
	page.Status = domain.StatusPublished
	if _, err := svc.Save(context.Background(), page); err != nil {
		t.Fatalf("save: %v", err)
	}

	clock = clock.Add(time.Hour)
	copied, err := svc.Duplicate(context.Background(), page.ID)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}

	if copied.ID == page.ID {
		t.Fatal("duplicate must get a new id")
	}
	if copied.Title != "Portfolio (Copy)" {
		t.Fatalf("title = %q", copied.Title)
	}
	if copied.Slug != "portfolio-copy" {
		t.Fatalf("slug = %q", copied.Slug)
	}
	if copied.Status != domain.StatusDraft {
		t.Fatalf("status = %q, duplicates always start as drafts", copied.Status)
	}
	if !copied.CreatedAt.Equal(clock) || !copied.UpdatedAt.Equal(clock) {
		t.Fatal("duplicate gets fresh timestamps")
	}
	if len(copied.Content) != 1 || copied.Content[0].Content["text"] != "work" {
		t.Fatalf("content = %+v", copied.Content)
	}

	// Deep copy: editing the duplicate leaves the source alone.
	copied.Content[0].Content["text"] = "mutated"
	source, _ := svc.Get(context.Background(), page.ID)
	if source.Content[0].Content["text"] != "work" {
		t.Fatal("duplicate must not alias the source blocks")
	}
}

func TestDuplicateMissingPage(t *testing.T) {
	svc := newTestService(t, pages.NewMemoryStore(nil))
	if _, err := svc.Duplicate(context.Background(), uuid.New()); !errors.Is(err, pages.ErrPageNotFound) {
		t.Fatalf("got %v, want ErrPageNotFound", err)
	}
}

func TestApplyTemplateReplacesLayoutAndMergesSEO(t *testing.T) {
	svc := newTestService(t, pages.NewMemoryStore(nil))
	page := mustCreate(t, svc, "Landing")

	page.SEO.Title = "Existing Title"
	page.SEO.Description = "Existing description"
	if _, err := svc.Save(context.Background(), page); err != nil {
		t.Fatalf("save: %v", err)
	}

	tpl := sections.BuiltinTemplates()[0]
	tplTitle := "Template Title"
	tpl.SEO = seo.Patch{Title: &tplTitle}

	applied, err := svc.ApplyTemplate(context.Background(), page.ID, tpl)
	if err != nil {
		t.Fatalf("apply template: %v", err)
	}

	if len(applied.Sections) != len(tpl.Sections) {
		t.Fatalf("sections = %d, want %d", len(applied.Sections), len(tpl.Sections))
	}
	if applied.SEO.Title != "Template Title" {
		t.Fatalf("seo title = %q, template wins on overlap", applied.SEO.Title)
	}
	if applied.SEO.Description != "Existing description" {
		t.Fatalf("seo description = %q, untouched keys survive", applied.SEO.Description)
	}
}

func TestApplyTemplateRejectsInvalidTemplate(t *testing.T) {
	svc := newTestService(t, pages.NewMemoryStore(nil))
	page := mustCreate(t, svc, "Landing")

	var verr *sections.TemplateValidationError
	if _, err := svc.ApplyTemplate(context.Background(), page.ID, sections.Template{}); !errors.As(err, &verr) {
		t.Fatalf("got %v, want TemplateValidationError", err)
	}
}

func TestFilterCombinesSearchStatusCategory(t *testing.T) {
	svc := newTestService(t, pages.NewMemoryStore(nil))

	first := mustCreate(t, svc, "Summer Campaign")
	first.Category = "marketing"
	first.Tags = []string{"featured"}
	first.Status = domain.StatusPublished
	if _, err := svc.Save(context.Background(), first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := mustCreate(t, svc, "Winter Campaign")
	second.Category = "marketing"
	if _, err := svc.Save(context.Background(), second); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := svc.Filter(context.Background(), pages.Query{Search: "campaign", Status: domain.StatusPublished, Category: "marketing"})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 1 || got[0].ID != first.ID {
		t.Fatalf("filter = %+v", got)
	}

	// Tag substring matches too.
	got, _ = svc.Filter(context.Background(), pages.Query{Search: "featur"})
	if len(got) != 1 || got[0].ID != first.ID {
		t.Fatalf("tag filter = %+v", got)
	}
}

func TestPublishSetsStatusAndNotifies(t *testing.T) {
	notifier := &stubNotifier{}
	store := pages.NewMemoryStore(nil)
	svc := newTestService(t, store, pages.WithNotifier(notifier))

	page := mustCreate(t, svc, "Launch")
	published, err := svc.Publish(context.Background(), pages.PublishRequest{PageID: page.ID, NotifyTo: "team@example.com"})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if published.Status != domain.StatusPublished {
		t.Fatalf("status = %q", published.Status)
	}
	if doc := store.Snapshot(); doc.Pages[0].Status != domain.StatusPublished {
		t.Fatal("publish must persist")
	}
	if len(notifier.sent) != 1 || notifier.sent[0].To != "team@example.com" {
		t.Fatalf("notifications = %+v", notifier.sent)
	}
}

func TestPublishNotifierFailureIsNotFatal(t *testing.T) {
	notifier := &stubNotifier{err: errors.New("smtp down")}
	svc := newTestService(t, pages.NewMemoryStore(nil), pages.WithNotifier(notifier))

	page := mustCreate(t, svc, "Launch")
	published, err := svc.Publish(context.Background(), pages.PublishRequest{PageID: page.ID, NotifyTo: "team@example.com"})
	if err != nil {
		t.Fatalf("publish must succeed despite notifier failure: %v", err)
	}
	if published.Status != domain.StatusPublished {
		t.Fatalf("status = %q", published.Status)
	}
}

func TestPublishFailureRevertsStatusAndStamp(t *testing.T) {
	store := pages.NewMemoryStore(nil)
	clock := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(t, store, pages.WithClock(func() time.Time { return clock }))

	page := mustCreate(t, svc, "Launch")
	created := page.UpdatedAt

	store.FailSave(errors.New("disk full"))
	clock = clock.Add(time.Hour)

	if _, err := svc.Publish(context.Background(), pages.PublishRequest{PageID: page.ID}); !errors.Is(err, pages.ErrPersistFailed) {
		t.Fatalf("got %v, want ErrPersistFailed", err)
	}

	kept, err := svc.Get(context.Background(), page.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if kept.Status != domain.StatusDraft {
		t.Fatalf("status = %q, failed publish must leave the page draft", kept.Status)
	}
	if !kept.UpdatedAt.Equal(created) {
		t.Fatalf("updated at = %v, must only be stamped by a successful save", kept.UpdatedAt)
	}

	// Retry after the store heals.
	store.FailSave(nil)
	published, err := svc.Publish(context.Background(), pages.PublishRequest{PageID: page.ID})
	if err != nil {
		t.Fatalf("retry publish: %v", err)
	}
	if published.Status != domain.StatusPublished || !published.UpdatedAt.Equal(clock) {
		t.Fatalf("retry = %q at %v, want published at %v", published.Status, published.UpdatedAt, clock)
	}
}

func TestDeleteIsIdempotentAndPersists(t *testing.T) {
	store := pages.NewMemoryStore(nil)
	svc := newTestService(t, store)

	page := mustCreate(t, svc, "Old Page")
	if _, err := svc.Save(context.Background(), page); err != nil {
		t.Fatalf("save: %v", err)
	}

	removed, err := svc.Delete(context.Background(), page.ID)
	if err != nil || !removed {
		t.Fatalf("delete = %v, %v", removed, err)
	}
	removed, err = svc.Delete(context.Background(), page.ID)
	if err != nil || removed {
		t.Fatalf("second delete = %v, %v, want no-op", removed, err)
	}
	if doc := store.Snapshot(); len(doc.Pages) != 0 {
		t.Fatalf("persisted pages = %d, want 0", len(doc.Pages))
	}
}

func TestGetBySlug(t *testing.T) {
	svc := newTestService(t, pages.NewMemoryStore(nil))
	page := mustCreate(t, svc, "Contact Us")

	got, err := svc.GetBySlug(context.Background(), "contact-us")
	if err != nil || got.ID != page.ID {
		t.Fatalf("get by slug = %+v, %v", got, err)
	}
	if _, err := svc.GetBySlug(context.Background(), "missing"); !errors.Is(err, pages.ErrPageNotFound) {
		t.Fatalf("got %v, want ErrPageNotFound", err)
	}
}

func TestServiceReturnsClones(t *testing.T) {
	svc := newTestService(t, pages.NewMemoryStore(nil))
	page := mustCreate(t, svc, "Isolation")

	page.Title = "mutated"
	got, _ := svc.Get(context.Background(), page.ID)
	if got.Title != "Isolation" {
		t.Fatal("service must hand out clones")
	}
}
