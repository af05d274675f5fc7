package pages_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/agencykit/cms/domain"
	"github.com/agencykit/cms/pages"
	"github.com/agencykit/cms/pkg/testsupport"
	"github.com/agencykit/cms/seo"
)

func newBunStore(t *testing.T) *pages.BunStore {
	t.Helper()
	db := testsupport.NewSQLiteMemoryDB(t, "pages_store")
	store := pages.NewBunStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	return store
}

func TestBunStoreLoadEmptyDatabase(t *testing.T) {
	store := newBunStore(t)

	doc, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Pages) != 0 {
		t.Fatalf("pages = %d, want 0", len(doc.Pages))
	}
}

func TestBunStoreSaveLoadRoundTrip(t *testing.T) {
	store := newBunStore(t)
	ctx := context.Background()

	page := &pages.Page{
		ID:        uuid.New(),
		Title:     "About",
		Slug:      "about",
		Status:    domain.StatusPublished,
		SEO:       seo.Data{Title: "About", Robots: seo.RobotsIndexFollow},
		CreatedAt: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		Tags:      []string{"company"},
	}
	if err := store.Save(ctx, &pages.SiteData{Pages: []*pages.Page{page}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	doc, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(doc.Pages))
	}
	got := doc.Pages[0]
	if got.ID != page.ID || got.Slug != "about" || got.Status != domain.StatusPublished {
		t.Fatalf("page = %+v", got)
	}
	if got.SEO.Title != "About" || got.SEO.Robots != seo.RobotsIndexFollow {
		t.Fatalf("seo = %+v", got.SEO)
	}
}

func TestBunStoreSecondSaveOverwritesSingletonRow(t *testing.T) {
	store := newBunStore(t)
	ctx := context.Background()

	first := &pages.Page{ID: uuid.New(), Title: "One", Slug: "one"}
	second := &pages.Page{ID: uuid.New(), Title: "Two", Slug: "two"}

	if err := store.Save(ctx, &pages.SiteData{Pages: []*pages.Page{first}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, &pages.SiteData{Pages: []*pages.Page{first, second}}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	doc, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(doc.Pages))
	}
}

func TestBunStorePreservesForeignDocumentKeys(t *testing.T) {
	store := newBunStore(t)
	ctx := context.Background()

	doc := &pages.SiteData{
		Pages: []*pages.Page{{ID: uuid.New(), Title: "Home", Slug: "home"}},
		Extra: map[string]json.RawMessage{
			"models":   json.RawMessage(`[{"name":"Vera","height":178}]`),
			"settings": json.RawMessage(`{"theme":"noir"}`),
		},
	}
	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(loaded.Extra["models"]) != `[{"name":"Vera","height":178}]` {
		t.Fatalf("models = %s", loaded.Extra["models"])
	}
	if string(loaded.Extra["settings"]) != `{"theme":"noir"}` {
		t.Fatalf("settings = %s", loaded.Extra["settings"])
	}

	// A full edit cycle through the service keeps the foreign keys intact.
	svc, err := pages.NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	page, err := svc.Create(ctx, pages.CreateRequest{Title: "New Page"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Save(ctx, page); err != nil {
		t.Fatalf("save page: %v", err)
	}

	final, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("final load: %v", err)
	}
	if len(final.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(final.Pages))
	}
	if string(final.Extra["settings"]) != `{"theme":"noir"}` {
		t.Fatal("unrelated document keys must round-trip through page edits")
	}
}
