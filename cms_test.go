package cms_test

import (
	"context"
	"errors"
	"io"
	"testing"

	cms "github.com/agencykit/cms"
	"github.com/agencykit/cms/pages"
	"github.com/agencykit/cms/pkg/interfaces"
)

type stubBlobStore struct{}

func (stubBlobStore) Store(_ context.Context, name string, mimeType string, r io.Reader, _ interfaces.UploadConstraints) (interfaces.StoredObject, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return interfaces.StoredObject{}, err
	}
	return interfaces.StoredObject{
		URL:      "https://cdn.example.com/" + name,
		Size:     int64(len(data)),
		MimeType: mimeType,
	}, nil
}

func TestNewWithZeroConfigEnablesEverything(t *testing.T) {
	module, err := cms.New(cms.Config{}, cms.WithBlobStore(stubBlobStore{}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if module.Pages() == nil {
		t.Fatal("page service must always be wired")
	}
	if module.Templates() == nil {
		t.Fatal("template registry must always be wired")
	}
	if module.Renderer() == nil {
		t.Fatal("renderer must always be wired")
	}
	if module.Media() == nil {
		t.Fatal("media library expected with defaults")
	}
	if module.Uploader() == nil {
		t.Fatal("uploader expected when a blob store is injected")
	}
	if module.Analyzer() == nil {
		t.Fatal("analyzer expected with defaults")
	}
	if module.Importer() == nil {
		t.Fatal("importer expected with defaults")
	}
	if module.Logger("cms") == nil {
		t.Fatal("named logger expected")
	}
}

func TestNewSeedsBuiltinTemplates(t *testing.T) {
	module, err := cms.New(cms.Config{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	templates := module.Templates().List()
	if len(templates) == 0 {
		t.Fatal("registry should come seeded with builtin templates")
	}
}

func TestNewWithoutBlobStoreSkipsUploader(t *testing.T) {
	module, err := cms.New(cms.Config{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if module.Media() == nil {
		t.Fatal("media library should not require a blob store")
	}
	if module.Uploader() != nil {
		t.Fatal("uploader must be nil without a blob store")
	}
}

func TestNewHonorsFeatureToggles(t *testing.T) {
	cfg := cms.DefaultConfig()
	cfg.Features.MediaLibrary = false
	cfg.Features.Markdown = false
	cfg.Features.SEOAnalysis = false

	module, err := cms.New(cfg, cms.WithBlobStore(stubBlobStore{}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if module.Media() != nil {
		t.Fatal("media library must be nil when the feature is off")
	}
	if module.Uploader() != nil {
		t.Fatal("uploader must be nil when the media feature is off")
	}
	if module.Analyzer() != nil {
		t.Fatal("analyzer must be nil when the feature is off")
	}
	if module.Importer() != nil {
		t.Fatal("importer must be nil when the feature is off")
	}
	if module.Pages() == nil {
		t.Fatal("page service survives every toggle")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := cms.DefaultConfig()
	cfg.Logging.Level = "verbose"

	if _, err := cms.New(cfg); !errors.Is(err, cms.ErrLoggingLevelInvalid) {
		t.Fatalf("err = %v, want ErrLoggingLevelInvalid", err)
	}
}

func TestModuleCreatesAndSavesPages(t *testing.T) {
	store := pages.NewMemoryStore(nil)
	module, err := cms.New(cms.Config{}, cms.WithStore(store))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx := context.Background()
	page, err := module.Pages().Create(ctx, pages.CreateRequest{Title: "About Us"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := module.Pages().Save(ctx, page); err != nil {
		t.Fatalf("save: %v", err)
	}

	if store.Saves() != 1 {
		t.Fatalf("saves = %d, want 1", store.Saves())
	}
	doc := store.Snapshot()
	if len(doc.Pages) != 1 || doc.Pages[0].Slug != "about-us" {
		t.Fatalf("persisted document = %+v", doc)
	}
}
