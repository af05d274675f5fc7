package sections_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/agencykit/cms/blocks"
	"github.com/agencykit/cms/sections"
)

func validTemplate() sections.Template {
	sectionID := uuid.New()
	return sections.Template{
		ID:       uuid.New(),
		Name:     "Landing",
		Category: sections.CategoryLanding,
		Sections: []sections.Section{
			{
				ID:   sectionID,
				Name: "Hero",
				Type: sections.TypeHero,
				Content: []blocks.Block{
					{ID: uuid.New(), Type: blocks.TypeHeading, Content: map[string]any{"text": "Hi", "level": 1}, Order: 0},
				},
				Order:     0,
				IsVisible: true,
			},
		},
	}
}

func TestTemplateValidateAcceptsWellFormed(t *testing.T) {
	if err := validTemplate().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTemplateValidateRejectsMissingName(t *testing.T) {
	tpl := validTemplate()
	tpl.Name = ""
	var verr *sections.TemplateValidationError
	if err := tpl.Validate(); !errors.As(err, &verr) {
		t.Fatalf("got %v, want TemplateValidationError", err)
	}
}

func TestTemplateValidateRejectsStructuralProblems(t *testing.T) {
	tpl := validTemplate()
	dup := tpl.Sections[0]
	dup.Order = 0
	tpl.Sections = append(tpl.Sections, dup)

	err := tpl.Validate()
	var verr *sections.TemplateValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want TemplateValidationError", err)
	}
	if !errors.Is(err, sections.ErrTemplateInvalid) {
		t.Fatal("validation error must unwrap to ErrTemplateInvalid")
	}
	if len(verr.Problems) == 0 {
		t.Fatal("problems must be collected")
	}
}

func TestTemplateValidateRejectsBadBlockPayload(t *testing.T) {
	tpl := validTemplate()
	tpl.Sections[0].Content[0].Content = map[string]any{"level": 9}
	var verr *sections.TemplateValidationError
	if err := tpl.Validate(); !errors.As(err, &verr) {
		t.Fatalf("got %v, want TemplateValidationError", err)
	}
}

func TestRegistryRejectsDuplicateRegistration(t *testing.T) {
	r := sections.NewRegistry()
	tpl := validTemplate()

	if err := r.Register(tpl); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.Register(tpl); !errors.Is(err, sections.ErrTemplateExists) {
		t.Fatalf("got %v, want ErrTemplateExists", err)
	}
}

func TestRegistryGetReturnsCopies(t *testing.T) {
	r := sections.NewRegistry()
	tpl := validTemplate()
	if err := r.Register(tpl); err != nil {
		t.Fatalf("register: %v", err)
	}

	first, err := r.Get(tpl.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	first.Sections[0].Name = "mutated"

	second, _ := r.Get(tpl.ID)
	if second.Sections[0].Name == "mutated" {
		t.Fatal("registry must hand out deep copies")
	}
}

func TestRegistryGetMissing(t *testing.T) {
	r := sections.NewRegistry()
	if _, err := r.Get(uuid.New()); !errors.Is(err, sections.ErrTemplateNotFound) {
		t.Fatalf("got %v, want ErrTemplateNotFound", err)
	}
}

func TestSeedTemplatesIsIdempotent(t *testing.T) {
	r := sections.NewRegistry()
	if err := sections.SeedTemplates(r); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := sections.SeedTemplates(r); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	all := r.List()
	if len(all) != len(sections.BuiltinTemplates()) {
		t.Fatalf("templates = %d, want %d", len(all), len(sections.BuiltinTemplates()))
	}

	landing := r.ListByCategory(sections.CategoryLanding)
	if len(landing) != 1 || landing[0].Name != "Landing Page" {
		t.Fatalf("landing category lookup wrong: %+v", landing)
	}
}

func TestBuiltinTemplateIDsAreStable(t *testing.T) {
	first := sections.BuiltinTemplates()
	second := sections.BuiltinTemplates()
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("template %q id not deterministic", first[i].Name)
		}
	}
}
