package sections_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/agencykit/cms/blocks"
	"github.com/agencykit/cms/sections"
)

func TestBuilderAddSeedsArchetypeDefaults(t *testing.T) {
	b := sections.NewBuilder(nil)

	hero := b.Add(sections.TypeHero)
	if hero.Name != "Hero Section" {
		t.Fatalf("name = %q", hero.Name)
	}
	if !hero.IsVisible {
		t.Fatal("new sections start visible")
	}
	if len(hero.Content) != 3 {
		t.Fatalf("hero starter blocks = %d, want 3", len(hero.Content))
	}
	if hero.Content[0].Type != blocks.TypeHeading || hero.Content[2].Type != blocks.TypeButton {
		t.Fatal("hero starter block types wrong")
	}
}

func TestBuilderDeleteRenumbersSections(t *testing.T) {
	b := sections.NewBuilder(nil)
	first := b.Add(sections.TypeHero)
	second := b.Add(sections.TypeContent)
	third := b.Add(sections.TypeContact)

	if !b.Delete(second.ID) {
		t.Fatal("delete should succeed")
	}
	if b.Delete(second.ID) {
		t.Fatal("repeat delete must be a no-op")
	}

	got := b.Sections()
	if len(got) != 2 || got[0].ID != first.ID || got[1].ID != third.ID {
		t.Fatal("surviving sections wrong")
	}
	for i, s := range got {
		if s.Order != i {
			t.Fatalf("section %d order = %d", i, s.Order)
		}
	}
}

func TestBuilderUpdatePatchesOnlyPresentFields(t *testing.T) {
	b := sections.NewBuilder(nil)
	section := b.Add(sections.TypeContent)

	name := "Our Services"
	if !b.Update(section.ID, sections.Patch{Name: &name}) {
		t.Fatal("update should succeed")
	}
	got, _ := b.Get(section.ID)
	if got.Name != "Our Services" {
		t.Fatalf("name = %q", got.Name)
	}
	if !got.IsVisible {
		t.Fatal("visibility must survive a name-only patch")
	}

	hidden := false
	b.Update(section.ID, sections.Patch{IsVisible: &hidden})
	got, _ = b.Get(section.ID)
	if got.IsVisible {
		t.Fatal("visibility patch not applied")
	}
	if got.Name != "Our Services" {
		t.Fatal("name must survive a visibility-only patch")
	}
}

func TestBuilderEditBlocksWritesBack(t *testing.T) {
	b := sections.NewBuilder(nil)
	section := b.Add(sections.TypeContent)

	ok := b.EditBlocks(section.ID, func(inner *blocks.Builder) {
		inner.Add(blocks.TypeDivider)
		inner.Add(blocks.TypeQuote)
	})
	if !ok {
		t.Fatal("edit should succeed")
	}

	got, _ := b.Get(section.ID)
	if len(got.Content) != 3 {
		t.Fatalf("blocks = %d, want 3", len(got.Content))
	}
	for i, block := range got.Content {
		if block.Order != i {
			t.Fatalf("block %d order = %d", i, block.Order)
		}
	}
}

func TestBuilderEditBlocksMissingSection(t *testing.T) {
	b := sections.NewBuilder(nil)
	if b.EditBlocks(uuid.New(), func(*blocks.Builder) {}) {
		t.Fatal("editing a missing section must return false")
	}
}

func TestBuilderApplyTemplateReplacesAndDoesNotAlias(t *testing.T) {
	b := sections.NewBuilder(nil)
	b.Add(sections.TypeContact)
	b.Select(b.Sections()[0].ID)

	tpl := sections.BuiltinTemplates()[0]
	b.ApplyTemplate(tpl)

	got := b.Sections()
	if len(got) != len(tpl.Sections) {
		t.Fatalf("sections = %d, want %d", len(got), len(tpl.Sections))
	}
	if _, ok := b.Selected(); ok {
		t.Fatal("selection must be cleared on apply")
	}

	// Mutating the applied result must not leak into the template value.
	b.EditBlocks(got[0].ID, func(inner *blocks.Builder) {
		inner.Add(blocks.TypeDivider)
	})
	if len(tpl.Sections[0].Content) == len(b.Sections()[0].Content) {
		t.Fatal("template sections must be deep-copied on apply")
	}
}
