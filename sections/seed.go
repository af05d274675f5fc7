package sections

import (
	"github.com/google/uuid"

	"github.com/agencykit/cms/internal/identity"
)

// BuiltinTemplates returns the templates shipped with the module. Identifiers
// are derived deterministically from the template slug so repeated seeding
// converges on the same ids across processes.
func BuiltinTemplates() []Template {
	return []Template{
		builtinTemplate("landing", "Landing Page", CategoryLanding,
			"Full landing page with hero, highlights, testimonials, and a call to action.",
			[]Type{TypeHero, TypeContent, TypeTestimonials, TypeContact}),
		builtinTemplate("about", "About Us", CategoryAbout,
			"Agency story page with an intro hero and long-form content.",
			[]Type{TypeHero, TypeContent, TypeContent}),
		builtinTemplate("portfolio", "Portfolio", CategoryPortfolio,
			"Work showcase with a gallery grid and supporting copy.",
			[]Type{TypeHero, TypeGallery, TypeContent}),
		builtinTemplate("contact", "Contact", CategoryContact,
			"Contact page with address, form placeholder, and map section.",
			[]Type{TypeContact, TypeContent}),
	}
}

// SeedTemplates registers every built-in template, skipping ones already
// present so the call is safe to repeat.
func SeedTemplates(registry *Registry) error {
	for _, tpl := range BuiltinTemplates() {
		if _, err := registry.Get(tpl.ID); err == nil {
			continue
		}
		if err := registry.Register(tpl); err != nil {
			return err
		}
	}
	return nil
}

func builtinTemplate(slug, name string, category Category, description string, sectionTypes []Type) Template {
	templateID := identity.TemplateUUID(slug)
	sectionList := make([]Section, 0, len(sectionTypes))
	counts := map[Type]int{}
	for i, st := range sectionTypes {
		counts[st]++
		key := string(st)
		if counts[st] > 1 {
			key = key + "-" + string(rune('0'+counts[st]))
		}
		sectionID := identity.SectionUUID(templateID, key)
		position := 0
		idgen := func() uuid.UUID {
			id := identity.BlockUUID(sectionID, position)
			position++
			return id
		}
		sectionList = append(sectionList, Section{
			ID:        sectionID,
			Name:      DefaultName(st),
			Type:      st,
			Content:   DefaultBlocks(st, idgen),
			Styles:    DefaultStyles(st),
			Order:     i,
			IsVisible: true,
		})
	}
	return Template{
		ID:          templateID,
		Name:        name,
		Description: description,
		Category:    category,
		Sections:    sectionList,
	}
}
