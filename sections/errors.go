package sections

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTemplateInvalid  = errors.New("sections: template is structurally invalid")
	ErrTemplateExists   = errors.New("sections: template already registered")
	ErrTemplateNotFound = errors.New("sections: template not found")
)

// TemplateValidationError lists the structural problems found while
// registering a template. Registration rejects the template wholesale; a
// template that passed registration can always be applied.
type TemplateValidationError struct {
	TemplateName string
	Problems     []string
}

func (e *TemplateValidationError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return ErrTemplateInvalid.Error()
	}
	name := strings.TrimSpace(e.TemplateName)
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("%s: %s: %s", ErrTemplateInvalid.Error(), name, strings.Join(e.Problems, "; "))
}

func (e *TemplateValidationError) Unwrap() error {
	return ErrTemplateInvalid
}
