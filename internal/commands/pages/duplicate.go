package pagescmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/agencykit/cms/internal/commands"
	"github.com/agencykit/cms/internal/logging"
	"github.com/agencykit/cms/pages"
	"github.com/agencykit/cms/pkg/interfaces"
)

const duplicatePageMessageType = "cms.pages.duplicate"

// DuplicatePageCommand requests a draft copy of an existing page.
type DuplicatePageCommand struct {
	PageID uuid.UUID `json:"page_id"`
}

// Type implements command.Message.
func (DuplicatePageCommand) Type() string { return duplicatePageMessageType }

// Validate ensures the command carries a page id.
func (m DuplicatePageCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("cms.pages.duplicate.page_id_required", "page_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DuplicatePageHandler copies pages through the page service.
type DuplicatePageHandler struct {
	inner *commands.Handler[DuplicatePageCommand]
}

// NewDuplicatePageHandler constructs a handler wired to the provided page service.
func NewDuplicatePageHandler(service pages.Service, provider interfaces.LoggerProvider, opts ...commands.HandlerOption[DuplicatePageCommand]) *DuplicatePageHandler {
	baseLogger := logging.CommandsLogger(provider)

	exec := func(ctx context.Context, msg DuplicatePageCommand) error {
		_, err := service.Duplicate(ctx, msg.PageID)
		return err
	}

	handlerOpts := []commands.HandlerOption[DuplicatePageCommand]{
		commands.WithLogger[DuplicatePageCommand](baseLogger),
		commands.WithOperation[DuplicatePageCommand]("pages.duplicate"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DuplicatePageHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander for DuplicatePageCommand.
func (h *DuplicatePageHandler) Execute(ctx context.Context, msg DuplicatePageCommand) error {
	return h.inner.Execute(ctx, msg)
}
