package pagescmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/agencykit/cms/internal/commands"
	"github.com/agencykit/cms/internal/logging"
	"github.com/agencykit/cms/pages"
	"github.com/agencykit/cms/pkg/interfaces"
)

const publishPageMessageType = "cms.pages.publish"

// PublishPageCommand requests publication of a page, optionally notifying a
// recipient once the page is live.
type PublishPageCommand struct {
	PageID   uuid.UUID `json:"page_id"`
	NotifyTo string    `json:"notify_to,omitempty"`
}

// Type implements command.Message.
func (PublishPageCommand) Type() string { return publishPageMessageType }

// Validate ensures the command carries a page id and, when present, a
// well-formed notification address.
func (m PublishPageCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("cms.pages.publish.page_id_required", "page_id is required")
	}
	if trimmed := strings.TrimSpace(m.NotifyTo); trimmed != "" {
		if err := validation.Validate(trimmed, is.EmailFormat); err != nil {
			errs["notify_to"] = validation.NewError("cms.pages.publish.notify_to_invalid", "notify_to must be a valid email address")
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PublishPageHandler publishes pages through the page service using the
// shared command handler foundation.
type PublishPageHandler struct {
	inner *commands.Handler[PublishPageCommand]
}

// NewPublishPageHandler constructs a handler wired to the provided page service.
func NewPublishPageHandler(service pages.Service, provider interfaces.LoggerProvider, opts ...commands.HandlerOption[PublishPageCommand]) *PublishPageHandler {
	baseLogger := logging.CommandsLogger(provider)

	exec := func(ctx context.Context, msg PublishPageCommand) error {
		_, err := service.Publish(ctx, pages.PublishRequest{
			PageID:   msg.PageID,
			NotifyTo: strings.TrimSpace(msg.NotifyTo),
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[PublishPageCommand]{
		commands.WithLogger[PublishPageCommand](baseLogger),
		commands.WithOperation[PublishPageCommand]("pages.publish"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishPageHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander for PublishPageCommand.
func (h *PublishPageHandler) Execute(ctx context.Context, msg PublishPageCommand) error {
	return h.inner.Execute(ctx, msg)
}
