package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/agencykit/cms/internal/commands"
)

type testMessage struct {
	payload     string
	validateErr error
}

func (testMessage) Type() string { return "cms.test.message" }

func (m testMessage) Validate() error { return m.validateErr }

func TestHandlerRunsExec(t *testing.T) {
	var got string
	handler := commands.NewHandler(func(_ context.Context, msg testMessage) error {
		got = msg.payload
		return nil
	})

	if err := handler.Execute(context.Background(), testMessage{payload: "hello"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got != "hello" {
		t.Fatalf("payload = %q, want %q", got, "hello")
	}
}

func TestHandlerRejectsInvalidMessage(t *testing.T) {
	called := false
	handler := commands.NewHandler(func(context.Context, testMessage) error {
		called = true
		return nil
	})

	err := handler.Execute(context.Background(), testMessage{validateErr: errors.New("bad payload")})
	if err == nil {
		t.Fatal("invalid message must fail")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("err = %v, want validation category", err)
	}
	if called {
		t.Fatal("exec must not run for invalid messages")
	}
}

func TestHandlerWrapsExecFailure(t *testing.T) {
	handler := commands.NewHandler(func(context.Context, testMessage) error {
		return errors.New("downstream broke")
	})

	err := handler.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("err = %v, want command category", err)
	}
}

func TestHandlerPreservesAlreadyWrappedErrors(t *testing.T) {
	wrapped := goerrors.Wrap(errors.New("bad slug"), goerrors.CategoryValidation, "slug rejected")
	handler := commands.NewHandler(func(context.Context, testMessage) error {
		return wrapped
	})

	err := handler.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("err = %v, want the original category preserved", err)
	}
}

func TestHandlerHonorsTimeout(t *testing.T) {
	handler := commands.NewHandler(func(ctx context.Context, _ testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	}, commands.WithTimeout[testMessage](10*time.Millisecond))

	err := handler.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout failure")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("err = %v, want command category", err)
	}
}

func TestHandlerRejectsCancelledContext(t *testing.T) {
	handler := commands.NewHandler(func(context.Context, testMessage) error {
		t.Fatal("exec must not run with a cancelled context")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handler.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected cancellation failure")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("err = %v, want command category", err)
	}
}

func TestHandlerNilContextDefaultsToBackground(t *testing.T) {
	handler := commands.NewHandler(func(ctx context.Context, _ testMessage) error {
		if ctx == nil {
			t.Fatal("exec received a nil context")
		}
		return nil
	})

	//nolint:staticcheck // exercising the nil-context guard on purpose
	if err := handler.Execute(nil, testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestNewHandlerPanicsWithoutFunc(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil exec func")
		}
	}()
	commands.NewHandler[testMessage](nil)
}
