package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fabiobufalari/communication-service/internal/domain"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorHandler_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "validation sentinel maps to 400",
			err:        fmt.Errorf("%w: recipient is required", domain.ErrValidation),
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "not found sentinel maps to 404",
			err:        fmt.Errorf("%w: notification with id 99", domain.ErrNotFound),
			wantStatus: fiber.StatusNotFound,
		},
		{
			name:       "fiber error keeps its code",
			err:        fiber.NewError(fiber.StatusForbidden, "insufficient role"),
			wantStatus: fiber.StatusForbidden,
		},
		{
			name:       "unrecognized error maps to 500",
			err:        fmt.Errorf("failed to persist notification"),
			wantStatus: fiber.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
			app.Get("/boom", func(c *fiber.Ctx) error {
				return tt.err
			})

			req := httptest.NewRequest(http.MethodGet, "/boom", nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("failed to read response body: %v", err)
			}
			var parsed map[string]string
			if err := json.Unmarshal(body, &parsed); err != nil {
				t.Fatalf("json unmarshal error = %v", err)
			}
			if parsed["error"] != tt.err.Error() {
				t.Fatalf("error body = %q, want %q", parsed["error"], tt.err.Error())
			}
		})
	}
}

func TestErrorHandler_LogsRequestID(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.New(core))})
	app.Use(RequestID())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fmt.Errorf("%w: bad input", domain.ErrValidation)
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-from-client")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	_ = resp.Body.Close()

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["requestId"] != "req-from-client" {
		t.Fatalf("requestId field = %v, want req-from-client", fields["requestId"])
	}
	if fields["status"] != int64(fiber.StatusBadRequest) {
		t.Fatalf("status field = %v, want %d", fields["status"], fiber.StatusBadRequest)
	}
}
