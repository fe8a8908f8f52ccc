package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"challenge-tracker/services"
	"challenge-tracker/storage"

	"github.com/gofiber/fiber/v2"
)

func newTestApp() *fiber.App {
	ledger := storage.NewInMemoryLedger()
	app := fiber.New()
	SetupSubmissionRoutes(app, services.NewSubmissionService(ledger))
	SetupReportRoutes(app, services.NewReportService(ledger), services.NewReminderService(ledger))
	return app
}

// Only the submission write paths require the gateway user context; reads and
// healthz must answer without it.
func TestUserContextIsScopedToSubmissionRoutes(t *testing.T) {
	app := newTestApp()

	open := []struct {
		method string
		path   string
	}{
		{"GET", "/healthz"},
		{"GET", "/participants/p1/streak"},
		{"GET", "/report"},
		{"GET", "/report/export"},
		{"GET", "/overdue"},
	}
	for _, tt := range open {
		resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
		if err != nil {
			t.Fatalf("%s %s: %v", tt.method, tt.path, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("%s %s without X-User-ID = %d, want 200", tt.method, tt.path, resp.StatusCode)
		}
	}

	for _, method := range []string{"POST", "PUT"} {
		req := httptest.NewRequest(method, "/submissions", strings.NewReader(`{"link":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s /submissions: %v", method, err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s /submissions without X-User-ID = %d, want 401", method, resp.StatusCode)
		}
	}
}

func TestSubmitOverHTTP(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/submissions", strings.NewReader(`{"link":"https://twitter.com/gopher/status/123"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "p1")
	req.Header.Set("X-User-Name", "Gopher")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("POST /submissions = %d (%s), want 201", resp.StatusCode, body)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/participants/p1/streak", nil))
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		ParticipantID string `json:"participantId"`
		Streak        int    `json:"streak"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Streak != 1 {
		t.Errorf("streak = %d, want 1", got.Streak)
	}
}
