package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/go-cmp/cmp"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(EnsurePlayerID())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("playerID").(string))
	})
	app.Get("/ws/:gameId", WebSocketUpgrade(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"game":   c.Locals("wsGameID"),
			"player": c.Locals("wsPlayerID"),
		})
	})
	return app
}

func TestEnsurePlayerID(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "header", target: "/whoami", header: "alice", wantStatus: fiber.StatusOK, wantBody: "alice"},
		{name: "query", target: "/whoami?playerId=bob", wantStatus: fiber.StatusOK, wantBody: "bob"},
		{name: "header wins", target: "/whoami?playerId=bob", header: "alice", wantStatus: fiber.StatusOK, wantBody: "alice"},
		{name: "missing", target: "/whoami", wantStatus: fiber.StatusUnauthorized},
	}

	app := newApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			if tt.header != "" {
				req.Header.Set(PlayerIDHeader, tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantBody == "" {
				return
			}
			body, _ := io.ReadAll(resp.Body)
			if diff := cmp.Diff(tt.wantBody, string(body)); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWebSocketUpgradeRequiresUpgrade(t *testing.T) {
	app := newApp()
	req := httptest.NewRequest("GET", "/ws/g1", nil)
	req.Header.Set(PlayerIDHeader, "alice")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusUpgradeRequired)
	}
}

func TestWebSocketUpgradeStoresIDs(t *testing.T) {
	app := newApp()
	req := httptest.NewRequest("GET", "/ws/g1", nil)
	req.Header.Set(PlayerIDHeader, "alice")
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
	var got map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]string{"game": "g1", "player": "alice"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("locals mismatch (-want +got):\n%s", diff)
	}
}
