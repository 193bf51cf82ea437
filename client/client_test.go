package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestServer creates a test server that routes to the given handler map.
// Keys are "METHOD /path", values are handler funcs.
func newTestServer(t *testing.T, routes map[string]http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	byPath := make(map[string]map[string]http.HandlerFunc)
	for pattern, handler := range routes {
		var method, path string
		if _, err := fmt.Sscanf(pattern, "%s %s", &method, &path); err != nil {
			t.Fatalf("bad route pattern %q: %v", pattern, err)
		}
		if byPath[path] == nil {
			byPath[path] = make(map[string]http.HandlerFunc)
		}
		byPath[path][method] = handler
	}
	mux := http.NewServeMux()
	for path, methods := range byPath {
		methods := methods
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if handler, ok := methods[r.Method]; ok {
				handler(w, r)
				return
			}
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := New(srv.URL, WithToken("test-token"))
	return srv, c
}

func jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func TestHealth(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/health": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
				t.Errorf("authorization header = %q", got)
			}
			jsonResponse(w, 200, HealthResponse{Status: "ok", Version: "1.2.0"})
		},
	})
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error: %v", err)
	}
	if resp.Status != "ok" || resp.Version != "1.2.0" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestSettings(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/settings": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("category"); got != "features" {
				t.Errorf("category = %q", got)
			}
			jsonResponse(w, 200, map[string]any{
				"settings": []Setting{{Key: "features.new_search", Version: 3}},
				"has_more": true,
			})
		},
		"GET /api/v1/settings/features.new_search": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, Setting{Key: "features.new_search", Version: 3, Editable: true})
		},
		"PUT /api/v1/settings/features.new_search": func(w http.ResponseWriter, r *http.Request) {
			var req UpdateSettingRequest
			json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
			if req.ExpectedVersion != 3 || req.Reason != "A/B rollout" {
				t.Errorf("req = %+v", req)
			}
			jsonResponse(w, 200, SettingChange{ID: 41, Action: "update", VersionAfter: 4})
		},
		"POST /api/v1/settings/features.new_search/rollback": func(w http.ResponseWriter, r *http.Request) {
			var req RollbackSettingRequest
			json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
			if req.ChangeID != 41 {
				t.Errorf("change_id = %d", req.ChangeID)
			}
			jsonResponse(w, 200, SettingChange{ID: 42, Action: "rollback", VersionAfter: 5})
		},
		"GET /api/v1/settings/features.new_search/history": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, map[string]any{
				"history":  []SettingChange{{ID: 42, VersionAfter: 5}, {ID: 41, VersionAfter: 4}},
				"has_more": false,
			})
		},
	})

	ctx := context.Background()

	settings, hasMore, err := c.Settings.List(ctx, &SettingListOptions{Category: "features"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(settings) != 1 || !hasMore {
		t.Errorf("List: got %d settings, hasMore=%v", len(settings), hasMore)
	}

	setting, err := c.Settings.Get(ctx, "features.new_search")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if setting.Version != 3 {
		t.Errorf("Get: version = %d", setting.Version)
	}

	change, err := c.Settings.Update(ctx, "features.new_search", &UpdateSettingRequest{
		Value:           json.RawMessage(`true`),
		ValueType:       "boolean",
		ExpectedVersion: 3,
		Reason:          "A/B rollout",
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if change.VersionAfter != 4 {
		t.Errorf("Update: version_after = %d", change.VersionAfter)
	}

	change, err = c.Settings.Rollback(ctx, "features.new_search", &RollbackSettingRequest{ChangeID: 41})
	if err != nil {
		t.Fatalf("Rollback error: %v", err)
	}
	if change.Action != "rollback" || change.VersionAfter != 5 {
		t.Errorf("Rollback: change = %+v", change)
	}

	history, _, err := c.Settings.History(ctx, "features.new_search", 10, 0)
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(history) != 2 || history[0].ID != 42 {
		t.Errorf("History: got %+v", history)
	}
}

func TestUsers(t *testing.T) {
	role := "admin"
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/users/u-1": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, User{UID: "u-1", Status: "active", Role: &role})
		},
		"PUT /api/v1/users/u-1/status": func(w http.ResponseWriter, r *http.Request) {
			var req UpdateUserStatusRequest
			json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
			jsonResponse(w, 200, User{UID: "u-1", Status: req.Status})
		},
		"PUT /api/v1/users/u-1/role": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, User{UID: "u-1", Role: &role, UserType: "admin"})
		},
		"DELETE /api/v1/users/u-1/role": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("reason"); got != "offboarding" {
				t.Errorf("reason = %q", got)
			}
			jsonResponse(w, 200, User{UID: "u-1", UserType: "reader"})
		},
		"PUT /api/v1/users/u-1/author-status": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, User{UID: "u-1", AuthorStatus: "approved"})
		},
	})

	ctx := context.Background()

	user, err := c.Users.Get(ctx, "u-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if user.Role == nil || *user.Role != "admin" {
		t.Errorf("Get: role = %v", user.Role)
	}

	user, err = c.Users.UpdateStatus(ctx, "u-1", &UpdateUserStatusRequest{Status: "suspended", Reason: "abuse"})
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if user.Status != "suspended" {
		t.Errorf("UpdateStatus: status = %q", user.Status)
	}

	if _, err = c.Users.AssignRole(ctx, "u-1", &AssignRoleRequest{Role: "admin"}); err != nil {
		t.Fatalf("AssignRole error: %v", err)
	}

	user, err = c.Users.RevokeRole(ctx, "u-1", "offboarding")
	if err != nil {
		t.Fatalf("RevokeRole error: %v", err)
	}
	if user.Role != nil || user.UserType != "reader" {
		t.Errorf("RevokeRole: user = %+v", user)
	}

	user, err = c.Users.UpdateAuthorStatus(ctx, "u-1", &UpdateAuthorStatusRequest{Status: "approved"})
	if err != nil {
		t.Fatalf("UpdateAuthorStatus error: %v", err)
	}
	if user.AuthorStatus != "approved" {
		t.Errorf("UpdateAuthorStatus: author_status = %q", user.AuthorStatus)
	}
}

func TestAuditQuery(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/audit": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("action") != "revoke_role" || q.Get("limit") != "25" {
				t.Errorf("query = %v", q)
			}
			jsonResponse(w, 200, map[string]any{
				"data":     []AuditEntry{{ID: 9, Action: "revoke_role"}},
				"has_more": false,
			})
		},
	})

	entries, hasMore, err := c.Audit.Query(context.Background(), &AuditQueryOptions{
		Action: "revoke_role",
		Limit:  25,
	})
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != 9 || hasMore {
		t.Errorf("entries = %+v, hasMore = %v", entries, hasMore)
	}
}

func TestAPIErrorParsing(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"PUT /api/v1/settings/locked": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 409, map[string]string{
				"code":       "conflict",
				"message":    "setting changed since you loaded it — reload and retry",
				"request_id": "req-1",
			})
		},
		"GET /api/v1/settings/ghost": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 404, map[string]string{"code": "not_found", "message": "setting not found"})
		},
	})

	ctx := context.Background()

	_, err := c.Settings.Update(ctx, "locked", &UpdateSettingRequest{
		Value:     json.RawMessage(`1`),
		ValueType: "number",
	})
	if !IsConflict(err) {
		t.Errorf("expected conflict, got %v", err)
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.Code != "conflict" || apiErr.RequestID != "req-1" {
		t.Errorf("apiErr = %+v", apiErr)
	}

	_, err = c.Settings.Get(ctx, "ghost")
	if !IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
	if IsConflict(err) || IsRateLimited(err) {
		t.Error("predicates must not overlap")
	}
}
