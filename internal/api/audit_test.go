package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/folioreads/folio-admin/internal/api"
	"github.com/folioreads/folio-admin/internal/models"
	"github.com/folioreads/folio-admin/internal/rbac"
)

func TestAuditQuery_SuperAdmin(t *testing.T) {
	t.Parallel()

	svc := &mockAuditSvc{
		queryFn: func(_ context.Context, actor models.Actor, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error) {
			if actor.Role != rbac.RoleSuperAdmin {
				t.Errorf("actor role = %q", actor.Role)
			}
			if opts.Action != "setting_update" || opts.Limit != 10 {
				t.Errorf("opts = %+v", opts)
			}
			return []models.AuditEntry{
				{ID: 2, Action: "setting_update", CreatedAt: time.Now()},
				{ID: 1, Action: "setting_update", CreatedAt: time.Now().Add(-time.Minute)},
			}, true, nil
		},
	}

	r := newTestRouter(testSuperAdmin())
	h := api.NewAuditHandler(svc, testLogger())
	r.GET("/audit", h.Query)

	w := doRequest(r, http.MethodGet, "/audit?action=setting_update&limit=10", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data    []models.AuditEntry `json:"data"`
		HasMore bool                `json:"has_more"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(resp.Data) != 2 || resp.Data[0].ID != 2 || !resp.HasMore {
		t.Errorf("resp = %+v", resp)
	}
}

func TestAuditQuery_AdminForbidden(t *testing.T) {
	t.Parallel()

	svc := &mockAuditSvc{
		queryFn: func(_ context.Context, _ models.Actor, _ models.AuditQueryOpts) ([]models.AuditEntry, bool, error) {
			return nil, false, models.ErrForbidden
		},
	}

	r := newTestRouter(testAdmin())
	h := api.NewAuditHandler(svc, testLogger())
	r.GET("/audit", h.Query)

	w := doRequest(r, http.MethodGet, "/audit", "")

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuditQuery_BadSince(t *testing.T) {
	t.Parallel()

	r := newTestRouter(testSuperAdmin())
	h := api.NewAuditHandler(&mockAuditSvc{}, testLogger())
	r.GET("/audit", h.Query)

	w := doRequest(r, http.MethodGet, "/audit?since=yesterday", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuditQuery_TimeWindow(t *testing.T) {
	t.Parallel()

	svc := &mockAuditSvc{
		queryFn: func(_ context.Context, _ models.Actor, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error) {
			if opts.Since == nil || opts.Until == nil {
				t.Error("expected both since and until to be set")
			}
			return nil, false, nil
		},
	}

	r := newTestRouter(testSuperAdmin())
	h := api.NewAuditHandler(svc, testLogger())
	r.GET("/audit", h.Query)

	w := doRequest(r, http.MethodGet,
		"/audit?since=2026-08-01T00:00:00Z&until=2026-08-25T00:00:00Z", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
