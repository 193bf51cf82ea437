package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SettingService handles versioned platform settings.
type SettingService struct {
	c *Client
}

// settingListResponse wraps the paginated setting list response.
type settingListResponse struct {
	Settings []Setting `json:"settings"`
	HasMore  bool      `json:"has_more"`
}

// List returns settings with optional category filtering and pagination.
func (s *SettingService) List(ctx context.Context, opts *SettingListOptions) ([]Setting, bool, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Category != "" {
			params.Set("category", opts.Category)
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			params.Set("offset", strconv.Itoa(opts.Offset))
		}
	}
	var resp settingListResponse
	if err := s.c.get(ctx, "/api/v1/settings", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Settings, resp.HasMore, nil
}

// Get returns a single setting by key.
func (s *SettingService) Get(ctx context.Context, key string) (*Setting, error) {
	var setting Setting
	if err := s.c.get(ctx, "/api/v1/settings/"+url.PathEscape(key), nil, &setting); err != nil {
		return nil, err
	}
	return &setting, nil
}

// Update writes a new value for a setting. On a 409 the setting changed since
// the expected version was read; re-read and retry.
func (s *SettingService) Update(ctx context.Context, key string, req *UpdateSettingRequest) (*SettingChange, error) {
	var change SettingChange
	if err := s.c.put(ctx, "/api/v1/settings/"+url.PathEscape(key), req, &change); err != nil {
		return nil, err
	}
	return &change, nil
}

// Rollback restores the value captured by a prior history entry as a new
// version. History is never rewritten.
func (s *SettingService) Rollback(ctx context.Context, key string, req *RollbackSettingRequest) (*SettingChange, error) {
	var change SettingChange
	if err := s.c.post(ctx, fmt.Sprintf("/api/v1/settings/%s/rollback", url.PathEscape(key)), req, &change); err != nil {
		return nil, err
	}
	return &change, nil
}

// History returns a setting's change history, newest first.
func (s *SettingService) History(ctx context.Context, key string, limit, offset int) ([]SettingChange, bool, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	var resp struct {
		History []SettingChange `json:"history"`
		HasMore bool            `json:"has_more"`
	}
	if err := s.c.get(ctx, fmt.Sprintf("/api/v1/settings/%s/history", url.PathEscape(key)), params, &resp); err != nil {
		return nil, false, err
	}
	return resp.History, resp.HasMore, nil
}
