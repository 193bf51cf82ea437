package client

import (
	"context"
	"fmt"
	"net/url"
)

// UserService handles platform account administration.
type UserService struct {
	c *Client
}

// Get returns a single user by uid.
func (s *UserService) Get(ctx context.Context, uid string) (*User, error) {
	var user User
	if err := s.c.get(ctx, "/api/v1/users/"+url.PathEscape(uid), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateStatus sets the account standing (active, suspended, disabled).
func (s *UserService) UpdateStatus(ctx context.Context, uid string, req *UpdateUserStatusRequest) (*User, error) {
	var user User
	if err := s.c.put(ctx, fmt.Sprintf("/api/v1/users/%s/status", url.PathEscape(uid)), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// AssignRole grants a canonical admin role.
func (s *UserService) AssignRole(ctx context.Context, uid string, req *AssignRoleRequest) (*User, error) {
	var user User
	if err := s.c.put(ctx, fmt.Sprintf("/api/v1/users/%s/role", url.PathEscape(uid)), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RevokeRole removes any admin role; the account reverts to a reader.
func (s *UserService) RevokeRole(ctx context.Context, uid, reason string) (*User, error) {
	params := url.Values{}
	if reason != "" {
		params.Set("reason", reason)
	}
	var user User
	if err := s.c.del(ctx, fmt.Sprintf("/api/v1/users/%s/role", url.PathEscape(uid)), params, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateAuthorStatus moves an account through the author-approval workflow.
func (s *UserService) UpdateAuthorStatus(ctx context.Context, uid string, req *UpdateAuthorStatusRequest) (*User, error) {
	var user User
	if err := s.c.put(ctx, fmt.Sprintf("/api/v1/users/%s/author-status", url.PathEscape(uid)), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
