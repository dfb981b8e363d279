// Package directory implements the HTTP adapter for the membership directory
// API, the external system of record for users, groups, and invitations.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"groupinvites/internal/domain"
)

type httpDirectoryClient struct {
	client  *http.Client
	baseURL string
	token   string
	timeout time.Duration
}

// NewHTTPClient returns a DirectoryClient that calls the directory REST API at
// baseURL, authenticating every request with the static bearer token. Each
// call runs under its own deadline of timeout; expiry is reported as
// domain.ErrDirectoryTimeout.
func NewHTTPClient(client *http.Client, baseURL, token string, timeout time.Duration) domain.DirectoryClient {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpDirectoryClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		timeout: timeout,
	}
}

// The directory wraps every response body in a data envelope.
type invitationListEnvelope struct {
	Data []*domain.Invitation `json:"data"`
}

type groupEnvelope struct {
	Data *domain.Group `json:"data"`
}

type userEnvelope struct {
	Data *domain.User `json:"data"`
}

type createInvitationRequest struct {
	RoleID   string   `json:"roleID"`
	GroupIDs []string `json:"groupIDs"`
}

func (c *httpDirectoryClient) ListInvitations(ctx context.Context) ([]*domain.Invitation, error) {
	var env invitationListEnvelope
	if err := c.do(ctx, http.MethodGet, "/invitations", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *httpDirectoryClient) GetGroup(ctx context.Context, groupID string) (*domain.Group, error) {
	var env groupEnvelope
	if err := c.do(ctx, http.MethodGet, "/groups/"+url.PathEscape(groupID), nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, domain.ErrNotFound
	}
	return env.Data, nil
}

func (c *httpDirectoryClient) CreateInvitation(ctx context.Context, roleID string, groupIDs []string) error {
	body := createInvitationRequest{RoleID: roleID, GroupIDs: groupIDs}
	return c.do(ctx, http.MethodPost, "/invitations", body, nil)
}

func (c *httpDirectoryClient) UpdateInvitation(ctx context.Context, invitationID string, params domain.UpdateInvitationParams) error {
	return c.do(ctx, http.MethodPut, "/invitations/"+url.PathEscape(invitationID), params, nil)
}

func (c *httpDirectoryClient) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var env userEnvelope
	path := "/users/find?email=" + url.QueryEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, domain.ErrNotFound
	}
	return env.Data, nil
}

// do issues one request under the per-call deadline and decodes the JSON
// response into out when out is non-nil. 404 maps to domain.ErrNotFound and a
// missed deadline to domain.ErrDirectoryTimeout.
func (c *httpDirectoryClient) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s %s: %w", method, path, domain.ErrDirectoryTimeout)
		}
		return fmt.Errorf("failed to call directory: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("directory api returned status: %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode directory response: %w", err)
	}
	return nil
}
