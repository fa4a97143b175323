// ABOUTME: User management and audit log endpoints of the inventory API
// ABOUTME: Log queries accept optional filters encoded as query parameters

package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// DefaultLogLimit is used by the by-action and by-user log queries
const DefaultLogLimit = 100

// Users calls GET /api/usuarios
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.Get(ctx, "/api/usuarios", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser calls POST /api/usuarios
func (c *Client) CreateUser(ctx context.Context, input UserInput) (*User, error) {
	var user User
	if err := c.Post(ctx, "/api/usuarios", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser calls PUT /api/usuarios/{id}
func (c *Client) UpdateUser(ctx context.Context, id int64, input UserUpdate) (*User, error) {
	var user User
	if err := c.Put(ctx, fmt.Sprintf("/api/usuarios/%d", id), input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser calls DELETE /api/usuarios/{id}
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/api/usuarios/%d", id))
}

// LogFilter narrows GET /api/userlogs. Zero fields are omitted.
type LogFilter struct {
	UserID   int64
	FromDate time.Time
	ToDate   time.Time
	Limit    int
}

// Query encodes the filter as URL query parameters
func (f LogFilter) Query() url.Values {
	q := url.Values{}
	if f.UserID != 0 {
		q.Set("userId", strconv.FormatInt(f.UserID, 10))
	}
	if !f.FromDate.IsZero() {
		q.Set("fromDate", f.FromDate.UTC().Format(time.RFC3339))
	}
	if !f.ToDate.IsZero() {
		q.Set("toDate", f.ToDate.UTC().Format(time.RFC3339))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// UserLogs calls GET /api/userlogs
func (c *Client) UserLogs(ctx context.Context, filter LogFilter) ([]UserLog, error) {
	path := "/api/userlogs"
	if q := filter.Query().Encode(); q != "" {
		path += "?" + q
	}
	var logs []UserLog
	if err := c.Get(ctx, path, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// UserLogsByAction calls GET /api/userlogs/by-action/{action}
func (c *Client) UserLogsByAction(ctx context.Context, action string, limit int) ([]UserLog, error) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	path := fmt.Sprintf("/api/userlogs/by-action/%s?limit=%d", url.PathEscape(action), limit)
	var logs []UserLog
	if err := c.Get(ctx, path, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// UserLogsByUser calls GET /api/userlogs/user/{id}
func (c *Client) UserLogsByUser(ctx context.Context, userID int64, limit int) ([]UserLog, error) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	path := fmt.Sprintf("/api/userlogs/user/%d?limit=%d", userID, limit)
	var logs []UserLog
	if err := c.Get(ctx, path, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
