package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/alexanderramin/okrtree/internal/domain"
)

// AuthResponse is the payload returned by a successful login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Register creates a new user account. No credential is attached; this and
// Login are the only unauthenticated calls.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, "users.register", http.MethodPost, "/users/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and stores the returned token on the client for
// subsequent requests.
func (c *Client) Login(ctx context.Context, empID, password string) (*AuthResponse, error) {
	body := map[string]string{"empId": empID, "password": password}
	var out AuthResponse
	if err := c.do(ctx, "users.login", http.MethodPost, "/users/login", body, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

// User fetches a user profile by employee ID.
func (c *Client) User(ctx context.Context, empID string) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, "users.get", http.MethodGet, "/users/"+url.PathEscape(empID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser updates a user's editable profile fields.
func (c *Client) UpdateUser(ctx context.Context, empID string, in UserUpdateInput) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, "users.update", http.MethodPut, "/users/"+url.PathEscape(empID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserTasks lists every task assigned to the given user.
func (c *Client) UserTasks(ctx context.Context, empID string) ([]domain.Task, error) {
	var out []domain.Task
	if err := c.do(ctx, "users.tasks", http.MethodGet, "/users/"+url.PathEscape(empID)+"/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UsersMap returns the empId to display-name mapping used for assignee
// labels.
func (c *Client) UsersMap(ctx context.Context) (domain.UsersMap, error) {
	var out domain.UsersMap
	if err := c.do(ctx, "users.map", http.MethodGet, "/users/empid-name-map", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
