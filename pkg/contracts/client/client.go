// Package client provides a typed Go client for the task API, built on the
// generated contract types and route constants.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hagerehiwotlabs/contracts/pkg/contracts"
	"github.com/hagerehiwotlabs/contracts/pkg/contracts/generated"
)

// APIError is returned when the API responds with a non-2xx status.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api %d: %s (%s)", e.Status, e.Message, e.Code)
}

// Client is a typed client for the task API.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// New creates a Client for the server at baseURL. Routes are resolved
// under contracts.APIBasePath.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Option configures the client.
type Option func(*Client)

// WithToken sets the bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.Token = token }
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTPClient.Timeout = d }
}

// Params fills the {name} segments of a route pattern.
type Params map[string]string

// Expand splits a route constant into its method and a concrete path.
func Expand(route string, params Params) (method, path string, err error) {
	method, pattern, ok := strings.Cut(route, " ")
	if !ok {
		return "", "", fmt.Errorf("route %q has no method", route)
	}

	segments := strings.Split(pattern, "/")
	for i, seg := range segments {
		if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
			continue
		}
		name := seg[1 : len(seg)-1]
		v, ok := params[name]
		if !ok || v == "" {
			return "", "", fmt.Errorf("route %q: missing parameter %s", route, name)
		}
		segments[i] = url.PathEscape(v)
	}
	return method, strings.Join(segments, "/"), nil
}

func (c *Client) do(ctx context.Context, route string, params Params, query url.Values, body, out any) error {
	method, path, err := Expand(route, params)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	target := c.BaseURL + contracts.Path(path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		var apiErr contracts.Error
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			e := &APIError{Status: resp.StatusCode, Message: apiErr.Message}
			if apiErr.Code != nil {
				e.Code = *apiErr.Code
			}
			return e
		}
		return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Page selects a page of a list endpoint. Zero values are omitted.
type Page struct {
	Page  int
	Limit int
}

func (p Page) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", fmt.Sprint(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", fmt.Sprint(p.Limit))
	}
	return q
}

// Register calls POST /auth/register.
func (c *Client) Register(ctx context.Context, req contracts.RegisterRequest) (*contracts.AuthResponse, error) {
	var out contracts.AuthResponse
	if err := c.do(ctx, generated.RouteRegister, nil, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login calls POST /auth/login and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, req contracts.LoginRequest) (*contracts.AuthResponse, error) {
	var out contracts.AuthResponse
	if err := c.do(ctx, generated.RouteLogin, nil, nil, req, &out); err != nil {
		return nil, err
	}
	c.Token = out.Token
	return &out, nil
}

// Logout calls POST /auth/logout and drops the token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, generated.RouteLogout, nil, nil, nil, nil); err != nil {
		return err
	}
	c.Token = ""
	return nil
}

// CurrentUser calls GET /auth/me.
func (c *Client) CurrentUser(ctx context.Context) (*contracts.User, error) {
	var out contracts.User
	if err := c.do(ctx, generated.RouteGetCurrentUser, nil, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProjects calls GET /projects.
func (c *Client) ListProjects(ctx context.Context, page Page) (*contracts.PaginatedProjects, error) {
	var out contracts.PaginatedProjects
	if err := c.do(ctx, generated.RouteListProjects, nil, page.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProject calls POST /projects.
func (c *Client) CreateProject(ctx context.Context, req contracts.CreateProjectRequest) (*contracts.Project, error) {
	var out contracts.Project
	if err := c.do(ctx, generated.RouteCreateProject, nil, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProject calls GET /projects/{id}.
func (c *Client) GetProject(ctx context.Context, id string) (*contracts.Project, error) {
	var out contracts.Project
	if err := c.do(ctx, generated.RouteGetProject, Params{"id": id}, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProject calls PATCH /projects/{id}.
func (c *Client) UpdateProject(ctx context.Context, id string, req contracts.UpdateProjectRequest) (*contracts.Project, error) {
	var out contracts.Project
	if err := c.do(ctx, generated.RouteUpdateProject, Params{"id": id}, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject calls DELETE /projects/{id}.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, generated.RouteDeleteProject, Params{"id": id}, nil, nil, nil)
}

// ListProjectTasks calls GET /projects/{projectId}/tasks. An empty status
// lists tasks in every state.
func (c *Client) ListProjectTasks(ctx context.Context, projectID string, status contracts.TaskStatus, page Page) (*contracts.PaginatedTasks, error) {
	q := page.values()
	if status != "" {
		q.Set("status", string(status))
	}
	var out contracts.PaginatedTasks
	if err := c.do(ctx, generated.RouteListProjectTasks, Params{"projectId": projectID}, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTask calls POST /projects/{projectId}/tasks.
func (c *Client) CreateTask(ctx context.Context, projectID string, req contracts.CreateTaskRequest) (*contracts.Task, error) {
	var out contracts.Task
	if err := c.do(ctx, generated.RouteCreateTask, Params{"projectId": projectID}, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTask calls PATCH /tasks/{taskId}.
func (c *Client) UpdateTask(ctx context.Context, taskID string, req contracts.UpdateTaskRequest) (*contracts.Task, error) {
	var out contracts.Task
	if err := c.do(ctx, generated.RouteUpdateTask, Params{"taskId": taskID}, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask calls DELETE /tasks/{taskId}.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.do(ctx, generated.RouteDeleteTask, Params{"taskId": taskID}, nil, nil, nil)
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (*contracts.HealthResponse, error) {
	var out contracts.HealthResponse
	if err := c.do(ctx, generated.RouteGetHealth, nil, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
