package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hagerehiwotlabs/contracts/pkg/contracts"
	"github.com/hagerehiwotlabs/contracts/pkg/contracts/client"
	"github.com/hagerehiwotlabs/contracts/pkg/contracts/generated"
)

// newServer serves the generated routes under the API base path.
func newServer(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	api := http.NewServeMux()
	for pattern, h := range routes {
		api.HandleFunc(pattern, h)
	}
	mux.Handle(contracts.APIBasePath+"/", http.StripPrefix(contracts.APIBasePath, api))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestExpand(t *testing.T) {
	method, path, err := client.Expand(generated.RouteListProjectTasks, client.Params{"projectId": "p 1"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, method)
	assert.Equal(t, "/projects/p%201/tasks", path)

	_, _, err = client.Expand(generated.RouteUpdateTask, nil)
	assert.ErrorContains(t, err, "missing parameter taskId")

	_, _, err = client.Expand("/health", nil)
	assert.ErrorContains(t, err, "has no method")
}

func TestLoginKeepsToken(t *testing.T) {
	srv := newServer(t, map[string]http.HandlerFunc{
		generated.RouteLogin: func(w http.ResponseWriter, r *http.Request) {
			var req contracts.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "a@example.com", req.Email)
			writeJSON(w, http.StatusOK, contracts.AuthResponse{
				Token: "tok",
				User:  contracts.User{ID: "u1", Email: req.Email, Name: "A", CreatedAt: time.Unix(0, 0).UTC()},
			})
		},
		generated.RouteGetCurrentUser: func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, contracts.User{ID: "u1"})
		},
		generated.RouteLogout: func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
	})

	c := client.New(srv.URL + "/")
	ctx := context.Background()

	auth, err := c.Login(ctx, contracts.LoginRequest{Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "u1", auth.User.ID)
	assert.Equal(t, "tok", c.Token)

	me, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", me.ID)

	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.Token)
}

func TestListProjectTasksQuery(t *testing.T) {
	srv := newServer(t, map[string]http.HandlerFunc{
		generated.RouteListProjectTasks: func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "p1", r.PathValue("projectId"))
			assert.Equal(t, "DONE", r.URL.Query().Get("status"))
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Empty(t, r.URL.Query().Get("limit"))
			writeJSON(w, http.StatusOK, contracts.PaginatedTasks{
				Data:       []contracts.Task{{ID: "t1", Status: generated.TaskStatusDone}},
				Pagination: contracts.Pagination{Page: 2, Limit: 20, Pages: 2, Total: 21},
			})
		},
	})

	c := client.New(srv.URL, client.WithToken("tok"), client.WithTimeout(5*time.Second))
	out, err := c.ListProjectTasks(context.Background(), "p1", generated.TaskStatusDone, client.Page{Page: 2})
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, generated.TaskStatusDone, out.Data[0].Status)
	assert.Equal(t, int64(21), out.Pagination.Total)
}

func TestDeleteTaskNoContent(t *testing.T) {
	var deleted string
	srv := newServer(t, map[string]http.HandlerFunc{
		generated.RouteDeleteTask: func(w http.ResponseWriter, r *http.Request) {
			deleted = r.PathValue("taskId")
			w.WriteHeader(http.StatusNoContent)
		},
	})

	require.NoError(t, client.New(srv.URL).DeleteTask(context.Background(), "t9"))
	assert.Equal(t, "t9", deleted)
}

func TestAPIError(t *testing.T) {
	code := "PROJECT_NOT_FOUND"
	srv := newServer(t, map[string]http.HandlerFunc{
		generated.RouteGetProject: func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusNotFound, contracts.Error{Error: "Not Found", Message: "project not found", Code: &code})
		},
		generated.RouteGetHealth: func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		},
	})
	c := client.New(srv.URL)

	_, err := c.GetProject(context.Background(), "missing")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "PROJECT_NOT_FOUND", apiErr.Code)
	assert.Equal(t, "api 404: project not found (PROJECT_NOT_FOUND)", err.Error())

	_, err = c.Health(context.Background())
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "api 503: Service Unavailable", err.Error())
}
