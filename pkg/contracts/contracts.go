// Package contracts is the public surface of the API contract: the schema
// types shared by the frontend and backend, plus a few API constants.
//
// The types are aliases of the generated package so that consumers import
// one stable path while generated code can be regenerated freely.
package contracts

import "github.com/hagerehiwotlabs/contracts/pkg/contracts/generated"

//go:generate go run ../../cmd/contracts -root ../.. generate

const (
	// ContractsVersion is the released version of this contract package.
	ContractsVersion = "1.0.0"
	// APIBasePath prefixes every route.
	APIBasePath = "/api/v1"
)

type (
	User                 = generated.User
	Project              = generated.Project
	Task                 = generated.Task
	TaskStatus           = generated.TaskStatus
	TaskPriority         = generated.TaskPriority
	RegisterRequest      = generated.RegisterRequest
	LoginRequest         = generated.LoginRequest
	AuthResponse         = generated.AuthResponse
	CreateProjectRequest = generated.CreateProjectRequest
	UpdateProjectRequest = generated.UpdateProjectRequest
	CreateTaskRequest    = generated.CreateTaskRequest
	UpdateTaskRequest    = generated.UpdateTaskRequest
	Error                = generated.Error
	ValidationError      = generated.ValidationError
	HealthResponse       = generated.HealthResponse
	Pagination           = generated.Pagination
	PaginatedProjects    = generated.PaginatedProjects
	PaginatedTasks       = generated.PaginatedTasks
)

// Path returns route joined to APIBasePath.
func Path(route string) string {
	return APIBasePath + route
}
