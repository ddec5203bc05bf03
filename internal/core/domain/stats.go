package domain

import "time"

// AuditEntry records one admin mutation.
type AuditEntry struct {
	ActorID  string            `bson:"actor_id"`
	Action   string            `bson:"action"`
	TargetID string            `bson:"target_id"`
	Details  map[string]string `bson:"details,omitempty"`
	At       time.Time         `bson:"at"`
}

// Audit actions.
const (
	AuditUserCreated = "user.created"
	AuditUserUpdated = "user.updated"
	AuditRoleChanged = "user.role_changed"
	AuditUserDeleted = "user.deleted"
)

// TopUser is a row of the "most active users" table.
type TopUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	TodoCount int64  `json:"todoCount"`
}

// UserStats aggregates account figures for the admin dashboard.
type UserStats struct {
	Total              int64            `json:"total"`
	Recent             int64            `json:"recent"`
	ByRole             map[string]int64 `json:"byRole"`
	Top                []TopUser        `json:"top"`
	DailyRegistrations map[string]int64 `json:"dailyRegistrations"`
}

// TodoStats aggregates task figures for the admin dashboard.
type TodoStats struct {
	Total         int64            `json:"total"`
	Completed     int64            `json:"completed"`
	Pending       int64            `json:"pending"`
	Recent        int64            `json:"recent"`
	ByPriority    map[string]int64 `json:"byPriority"`
	DailyCreation map[string]int64 `json:"dailyCreation"`
}

// SystemStats holds derived ratios.
type SystemStats struct {
	CompletionRate      int64 `json:"completionRate"`
	AverageTodosPerUser int64 `json:"averageTodosPerUser"`
}

// AdminStats is the payload of the admin statistics endpoint.
type AdminStats struct {
	Users  UserStats   `json:"users"`
	Todos  TodoStats   `json:"todos"`
	System SystemStats `json:"system"`
}

// DashboardSummary is the per-user overview shown on the dashboard home.
type DashboardSummary struct {
	Total               int64 `json:"total"`
	Completed           int64 `json:"completed"`
	Pending             int64 `json:"pending"`
	HighPriorityPending int64 `json:"highPriorityPending"`
}
