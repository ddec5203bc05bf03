package domain

import "time"

// Priority ranks how urgent a todo is.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Todo is a single task owned by one user.
type Todo struct {
	ID          string     `json:"id" bson:"_id"`
	UserID      string     `json:"userId" bson:"user_id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Priority    Priority   `json:"priority" bson:"priority"`
	DueDate     *time.Time `json:"dueDate" bson:"due_date,omitempty"`
	Tags        string     `json:"tags,omitempty" bson:"tags,omitempty"`
	Image       string     `json:"image,omitempty" bson:"image,omitempty"`
	Completed   bool       `json:"completed" bson:"completed"`
	CreatedAt   time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updated_at"`
}

// TodoFilter selects which of a user's todos to list.
type TodoFilter string

const (
	TodoFilterAll       TodoFilter = "all"
	TodoFilterCompleted TodoFilter = "completed"
	TodoFilterPending   TodoFilter = "pending"
)

// TodoPatch is a partial update of a todo. Nil fields are left unchanged.
// ClearDueDate removes the due date and takes precedence over DueDate.
type TodoPatch struct {
	Title        *string
	Description  *string
	Priority     *Priority
	DueDate      *time.Time
	ClearDueDate bool
	Tags         *string
	Image        *string
	Completed    *bool
}

// Apply copies the set fields of p onto t.
func (p TodoPatch) Apply(t *Todo) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.Tags != nil {
		t.Tags = *p.Tags
	}
	if p.Image != nil {
		t.Image = *p.Image
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
