package omnifocus

import (
	"fmt"
	"time"

	"omnibridge/internal/script"
)

// Task is a snapshot of an OmniFocus task as reported by a script.
type Task struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Note             string    `json:"note,omitempty"`
	Flagged          bool      `json:"flagged"`
	Completed        bool      `json:"completed"`
	Dropped          bool      `json:"dropped,omitempty"`
	DueDate          time.Time `json:"dueDate,omitzero"`
	DeferDate        time.Time `json:"deferDate,omitzero"`
	CompletionDate   time.Time `json:"completionDate,omitzero"`
	EstimatedMinutes int       `json:"estimatedMinutes,omitempty"`
	Tags             []string  `json:"tags,omitempty"`
	ProjectID        string    `json:"projectId,omitempty"`
	ProjectName      string    `json:"projectName,omitempty"`
	ParentID         string    `json:"parentId,omitempty"`
	InInbox          bool      `json:"inInbox,omitempty"`
	Sequential       bool      `json:"sequential,omitempty"`
	RepetitionRule   string    `json:"repetitionRule,omitempty"`
	Children         []Task    `json:"children,omitempty"`
}

// Project is a snapshot of an OmniFocus project.
type Project struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Note       string    `json:"note,omitempty"`
	Status     string    `json:"status"`
	FolderID   string    `json:"folderId,omitempty"`
	FolderName string    `json:"folderName,omitempty"`
	Sequential bool      `json:"sequential,omitempty"`
	Flagged    bool      `json:"flagged,omitempty"`
	DueDate    time.Time `json:"dueDate,omitzero"`
	DeferDate  time.Time `json:"deferDate,omitzero"`
	TaskCount  int       `json:"taskCount"`
	Tasks      []Task    `json:"tasks,omitempty"`
}

// Folder is a snapshot of an OmniFocus folder.
type Folder struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	ParentID string    `json:"parentId,omitempty"`
	Path     string    `json:"path"`
	Status   string    `json:"status"`
	Folders  []Folder  `json:"folders,omitempty"`
	Projects []Project `json:"projects,omitempty"`
}

// Tag is a snapshot of an OmniFocus tag.
type Tag struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	ParentID           string `json:"parentId,omitempty"`
	Path               string `json:"path"`
	Status             string `json:"status,omitempty"`
	AvailableTaskCount int    `json:"availableTaskCount"`
	Children           []Tag  `json:"children,omitempty"`
}

// Perspective describes a built-in or custom OmniFocus perspective.
type Perspective struct {
	Name       string `json:"name"`
	BuiltIn    bool   `json:"builtIn"`
	Identifier string `json:"identifier,omitempty"`
}

// DatabaseDump is a hierarchical snapshot of the whole database.
type DatabaseDump struct {
	Folders []Folder  `json:"folders"`
	Orphans []Project `json:"orphans,omitempty"` // projects outside any folder
	Inbox   []Task    `json:"inbox,omitempty"`
	Tags    []Tag     `json:"tags,omitempty"`
}

// Summary holds per-entity counts and the application version.
type Summary struct {
	AppVersion   string `json:"appVersion"`
	TaskCount    int    `json:"taskCount"`
	InboxCount   int    `json:"inboxCount"`
	ProjectCount int    `json:"projectCount"`
	FolderCount  int    `json:"folderCount"`
	TagCount     int    `json:"tagCount"`
}

// Project status values accepted by SetProjectStatus and ProjectFilter.
const (
	ProjectActive  = "active"
	ProjectOnHold  = "on-hold"
	ProjectDone    = "done"
	ProjectDropped = "dropped"
)

// TaskInput carries the fields for creating or editing a task.
// Zero values leave the corresponding attribute unset (create) or unchanged
// (edit); the Clear* flags drop an attribute on edit.
type TaskInput struct {
	Name             string
	Note             string
	ProjectName      string // target project by name; empty means inbox on create
	ParentID         string // parent task for subtask creation
	Tags             []string
	DueDate          time.Time
	DeferDate        time.Time
	Flagged          bool
	FlaggedSet       bool // distinguishes "set to false" from "unchanged"
	EstimatedMinutes int
	Repetition       *script.RepetitionRule
	ClearDueDate     bool
	ClearDeferDate   bool
	ClearRepetition  bool
}

// ProjectInput carries the fields for creating or editing a project.
type ProjectInput struct {
	Name       string
	Note       string
	FolderPath string // " / "-separated; intermediate folders are created
	Sequential bool
	DueDate    time.Time
	DeferDate  time.Time
	Repetition *script.RepetitionRule
}

// TaskFilter narrows ListTasks output. Zero-value fields do not filter.
type TaskFilter struct {
	Inbox       bool
	Flagged     bool
	Available   bool // skip completed, dropped, and blocked tasks
	Completed   bool // include completed tasks (excluded by default)
	ProjectName string
	TagName     string
	Search      string // case-insensitive substring match on name and note
	DueBefore   time.Time
	DueAfter    time.Time
}

// ProjectFilter narrows ListProjects output.
type ProjectFilter struct {
	Status     string // one of the Project* constants, or empty for all
	FolderName string
}

// DumpOptions controls DumpDatabase output size.
type DumpOptions struct {
	IncludeCompleted bool
	MaxDepth         int // task nesting depth; 0 means unlimited
}

// Error is the error type for all client operations. It wraps subprocess
// failures and script-reported errors alike.
type Error struct {
	// Op is the operation that failed (e.g., "task.add", "database.dump").
	Op string

	// Stderr holds any diagnostic output from osascript.
	Stderr string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("omnifocus %s: %v (stderr: %s)", e.Op, e.Err, e.Stderr)
	}
	return fmt.Sprintf("omnifocus %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface.
func (e *Error) Unwrap() error {
	return e.Err
}
