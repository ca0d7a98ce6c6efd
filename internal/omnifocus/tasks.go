package omnifocus

import (
	"fmt"

	"omnibridge/internal/script"
)

// ListTasks returns tasks matching the filter. Completed tasks are excluded
// unless the filter asks for them.
func (c *Client) ListTasks(filter TaskFilter) ([]Task, error) {
	var b script.Builder
	b.Line(jsTaskSerializer)
	b.Line("let tasks = flattenedTasks;")

	if filter.Inbox {
		b.Line("tasks = tasks.filter(t => t.inInbox);")
	}
	if !filter.Completed {
		b.Line("tasks = tasks.filter(t => !t.completed);")
	}
	if filter.Flagged {
		b.Line("tasks = tasks.filter(t => t.flagged);")
	}
	if filter.Available {
		b.Line("tasks = tasks.filter(t => t.taskStatus === Task.Status.Available || t.taskStatus === Task.Status.Next || t.taskStatus === Task.Status.DueSoon || t.taskStatus === Task.Status.Overdue);")
	}
	if filter.ProjectName != "" {
		b.Linef("tasks = tasks.filter(t => t.containingProject && t.containingProject.name === %s);", script.Quote(filter.ProjectName))
	}
	if filter.TagName != "" {
		b.Linef("tasks = tasks.filter(t => t.tags.some(tag => tag.name === %s));", script.Quote(filter.TagName))
	}
	if filter.Search != "" {
		b.Linef("const needle = %s.toLowerCase();", script.Quote(filter.Search))
		b.Line("tasks = tasks.filter(t => t.name.toLowerCase().includes(needle) || (t.note || \"\").toLowerCase().includes(needle));")
	}
	if !filter.DueBefore.IsZero() {
		b.Linef("const dueBefore = %s;", script.QuoteDate(filter.DueBefore))
		b.Line("tasks = tasks.filter(t => t.dueDate && t.dueDate < dueBefore);")
	}
	if !filter.DueAfter.IsZero() {
		b.Linef("const dueAfter = %s;", script.QuoteDate(filter.DueAfter))
		b.Line("tasks = tasks.filter(t => t.dueDate && t.dueDate > dueAfter);")
	}

	b.Line("return tasks.map(taskJSON);")

	var tasks []Task
	if err := c.runJSON("task.list", b.String(), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask retrieves a single task by its identifier.
func (c *Client) GetTask(id string) (*Task, error) {
	if id == "" {
		return nil, &Error{Op: "task.get", Err: fmt.Errorf("task id cannot be empty")}
	}

	var b script.Builder
	b.Line(jsTaskSerializer)
	b.Line(jsFindTask)
	b.Linef("return taskJSON(findTask(%s));", script.Quote(id))

	var task Task
	if err := c.runJSON("task.get", b.String(), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// AddTask creates a new task. Without a project or parent the task lands in
// the inbox. Missing tags are created on the fly.
func (c *Client) AddTask(input TaskInput) (*Task, error) {
	if input.Name == "" {
		return nil, &Error{Op: "task.add", Err: fmt.Errorf("task name cannot be empty")}
	}
	if input.Repetition != nil {
		if err := input.Repetition.Validate(); err != nil {
			return nil, &Error{Op: "task.add", Err: err}
		}
	}

	var b script.Builder
	b.Line(jsTaskSerializer)
	switch {
	case input.ParentID != "":
		b.Line(jsFindTask)
		b.Linef("const parent = findTask(%s);", script.Quote(input.ParentID))
		b.Linef("const t = new Task(%s, parent);", script.Quote(input.Name))
	case input.ProjectName != "":
		b.Line(jsFindProjectByName)
		b.Linef("const project = findProjectByName(%s);", script.Quote(input.ProjectName))
		b.Linef("const t = new Task(%s, project);", script.Quote(input.Name))
	default:
		b.Linef("const t = new Task(%s, inbox.ending);", script.Quote(input.Name))
	}

	c.applyTaskAttributes(&b, input, false)
	b.Line("return taskJSON(t);")

	var task Task
	if err := c.runJSON("task.add", b.String(), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// EditTask applies a partial update to an existing task. Empty input fields
// leave the corresponding attribute unchanged; the Clear* flags drop it.
func (c *Client) EditTask(id string, input TaskInput) (*Task, error) {
	if id == "" {
		return nil, &Error{Op: "task.edit", Err: fmt.Errorf("task id cannot be empty")}
	}
	if input.Repetition != nil {
		if err := input.Repetition.Validate(); err != nil {
			return nil, &Error{Op: "task.edit", Err: err}
		}
	}

	var b script.Builder
	b.Line(jsTaskSerializer)
	b.Line(jsFindTask)
	b.Linef("const t = findTask(%s);", script.Quote(id))

	if input.Name != "" {
		b.Linef("t.name = %s;", script.Quote(input.Name))
	}
	c.applyTaskAttributes(&b, input, true)
	if input.ClearDueDate {
		b.Line("t.dueDate = null;")
	}
	if input.ClearDeferDate {
		b.Line("t.deferDate = null;")
	}
	if input.ClearRepetition {
		b.Line("t.repetitionRule = null;")
	}
	b.Line("return taskJSON(t);")

	var task Task
	if err := c.runJSON("task.edit", b.String(), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// applyTaskAttributes emits the attribute assignments shared by AddTask and
// EditTask. Empty values emit nothing, which means "unset" on create and
// "unchanged" on edit. On edit the supplied tags replace the task's current
// set, so replaceTags drops the existing tags first.
func (c *Client) applyTaskAttributes(b *script.Builder, input TaskInput, replaceTags bool) {
	if input.Note != "" {
		b.Linef("t.note = %s;", script.Quote(input.Note))
	}
	if !input.DueDate.IsZero() {
		b.Linef("t.dueDate = %s;", script.QuoteDate(input.DueDate))
	}
	if !input.DeferDate.IsZero() {
		b.Linef("t.deferDate = %s;", script.QuoteDate(input.DeferDate))
	}
	if input.FlaggedSet {
		b.Linef("t.flagged = %s;", script.Bool(input.Flagged))
	}
	if input.EstimatedMinutes > 0 {
		b.Linef("t.estimatedMinutes = %s;", script.Int(input.EstimatedMinutes))
	}
	if len(input.Tags) > 0 {
		b.Line(jsEnsureTag)
		if replaceTags {
			b.Line("t.removeTags(t.tags);")
		}
		b.Linef("t.addTags(%s.map(ensureTag));", script.StringArray(input.Tags))
	}
	if input.Repetition != nil {
		b.Linef("t.repetitionRule = %s;", input.Repetition.OmniJS())
	}
}

// CompleteTask marks a task as completed.
func (c *Client) CompleteTask(id string) (*Task, error) {
	if id == "" {
		return nil, &Error{Op: "task.complete", Err: fmt.Errorf("task id cannot be empty")}
	}

	var b script.Builder
	b.Line(jsTaskSerializer)
	b.Line(jsFindTask)
	b.Linef("const t = findTask(%s);", script.Quote(id))
	b.Line("t.markComplete();")
	b.Line("return taskJSON(t);")

	var task Task
	if err := c.runJSON("task.complete", b.String(), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// RemoveTask deletes a task from the database.
func (c *Client) RemoveTask(id string) error {
	if id == "" {
		return &Error{Op: "task.remove", Err: fmt.Errorf("task id cannot be empty")}
	}

	var b script.Builder
	b.Line(jsFindTask)
	b.Linef("deleteObject(findTask(%s));", script.Quote(id))
	b.Linef("return {id: %s};", script.Quote(id))

	return c.runJSON("task.remove", b.String(), nil)
}

// MoveTask moves a task to another project, under another task, or back to
// the inbox when both targets are empty.
func (c *Client) MoveTask(id, projectName, parentID string) (*Task, error) {
	if id == "" {
		return nil, &Error{Op: "task.move", Err: fmt.Errorf("task id cannot be empty")}
	}
	if projectName != "" && parentID != "" {
		return nil, &Error{Op: "task.move", Err: fmt.Errorf("specify either a project or a parent task, not both")}
	}

	var b script.Builder
	b.Line(jsTaskSerializer)
	b.Line(jsFindTask)
	b.Linef("const t = findTask(%s);", script.Quote(id))
	switch {
	case parentID != "":
		b.Linef("const parent = findTask(%s);", script.Quote(parentID))
		b.Line("moveTasks([t], parent.ending);")
	case projectName != "":
		b.Line(jsFindProjectByName)
		b.Linef("const project = findProjectByName(%s);", script.Quote(projectName))
		b.Line("moveTasks([t], project.ending);")
	default:
		b.Line("moveTasks([t], inbox.ending);")
	}
	b.Line("return taskJSON(t);")

	var task Task
	if err := c.runJSON("task.move", b.String(), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DuplicateTask creates count copies of a task next to the original. Copies
// are suffixed " copy", " copy 2", and so on.
func (c *Client) DuplicateTask(id string, count int) ([]Task, error) {
	if id == "" {
		return nil, &Error{Op: "task.duplicate", Err: fmt.Errorf("task id cannot be empty")}
	}
	if count < 1 {
		return nil, &Error{Op: "task.duplicate", Err: fmt.Errorf("count must be at least 1, got %d", count)}
	}

	var b script.Builder
	b.Line(jsTaskSerializer)
	b.Line(jsFindTask)
	b.Linef("const t = findTask(%s);", script.Quote(id))
	b.Line("const position = t.containingProject ? t.containingProject.ending : inbox.ending;")
	b.Line("const copies = [];")
	b.Linef("for (let i = 0; i < %s; i++) {", script.Int(count))
	b.In()
	b.Line("const dup = duplicateTasks([t], position)[0];")
	b.Line("dup.name = t.name + (i === 0 ? \" copy\" : \" copy \" + (i + 1));")
	b.Line("copies.push(taskJSON(dup));")
	b.Out()
	b.Line("}")
	b.Line("return copies;")

	var copies []Task
	if err := c.runJSON("task.duplicate", b.String(), &copies); err != nil {
		return nil, err
	}
	return copies, nil
}
