package omnifocus

import (
	"fmt"

	"omnibridge/internal/script"
)

var projectStatusSelectors = map[string]string{
	ProjectActive:  "Project.Status.Active",
	ProjectOnHold:  "Project.Status.OnHold",
	ProjectDone:    "Project.Status.Done",
	ProjectDropped: "Project.Status.Dropped",
}

// ListProjects returns projects matching the filter.
func (c *Client) ListProjects(filter ProjectFilter) ([]Project, error) {
	if filter.Status != "" {
		if _, ok := projectStatusSelectors[filter.Status]; !ok {
			return nil, &Error{Op: "project.list", Err: fmt.Errorf("unknown project status %q (expected one of: active, on-hold, done, dropped)", filter.Status)}
		}
	}

	var b script.Builder
	b.Line(jsProjectSerializer)
	b.Line("let projects = flattenedProjects;")
	if filter.Status != "" {
		b.Linef("projects = projects.filter(p => p.status === %s);", projectStatusSelectors[filter.Status])
	}
	if filter.FolderName != "" {
		b.Linef("projects = projects.filter(p => p.parentFolder && p.parentFolder.name === %s);", script.Quote(filter.FolderName))
	}
	b.Line("return projects.map(projectJSON);")

	var projects []Project
	if err := c.runJSON("project.list", b.String(), &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject retrieves a single project by its identifier.
func (c *Client) GetProject(id string) (*Project, error) {
	if id == "" {
		return nil, &Error{Op: "project.get", Err: fmt.Errorf("project id cannot be empty")}
	}

	var b script.Builder
	b.Line(jsProjectSerializer)
	b.Line(jsFindProject)
	b.Linef("return projectJSON(findProject(%s));", script.Quote(id))

	var project Project
	if err := c.runJSON("project.get", b.String(), &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// AddProject creates a new project. A non-empty FolderPath places it inside
// that folder, creating intermediate folders as needed.
func (c *Client) AddProject(input ProjectInput) (*Project, error) {
	if input.Name == "" {
		return nil, &Error{Op: "project.add", Err: fmt.Errorf("project name cannot be empty")}
	}
	if input.Repetition != nil {
		if err := input.Repetition.Validate(); err != nil {
			return nil, &Error{Op: "project.add", Err: err}
		}
	}

	var b script.Builder
	b.Line(jsProjectSerializer)
	if input.FolderPath != "" {
		b.Line(jsEnsureFolderPath)
		b.Linef("const folder = ensureFolderPath(%s);", script.Quote(input.FolderPath))
		b.Linef("const p = new Project(%s, folder);", script.Quote(input.Name))
	} else {
		b.Linef("const p = new Project(%s);", script.Quote(input.Name))
	}

	if input.Note != "" {
		b.Linef("p.note = %s;", script.Quote(input.Note))
	}
	if input.Sequential {
		b.Line("p.sequential = true;")
	}
	if !input.DueDate.IsZero() {
		b.Linef("p.dueDate = %s;", script.QuoteDate(input.DueDate))
	}
	if !input.DeferDate.IsZero() {
		b.Linef("p.deferDate = %s;", script.QuoteDate(input.DeferDate))
	}
	if input.Repetition != nil {
		b.Linef("p.repetitionRule = %s;", input.Repetition.OmniJS())
	}
	b.Line("return projectJSON(p);")

	var project Project
	if err := c.runJSON("project.add", b.String(), &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// EditProject applies a partial update to an existing project.
func (c *Client) EditProject(id string, input ProjectInput) (*Project, error) {
	if id == "" {
		return nil, &Error{Op: "project.edit", Err: fmt.Errorf("project id cannot be empty")}
	}
	if input.Repetition != nil {
		if err := input.Repetition.Validate(); err != nil {
			return nil, &Error{Op: "project.edit", Err: err}
		}
	}

	var b script.Builder
	b.Line(jsProjectSerializer)
	b.Line(jsFindProject)
	b.Linef("const p = findProject(%s);", script.Quote(id))
	if input.Name != "" {
		b.Linef("p.name = %s;", script.Quote(input.Name))
	}
	if input.Note != "" {
		b.Linef("p.note = %s;", script.Quote(input.Note))
	}
	if input.FolderPath != "" {
		b.Line(jsEnsureFolderPath)
		b.Linef("moveSections([p], ensureFolderPath(%s));", script.Quote(input.FolderPath))
	}
	if !input.DueDate.IsZero() {
		b.Linef("p.dueDate = %s;", script.QuoteDate(input.DueDate))
	}
	if !input.DeferDate.IsZero() {
		b.Linef("p.deferDate = %s;", script.QuoteDate(input.DeferDate))
	}
	if input.Repetition != nil {
		b.Linef("p.repetitionRule = %s;", input.Repetition.OmniJS())
	}
	b.Line("return projectJSON(p);")

	var project Project
	if err := c.runJSON("project.edit", b.String(), &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// SetProjectStatus changes a project's status. Setting "done" also marks the
// project's remaining tasks complete, matching the application's behavior.
func (c *Client) SetProjectStatus(id, status string) (*Project, error) {
	if id == "" {
		return nil, &Error{Op: "project.setStatus", Err: fmt.Errorf("project id cannot be empty")}
	}
	selector, ok := projectStatusSelectors[status]
	if !ok {
		return nil, &Error{Op: "project.setStatus", Err: fmt.Errorf("unknown project status %q (expected one of: active, on-hold, done, dropped)", status)}
	}

	var b script.Builder
	b.Line(jsProjectSerializer)
	b.Line(jsFindProject)
	b.Linef("const p = findProject(%s);", script.Quote(id))
	if status == ProjectDone {
		b.Line("p.task.markComplete();")
	}
	b.Linef("p.status = %s;", selector)
	b.Line("return projectJSON(p);")

	var project Project
	if err := c.runJSON("project.setStatus", b.String(), &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// RemoveProject deletes a project and all of its tasks.
func (c *Client) RemoveProject(id string) error {
	if id == "" {
		return &Error{Op: "project.remove", Err: fmt.Errorf("project id cannot be empty")}
	}

	var b script.Builder
	b.Line(jsFindProject)
	b.Linef("deleteObject(findProject(%s));", script.Quote(id))
	b.Linef("return {id: %s};", script.Quote(id))

	return c.runJSON("project.remove", b.String(), nil)
}
