package omnifocus

import (
	"strings"
	"testing"
	"time"

	"omnibridge/internal/script"
)

// TestAddTaskValidation tests input validation before any script runs
func TestAddTaskValidation(t *testing.T) {
	tests := []struct {
		name      string
		input     TaskInput
		errString string
	}{
		{
			name:      "empty name",
			input:     TaskInput{},
			errString: "task name cannot be empty",
		},
		{
			name: "invalid repetition",
			input: TaskInput{
				Name:       "Water plants",
				Repetition: &script.RepetitionRule{Unit: "fortnights", Steps: 1},
			},
			errString: "unknown repetition unit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{stdout: envelope("{}")}
			c := newTestClient(r)

			_, err := c.AddTask(tt.input)
			if err == nil {
				t.Errorf("AddTask() expected error containing %q, got nil", tt.errString)
			} else if !strings.Contains(err.Error(), tt.errString) {
				t.Errorf("AddTask() error = %v, want error containing %q", err, tt.errString)
			}
			if r.src != "" {
				t.Error("AddTask() ran a script despite invalid input")
			}
		})
	}
}

// TestAddTaskPlacement tests the generated script for each placement target
func TestAddTaskPlacement(t *testing.T) {
	tests := []struct {
		name       string
		input      TaskInput
		wantInSrc  []string
		notWantSrc []string
	}{
		{
			name:       "inbox by default",
			input:      TaskInput{Name: "Buy milk"},
			wantInSrc:  []string{`new Task("Buy milk", inbox.ending)`},
			notWantSrc: []string{"findProjectByName", "findTask"},
		},
		{
			name:      "into a project",
			input:     TaskInput{Name: "Buy milk", ProjectName: "Errands"},
			wantInSrc: []string{`findProjectByName("Errands")`, `new Task("Buy milk", project)`},
		},
		{
			name:      "under a parent task",
			input:     TaskInput{Name: "Buy milk", ParentID: "t123"},
			wantInSrc: []string{`findTask("t123")`, `new Task("Buy milk", parent)`},
		},
		{
			name: "with attributes",
			input: TaskInput{
				Name:             "Buy milk",
				Note:             "2% please",
				Flagged:          true,
				FlaggedSet:       true,
				EstimatedMinutes: 15,
				Tags:             []string{"errand", "home"},
				DueDate:          time.Date(2026, 9, 1, 17, 0, 0, 0, time.UTC),
			},
			wantInSrc: []string{
				`t.note = "2% please";`,
				`t.flagged = true;`,
				`t.estimatedMinutes = 15;`,
				`t.addTags(["errand", "home"].map(ensureTag));`,
				`t.dueDate = new Date("2026-09-01T17:00:00Z");`,
			},
		},
		{
			name: "with repetition",
			input: TaskInput{
				Name:       "Water plants",
				Repetition: &script.RepetitionRule{Unit: script.UnitWeekly, Steps: 2},
			},
			wantInSrc: []string{`FREQ=WEEKLY;INTERVAL=2`, "Task.RepetitionMethod.Fixed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{stdout: envelope(`{"id":"t1","name":"Buy milk"}`)}
			c := newTestClient(r)

			if _, err := c.AddTask(tt.input); err != nil {
				t.Fatalf("AddTask() unexpected error = %v", err)
			}

			for _, want := range tt.wantInSrc {
				if !strings.Contains(r.src, want) {
					t.Errorf("AddTask() script missing %q", want)
				}
			}
			for _, notWant := range tt.notWantSrc {
				if strings.Contains(r.src, notWant) {
					t.Errorf("AddTask() script unexpectedly contains %q", notWant)
				}
			}
		})
	}
}

// TestAddTaskQuoting tests that hostile names cannot break out of the script
func TestAddTaskQuoting(t *testing.T) {
	r := &fakeRunner{stdout: envelope(`{"id":"t1"}`)}
	c := newTestClient(r)

	name := `"); app.quit(); ("`
	if _, err := c.AddTask(TaskInput{Name: name}); err != nil {
		t.Fatalf("AddTask() unexpected error = %v", err)
	}

	if strings.Contains(r.src, `"); app.quit(); ("`) {
		t.Error("AddTask() script contains unescaped input")
	}
}

// TestEditTaskClearFlags tests the attribute-clearing assignments
func TestEditTaskClearFlags(t *testing.T) {
	r := &fakeRunner{stdout: envelope(`{"id":"t1","name":"Buy milk"}`)}
	c := newTestClient(r)

	input := TaskInput{ClearDueDate: true, ClearDeferDate: true, ClearRepetition: true}
	if _, err := c.EditTask("t1", input); err != nil {
		t.Fatalf("EditTask() unexpected error = %v", err)
	}

	for _, want := range []string{
		"t.dueDate = null;",
		"t.deferDate = null;",
		"t.repetitionRule = null;",
	} {
		if !strings.Contains(r.src, want) {
			t.Errorf("EditTask() script missing %q", want)
		}
	}
}

// TestEditTaskReplacesTags tests that edit drops the current tags before
// adding the new set, while add does not
func TestEditTaskReplacesTags(t *testing.T) {
	r := &fakeRunner{stdout: envelope(`{"id":"t1","name":"Buy milk"}`)}
	c := newTestClient(r)

	if _, err := c.EditTask("t1", TaskInput{Tags: []string{"errand"}}); err != nil {
		t.Fatalf("EditTask() unexpected error = %v", err)
	}
	if !strings.Contains(r.src, "t.removeTags(t.tags);") {
		t.Error("EditTask() script missing removal of existing tags")
	}
	if !strings.Contains(r.src, `t.addTags(["errand"].map(ensureTag));`) {
		t.Error("EditTask() script missing tag addition")
	}

	if _, err := c.AddTask(TaskInput{Name: "Buy milk", Tags: []string{"errand"}}); err != nil {
		t.Fatalf("AddTask() unexpected error = %v", err)
	}
	if strings.Contains(r.src, "t.removeTags(t.tags);") {
		t.Error("AddTask() script should not remove tags from a fresh task")
	}
}

// TestEditTaskRequiresID tests the empty-id guard
func TestEditTaskRequiresID(t *testing.T) {
	c := newTestClient(&fakeRunner{stdout: envelope("{}")})

	if _, err := c.EditTask("", TaskInput{Name: "renamed"}); err == nil {
		t.Error("EditTask() expected error for empty id, got nil")
	}
}

// TestListTasksFilters tests filter-to-script translation
func TestListTasksFilters(t *testing.T) {
	tests := []struct {
		name      string
		filter    TaskFilter
		wantInSrc []string
	}{
		{
			name:      "default excludes completed",
			filter:    TaskFilter{},
			wantInSrc: []string{"tasks.filter(t => !t.completed)"},
		},
		{
			name:      "inbox and flagged",
			filter:    TaskFilter{Inbox: true, Flagged: true},
			wantInSrc: []string{"t.inInbox", "t.flagged"},
		},
		{
			name:      "project and tag",
			filter:    TaskFilter{ProjectName: "Errands", TagName: "home"},
			wantInSrc: []string{`t.containingProject.name === "Errands"`, `tag.name === "home"`},
		},
		{
			name:      "search",
			filter:    TaskFilter{Search: "Milk"},
			wantInSrc: []string{`const needle = "Milk".toLowerCase();`},
		},
		{
			name:      "due window",
			filter:    TaskFilter{DueBefore: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
			wantInSrc: []string{`const dueBefore = new Date("2026-09-01T00:00:00Z");`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{stdout: envelope("[]")}
			c := newTestClient(r)

			if _, err := c.ListTasks(tt.filter); err != nil {
				t.Fatalf("ListTasks() unexpected error = %v", err)
			}

			for _, want := range tt.wantInSrc {
				if !strings.Contains(r.src, want) {
					t.Errorf("ListTasks() script missing %q", want)
				}
			}
		})
	}
}

// TestListTasksDecoding tests payload decoding including dates
func TestListTasksDecoding(t *testing.T) {
	payload := `[{"id":"t1","name":"Buy milk","flagged":true,"completed":false,` +
		`"dueDate":"2026-09-01T17:00:00.000Z","tags":["errand"],` +
		`"projectId":"p1","projectName":"Errands","inInbox":false}]`
	c := newTestClient(&fakeRunner{stdout: envelope(payload)})

	tasks, err := c.ListTasks(TaskFilter{})
	if err != nil {
		t.Fatalf("ListTasks() unexpected error = %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("ListTasks() returned %d tasks, want 1", len(tasks))
	}

	task := tasks[0]
	if task.ID != "t1" || task.Name != "Buy milk" || !task.Flagged {
		t.Errorf("ListTasks() task = %+v", task)
	}
	wantDue := time.Date(2026, 9, 1, 17, 0, 0, 0, time.UTC)
	if !task.DueDate.Equal(wantDue) {
		t.Errorf("ListTasks() dueDate = %v, want %v", task.DueDate, wantDue)
	}
	if task.ProjectName != "Errands" {
		t.Errorf("ListTasks() projectName = %v, want Errands", task.ProjectName)
	}
}

// TestCompleteTask tests the completion script
func TestCompleteTask(t *testing.T) {
	r := &fakeRunner{stdout: envelope(`{"id":"t1","name":"Buy milk","completed":true}`)}
	c := newTestClient(r)

	task, err := c.CompleteTask("t1")
	if err != nil {
		t.Fatalf("CompleteTask() unexpected error = %v", err)
	}
	if !task.Completed {
		t.Error("CompleteTask() task not marked completed")
	}
	if !strings.Contains(r.src, "t.markComplete();") {
		t.Error("CompleteTask() script missing markComplete call")
	}
}

// TestRemoveTask tests deletion and its guard
func TestRemoveTask(t *testing.T) {
	r := &fakeRunner{stdout: envelope(`{"id":"t1"}`)}
	c := newTestClient(r)

	if err := c.RemoveTask("t1"); err != nil {
		t.Fatalf("RemoveTask() unexpected error = %v", err)
	}
	if !strings.Contains(r.src, `deleteObject(findTask("t1"));`) {
		t.Error("RemoveTask() script missing deleteObject call")
	}

	if err := c.RemoveTask(""); err == nil {
		t.Error("RemoveTask() expected error for empty id, got nil")
	}
}

// TestMoveTask tests target selection and the mutual-exclusion guard
func TestMoveTask(t *testing.T) {
	tests := []struct {
		name        string
		projectName string
		parentID    string
		wantInSrc   string
		wantErr     bool
	}{
		{
			name:        "to project",
			projectName: "Errands",
			wantInSrc:   "moveTasks([t], project.ending);",
		},
		{
			name:      "to parent",
			parentID:  "t99",
			wantInSrc: "moveTasks([t], parent.ending);",
		},
		{
			name:      "back to inbox",
			wantInSrc: "moveTasks([t], inbox.ending);",
		},
		{
			name:        "both targets rejected",
			projectName: "Errands",
			parentID:    "t99",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{stdout: envelope(`{"id":"t1"}`)}
			c := newTestClient(r)

			_, err := c.MoveTask("t1", tt.projectName, tt.parentID)
			if tt.wantErr {
				if err == nil {
					t.Error("MoveTask() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("MoveTask() unexpected error = %v", err)
			}
			if !strings.Contains(r.src, tt.wantInSrc) {
				t.Errorf("MoveTask() script missing %q", tt.wantInSrc)
			}
		})
	}
}

// TestDuplicateTask tests copy naming and the count guard
func TestDuplicateTask(t *testing.T) {
	r := &fakeRunner{stdout: envelope(`[{"id":"t2","name":"Buy milk copy"}]`)}
	c := newTestClient(r)

	copies, err := c.DuplicateTask("t1", 1)
	if err != nil {
		t.Fatalf("DuplicateTask() unexpected error = %v", err)
	}
	if len(copies) != 1 || copies[0].Name != "Buy milk copy" {
		t.Errorf("DuplicateTask() copies = %+v", copies)
	}
	if !strings.Contains(r.src, `" copy "`) || !strings.Contains(r.src, "duplicateTasks([t], position)") {
		t.Error("DuplicateTask() script missing duplication logic")
	}

	if _, err := c.DuplicateTask("t1", 0); err == nil {
		t.Error("DuplicateTask() expected error for zero count, got nil")
	}
}
