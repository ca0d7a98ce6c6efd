package omnifocus

import (
	"strings"
	"testing"
)

// TestFolderOperations tests folder script generation and guards
func TestFolderOperations(t *testing.T) {
	t.Run("add nested", func(t *testing.T) {
		r := &fakeRunner{stdout: envelope(`{"id":"f1","name":"House","path":"Home / House","status":"active"}`)}
		c := newTestClient(r)

		folder, err := c.AddFolder("House", "Home")
		if err != nil {
			t.Fatalf("AddFolder() unexpected error = %v", err)
		}
		if folder.Path != "Home / House" {
			t.Errorf("AddFolder() path = %v, want Home / House", folder.Path)
		}
		if !strings.Contains(r.src, `new Folder("House", parent.ending)`) {
			t.Error("AddFolder() script missing nested constructor")
		}
	})

	t.Run("move to root", func(t *testing.T) {
		r := &fakeRunner{stdout: envelope(`{"id":"f1","name":"House","path":"House","status":"active"}`)}
		c := newTestClient(r)

		if _, err := c.MoveFolder("f1", ""); err != nil {
			t.Fatalf("MoveFolder() unexpected error = %v", err)
		}
		if !strings.Contains(r.src, "moveSections([f], library.ending);") {
			t.Error("MoveFolder() script missing root move")
		}
	})

	t.Run("rename requires name", func(t *testing.T) {
		c := newTestClient(&fakeRunner{stdout: envelope("{}")})
		if _, err := c.RenameFolder("f1", ""); err == nil {
			t.Error("RenameFolder() expected error for empty name, got nil")
		}
	})
}

// TestTagOperations tests tag script generation and guards
func TestTagOperations(t *testing.T) {
	t.Run("add under parent", func(t *testing.T) {
		r := &fakeRunner{stdout: envelope(`{"id":"g1","name":"office","path":"work / office","availableTaskCount":0}`)}
		c := newTestClient(r)

		tag, err := c.AddTag("office", "work")
		if err != nil {
			t.Fatalf("AddTag() unexpected error = %v", err)
		}
		if tag.Path != "work / office" {
			t.Errorf("AddTag() path = %v, want work / office", tag.Path)
		}
		if !strings.Contains(r.src, `new Tag("office", parents[0])`) {
			t.Error("AddTag() script missing nested constructor")
		}
	})

	t.Run("add top level", func(t *testing.T) {
		r := &fakeRunner{stdout: envelope(`{"id":"g1","name":"errand","path":"errand","availableTaskCount":0}`)}
		c := newTestClient(r)

		if _, err := c.AddTag("errand", ""); err != nil {
			t.Fatalf("AddTag() unexpected error = %v", err)
		}
		if !strings.Contains(r.src, `new Tag("errand");`) {
			t.Error("AddTag() script missing constructor")
		}
	})

	t.Run("remove requires id", func(t *testing.T) {
		c := newTestClient(&fakeRunner{stdout: envelope("{}")})
		if err := c.RemoveTag(""); err == nil {
			t.Error("RemoveTag() expected error for empty id, got nil")
		}
	})
}

// TestDumpDatabase tests option translation and tree decoding
func TestDumpDatabase(t *testing.T) {
	payload := `{"folders":[{"id":"f1","name":"Home","path":"Home","status":"active",` +
		`"projects":[{"id":"p1","name":"Renovation","status":"active","taskCount":1,` +
		`"tasks":[{"id":"t1","name":"Paint walls","children":[{"id":"t2","name":"Buy paint"}]}]}]}],` +
		`"inbox":[{"id":"t3","name":"Loose thought"}],` +
		`"tags":[{"id":"g1","name":"home","path":"home","availableTaskCount":2}]}`

	tests := []struct {
		name      string
		opts      DumpOptions
		wantInSrc []string
	}{
		{
			name:      "defaults",
			opts:      DumpOptions{},
			wantInSrc: []string{"const includeCompleted = false;", "const maxDepth = 0;"},
		},
		{
			name:      "include completed with depth cap",
			opts:      DumpOptions{IncludeCompleted: true, MaxDepth: 2},
			wantInSrc: []string{"const includeCompleted = true;", "const maxDepth = 2;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{stdout: envelope(payload)}
			c := newTestClient(r)

			dump, err := c.DumpDatabase(tt.opts)
			if err != nil {
				t.Fatalf("DumpDatabase() unexpected error = %v", err)
			}
			for _, want := range tt.wantInSrc {
				if !strings.Contains(r.src, want) {
					t.Errorf("DumpDatabase() script missing %q", want)
				}
			}

			if len(dump.Folders) != 1 || dump.Folders[0].Name != "Home" {
				t.Fatalf("DumpDatabase() folders = %+v", dump.Folders)
			}
			project := dump.Folders[0].Projects[0]
			if len(project.Tasks) != 1 || len(project.Tasks[0].Children) != 1 {
				t.Errorf("DumpDatabase() task tree = %+v", project.Tasks)
			}
			if len(dump.Inbox) != 1 || dump.Inbox[0].Name != "Loose thought" {
				t.Errorf("DumpDatabase() inbox = %+v", dump.Inbox)
			}
			if len(dump.Tags) != 1 || dump.Tags[0].AvailableTaskCount != 2 {
				t.Errorf("DumpDatabase() tags = %+v", dump.Tags)
			}
		})
	}
}

// TestSummary tests count decoding
func TestSummary(t *testing.T) {
	payload := `{"appVersion":"4.8.1","taskCount":120,"inboxCount":4,"projectCount":18,"folderCount":5,"tagCount":22}`
	c := newTestClient(&fakeRunner{stdout: envelope(payload)})

	summary, err := c.Summary()
	if err != nil {
		t.Fatalf("Summary() unexpected error = %v", err)
	}
	if summary.AppVersion != "4.8.1" {
		t.Errorf("Summary() appVersion = %v, want 4.8.1", summary.AppVersion)
	}
	if summary.TaskCount != 120 || summary.TagCount != 22 {
		t.Errorf("Summary() counts = %+v", summary)
	}
}
