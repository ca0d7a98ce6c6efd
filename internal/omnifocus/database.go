package omnifocus

import (
	"omnibridge/internal/script"
)

// DumpDatabase returns a hierarchical snapshot of the whole database: the
// folder tree with projects and nested tasks, projects outside any folder,
// the inbox, and the tag tree. Completed and dropped tasks are skipped
// unless opts.IncludeCompleted is set; opts.MaxDepth caps task nesting.
func (c *Client) DumpDatabase(opts DumpOptions) (*DatabaseDump, error) {
	var b script.Builder
	b.Line(jsTaskSerializer)
	b.Line(jsProjectSerializer)
	b.Line(jsFolderSerializer)
	b.Line(jsTagSerializer)
	b.Linef("const includeCompleted = %s;", script.Bool(opts.IncludeCompleted))
	b.Linef("const maxDepth = %s;", script.Int(opts.MaxDepth))
	b.Line("function keepTask(t) {")
	b.In()
	b.Line("if (includeCompleted) { return true; }")
	b.Line("return !t.completed && t.taskStatus !== Task.Status.Dropped;")
	b.Out()
	b.Line("}")
	b.Line("function taskTree(t, depth) {")
	b.In()
	b.Line("const out = taskJSON(t);")
	b.Line("if (maxDepth === 0 || depth < maxDepth) {")
	b.In()
	b.Line("const children = t.children.filter(keepTask).map(child => taskTree(child, depth + 1));")
	b.Line("if (children.length > 0) { out.children = children; }")
	b.Out()
	b.Line("}")
	b.Line("return out;")
	b.Out()
	b.Line("}")
	b.Line("function projectTree(p) {")
	b.In()
	b.Line("const out = projectJSON(p);")
	b.Line("out.tasks = p.tasks.filter(keepTask).map(t => taskTree(t, 1));")
	b.Line("return out;")
	b.Out()
	b.Line("}")
	b.Line("function folderTree(f) {")
	b.In()
	b.Line("const out = folderJSON(f);")
	b.Line("out.folders = f.folders.map(folderTree);")
	b.Line("out.projects = f.projects.map(projectTree);")
	b.Line("return out;")
	b.Out()
	b.Line("}")
	b.Line("function tagTree(tag) {")
	b.In()
	b.Line("const out = tagJSON(tag);")
	b.Line("const children = tag.children.map(tagTree);")
	b.Line("if (children.length > 0) { out.children = children; }")
	b.Line("return out;")
	b.Out()
	b.Line("}")
	b.Line("return {")
	b.In()
	b.Line("folders: folders.map(folderTree),")
	b.Line("orphans: library.filter(s => s instanceof Project).map(projectTree),")
	b.Line("inbox: inbox.filter(keepTask).map(t => taskTree(t, 1)),")
	b.Line("tags: tags.map(tagTree)")
	b.Out()
	b.Line("};")

	var dump DatabaseDump
	if err := c.runJSON("database.dump", b.String(), &dump); err != nil {
		return nil, err
	}
	return &dump, nil
}

// Summary returns per-entity counts and the application version.
func (c *Client) Summary() (*Summary, error) {
	var b script.Builder
	b.Line("return {")
	b.In()
	b.Line("appVersion: app.version,")
	b.Line("taskCount: flattenedTasks.length,")
	b.Line("inboxCount: inbox.length,")
	b.Line("projectCount: flattenedProjects.length,")
	b.Line("folderCount: flattenedFolders.length,")
	b.Line("tagCount: flattenedTags.length")
	b.Out()
	b.Line("};")

	var summary Summary
	if err := c.runJSON("database.summary", b.String(), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
