package omnifocus

// Shared OmniJS fragments spliced into operation scripts. Serializers mirror
// the JSON shape of the Go types in types.go; lookup helpers throw with a
// stable message when an object is missing so the error reaches the caller
// verbatim.

const jsDateHelper = `function isoDate(d) { return d ? d.toISOString() : null; }
`

const jsTaskSerializer = jsDateHelper + `function taskJSON(t) {
  return {
    id: t.id.primaryKey,
    name: t.name,
    note: t.note || "",
    flagged: t.flagged,
    completed: t.completed,
    dropped: t.taskStatus === Task.Status.Dropped,
    dueDate: isoDate(t.dueDate),
    deferDate: isoDate(t.deferDate),
    completionDate: isoDate(t.completionDate),
    estimatedMinutes: t.estimatedMinutes || 0,
    tags: t.tags.map(tag => tag.name),
    projectId: t.containingProject ? t.containingProject.id.primaryKey : null,
    projectName: t.containingProject ? t.containingProject.name : null,
    parentId: t.parent ? t.parent.id.primaryKey : null,
    inInbox: t.inInbox,
    sequential: t.sequential,
    repetitionRule: t.repetitionRule ? t.repetitionRule.ruleString : null
  };
}
`

const jsProjectSerializer = jsDateHelper + `function projectStatus(p) {
  if (p.status === Project.Status.Active) { return "active"; }
  if (p.status === Project.Status.OnHold) { return "on-hold"; }
  if (p.status === Project.Status.Done) { return "done"; }
  return "dropped";
}
function projectJSON(p) {
  return {
    id: p.id.primaryKey,
    name: p.name,
    note: p.note || "",
    status: projectStatus(p),
    folderId: p.parentFolder ? p.parentFolder.id.primaryKey : null,
    folderName: p.parentFolder ? p.parentFolder.name : null,
    sequential: p.sequential,
    flagged: p.flagged,
    dueDate: isoDate(p.dueDate),
    deferDate: isoDate(p.deferDate),
    taskCount: p.flattenedTasks.length
  };
}
`

const jsFolderSerializer = `function folderPath(f) {
  const parts = [f.name];
  let parent = f.parent;
  while (parent) { parts.unshift(parent.name); parent = parent.parent; }
  return parts.join(" / ");
}
function folderJSON(f) {
  return {
    id: f.id.primaryKey,
    name: f.name,
    parentId: f.parent ? f.parent.id.primaryKey : null,
    path: folderPath(f),
    status: f.status === Folder.Status.Active ? "active" : "dropped"
  };
}
`

const jsTagSerializer = `function tagPath(tag) {
  const parts = [tag.name];
  let parent = tag.parent;
  while (parent) { parts.unshift(parent.name); parent = parent.parent; }
  return parts.join(" / ");
}
function tagJSON(tag) {
  return {
    id: tag.id.primaryKey,
    name: tag.name,
    parentId: tag.parent ? tag.parent.id.primaryKey : null,
    path: tagPath(tag),
    status: tag.status === Tag.Status.Active ? "active" : "dropped",
    availableTaskCount: tag.availableTasks.length
  };
}
`

const jsFindTask = `function findTask(id) {
  const matches = flattenedTasks.filter(t => t.id.primaryKey === id);
  if (matches.length === 0) { throw new Error("task not found: " + id); }
  return matches[0];
}
`

const jsFindProject = `function findProject(id) {
  const matches = flattenedProjects.filter(p => p.id.primaryKey === id);
  if (matches.length === 0) { throw new Error("project not found: " + id); }
  return matches[0];
}
`

const jsFindProjectByName = `function findProjectByName(name) {
  const matches = flattenedProjects.filter(p => p.name === name);
  if (matches.length === 0) { throw new Error("project not found: " + name); }
  return matches[0];
}
`

const jsFindFolder = `function findFolder(id) {
  const matches = flattenedFolders.filter(f => f.id.primaryKey === id);
  if (matches.length === 0) { throw new Error("folder not found: " + id); }
  return matches[0];
}
`

const jsFindTag = `function findTag(id) {
  const matches = flattenedTags.filter(t => t.id.primaryKey === id);
  if (matches.length === 0) { throw new Error("tag not found: " + id); }
  return matches[0];
}
`

const jsEnsureTag = `function ensureTag(name) {
  const existing = flattenedTags.filter(t => t.name === name);
  return existing.length > 0 ? existing[0] : new Tag(name);
}
`

const jsEnsureFolderPath = `function ensureFolderPath(path) {
  const parts = path.split(" / ").map(p => p.trim()).filter(p => p.length > 0);
  let parent = null;
  for (const part of parts) {
    const existing = (parent ? parent.folders : folders).filter(f => f.name === part);
    if (existing.length > 0) {
      parent = existing[0];
    } else {
      parent = new Folder(part, parent ? parent.ending : library.ending);
    }
  }
  return parent;
}
`
