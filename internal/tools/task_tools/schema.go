package task_tools

import "omnibridge/internal/tools/batch"

// taskItemSchema validates tasks_add_batch item documents before any
// automation runs.
var taskItemSchema = batch.MustValidator("task-item.schema.json", `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name":             {"type": "string", "minLength": 1},
		"note":             {"type": "string"},
		"project":          {"type": "string"},
		"parentId":         {"type": "string"},
		"tags":             {"type": "array", "items": {"type": "string", "minLength": 1}},
		"flagged":          {"type": "boolean"},
		"due":              {"type": "string", "minLength": 1},
		"defer":            {"type": "string", "minLength": 1},
		"estimatedMinutes": {"type": "number", "minimum": 1}
	},
	"additionalProperties": false
}`)
