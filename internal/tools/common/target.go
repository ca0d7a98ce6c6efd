package common

// GetTargetFromArgs extracts the identifier of the object a tool acts on,
// for audit logging. Tools address objects either by primary key ("id") or
// by name, so both are checked.
//
// Priority order:
//  1. Explicit "id" argument
//  2. Explicit "name" argument
//  3. "" (no single target, e.g. list or batch tools)
func GetTargetFromArgs(args map[string]interface{}) string {
	if id, ok := args["id"].(string); ok && id != "" {
		return id
	}
	if name, ok := args["name"].(string); ok && name != "" {
		return name
	}
	return ""
}
