// Package omnifocus provides a client for querying and mutating the
// OmniFocus database through Omni Automation scripts.
//
// The client offers CRUD-style operations over tasks, projects, folders,
// tags, and perspectives, plus whole-database dumps. Each operation
// synthesizes an OmniJS script with the script package, executes it through
// a single osascript subprocess call, and decodes the JSON the script prints
// on stdout.
//
// The bridge holds no state of its own: OmniFocus owns and mutates all
// records, and the semantics of every operation are defined by the
// application's scripting interface. Errors raised inside a script (such as
// a lookup by an unknown identifier) and subprocess failures both surface as
// *Error values with the operation name and any stderr output attached.
//
// Prerequisites:
//   - macOS with OmniFocus installed
//   - osascript on PATH (part of macOS)
//   - Automation permission granted to the invoking process the first time
//     a script runs (macOS prompts once)
//
// Example usage:
//
//	client, err := omnifocus.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tasks, err := client.ListTasks(omnifocus.TaskFilter{Flagged: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, t := range tasks {
//	    fmt.Printf("%s (%s)\n", t.Name, t.ID)
//	}
package omnifocus
