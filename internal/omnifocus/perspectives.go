package omnifocus

import (
	"fmt"

	"omnibridge/internal/script"
)

// ListPerspectives returns the built-in perspectives followed by all custom
// perspectives defined in the database.
func (c *Client) ListPerspectives() ([]Perspective, error) {
	var b script.Builder
	b.Line("const perspectives = [];")
	b.Line("Perspective.BuiltIn.all.forEach(p => {")
	b.In().Line("perspectives.push({name: p.name, builtIn: true});").Out()
	b.Line("});")
	b.Line("Perspective.Custom.all.forEach(p => {")
	b.In().Line("perspectives.push({name: p.name, builtIn: false, identifier: p.identifier});").Out()
	b.Line("});")
	b.Line("return perspectives;")

	var perspectives []Perspective
	if err := c.runJSON("perspective.list", b.String(), &perspectives); err != nil {
		return nil, err
	}
	return perspectives, nil
}

// OpenPerspective switches the frontmost OmniFocus window to the named
// perspective. Built-in names are matched case-insensitively.
func (c *Client) OpenPerspective(name string) (*Perspective, error) {
	if name == "" {
		return nil, &Error{Op: "perspective.open", Err: fmt.Errorf("perspective name cannot be empty")}
	}

	var b script.Builder
	b.Linef("const wanted = %s.toLowerCase();", script.Quote(name))
	b.Line("let target = Perspective.BuiltIn.all.find(p => p.name.toLowerCase() === wanted);")
	b.Line("if (!target) { target = Perspective.Custom.all.find(p => p.name.toLowerCase() === wanted); }")
	b.Linef("if (!target) { throw new Error(\"perspective not found: \" + %s); }", script.Quote(name))
	b.Line("if (document.windows.length === 0) { throw new Error(\"no OmniFocus window is open\"); }")
	b.Line("document.windows[0].perspective = target;")
	b.Line("return {name: target.name, builtIn: Perspective.BuiltIn.all.includes(target)};")

	var perspective Perspective
	if err := c.runJSON("perspective.open", b.String(), &perspective); err != nil {
		return nil, err
	}
	return &perspective, nil
}
