package omnifocus

import (
	"fmt"

	"omnibridge/internal/script"
)

// ListTags returns all tags in the database.
func (c *Client) ListTags() ([]Tag, error) {
	var b script.Builder
	b.Line(jsTagSerializer)
	b.Line("return flattenedTags.map(tagJSON);")

	var tags []Tag
	if err := c.runJSON("tag.list", b.String(), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// GetTag retrieves a single tag by its identifier.
func (c *Client) GetTag(id string) (*Tag, error) {
	if id == "" {
		return nil, &Error{Op: "tag.get", Err: fmt.Errorf("tag id cannot be empty")}
	}

	var b script.Builder
	b.Line(jsTagSerializer)
	b.Line(jsFindTag)
	b.Linef("return tagJSON(findTag(%s));", script.Quote(id))

	var tag Tag
	if err := c.runJSON("tag.get", b.String(), &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// AddTag creates a new tag, optionally nested under a parent tag (by name).
func (c *Client) AddTag(name, parentName string) (*Tag, error) {
	if name == "" {
		return nil, &Error{Op: "tag.add", Err: fmt.Errorf("tag name cannot be empty")}
	}

	var b script.Builder
	b.Line(jsTagSerializer)
	if parentName != "" {
		b.Linef("const parents = flattenedTags.filter(t => t.name === %s);", script.Quote(parentName))
		b.Linef("if (parents.length === 0) { throw new Error(\"tag not found: \" + %s); }", script.Quote(parentName))
		b.Linef("const tag = new Tag(%s, parents[0]);", script.Quote(name))
	} else {
		b.Linef("const tag = new Tag(%s);", script.Quote(name))
	}
	b.Line("return tagJSON(tag);")

	var tag Tag
	if err := c.runJSON("tag.add", b.String(), &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// RenameTag changes a tag's name.
func (c *Client) RenameTag(id, name string) (*Tag, error) {
	if id == "" {
		return nil, &Error{Op: "tag.rename", Err: fmt.Errorf("tag id cannot be empty")}
	}
	if name == "" {
		return nil, &Error{Op: "tag.rename", Err: fmt.Errorf("tag name cannot be empty")}
	}

	var b script.Builder
	b.Line(jsTagSerializer)
	b.Line(jsFindTag)
	b.Linef("const tag = findTag(%s);", script.Quote(id))
	b.Linef("tag.name = %s;", script.Quote(name))
	b.Line("return tagJSON(tag);")

	var tag Tag
	if err := c.runJSON("tag.rename", b.String(), &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// RemoveTag deletes a tag. Tasks carrying the tag keep their other tags.
func (c *Client) RemoveTag(id string) error {
	if id == "" {
		return &Error{Op: "tag.remove", Err: fmt.Errorf("tag id cannot be empty")}
	}

	var b script.Builder
	b.Line(jsFindTag)
	b.Linef("deleteObject(findTag(%s));", script.Quote(id))
	b.Linef("return {id: %s};", script.Quote(id))

	return c.runJSON("tag.remove", b.String(), nil)
}
