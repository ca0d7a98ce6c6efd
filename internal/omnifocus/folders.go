package omnifocus

import (
	"fmt"

	"omnibridge/internal/script"
)

// ListFolders returns all folders in the database, including dropped ones.
func (c *Client) ListFolders() ([]Folder, error) {
	var b script.Builder
	b.Line(jsFolderSerializer)
	b.Line("return flattenedFolders.map(folderJSON);")

	var folders []Folder
	if err := c.runJSON("folder.list", b.String(), &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// GetFolder retrieves a single folder by its identifier.
func (c *Client) GetFolder(id string) (*Folder, error) {
	if id == "" {
		return nil, &Error{Op: "folder.get", Err: fmt.Errorf("folder id cannot be empty")}
	}

	var b script.Builder
	b.Line(jsFolderSerializer)
	b.Line(jsFindFolder)
	b.Linef("return folderJSON(findFolder(%s));", script.Quote(id))

	var folder Folder
	if err := c.runJSON("folder.get", b.String(), &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// AddFolder creates a new folder, optionally nested under a parent path.
// Intermediate folders in the parent path are created as needed.
func (c *Client) AddFolder(name, parentPath string) (*Folder, error) {
	if name == "" {
		return nil, &Error{Op: "folder.add", Err: fmt.Errorf("folder name cannot be empty")}
	}

	var b script.Builder
	b.Line(jsFolderSerializer)
	if parentPath != "" {
		b.Line(jsEnsureFolderPath)
		b.Linef("const parent = ensureFolderPath(%s);", script.Quote(parentPath))
		b.Linef("const f = new Folder(%s, parent.ending);", script.Quote(name))
	} else {
		b.Linef("const f = new Folder(%s);", script.Quote(name))
	}
	b.Line("return folderJSON(f);")

	var folder Folder
	if err := c.runJSON("folder.add", b.String(), &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// RenameFolder changes a folder's name.
func (c *Client) RenameFolder(id, name string) (*Folder, error) {
	if id == "" {
		return nil, &Error{Op: "folder.rename", Err: fmt.Errorf("folder id cannot be empty")}
	}
	if name == "" {
		return nil, &Error{Op: "folder.rename", Err: fmt.Errorf("folder name cannot be empty")}
	}

	var b script.Builder
	b.Line(jsFolderSerializer)
	b.Line(jsFindFolder)
	b.Linef("const f = findFolder(%s);", script.Quote(id))
	b.Linef("f.name = %s;", script.Quote(name))
	b.Line("return folderJSON(f);")

	var folder Folder
	if err := c.runJSON("folder.rename", b.String(), &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// MoveFolder moves a folder under a new parent path, or to the library root
// when parentPath is empty.
func (c *Client) MoveFolder(id, parentPath string) (*Folder, error) {
	if id == "" {
		return nil, &Error{Op: "folder.move", Err: fmt.Errorf("folder id cannot be empty")}
	}

	var b script.Builder
	b.Line(jsFolderSerializer)
	b.Line(jsFindFolder)
	b.Linef("const f = findFolder(%s);", script.Quote(id))
	if parentPath != "" {
		b.Line(jsEnsureFolderPath)
		b.Linef("moveSections([f], ensureFolderPath(%s));", script.Quote(parentPath))
	} else {
		b.Line("moveSections([f], library.ending);")
	}
	b.Line("return folderJSON(f);")

	var folder Folder
	if err := c.runJSON("folder.move", b.String(), &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// RemoveFolder deletes a folder and everything inside it.
func (c *Client) RemoveFolder(id string) error {
	if id == "" {
		return &Error{Op: "folder.remove", Err: fmt.Errorf("folder id cannot be empty")}
	}

	var b script.Builder
	b.Line(jsFindFolder)
	b.Linef("deleteObject(findFolder(%s));", script.Quote(id))
	b.Linef("return {id: %s};", script.Quote(id))

	return c.runJSON("folder.remove", b.String(), nil)
}
