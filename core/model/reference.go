package model

import (
	"fmt"

	"github.com/FocuswithJustin/blueprint/core/encoding"
	"github.com/FocuswithJustin/blueprint/core/errors"
)

// SourceTree is the base a reference path is resolved against.
type SourceTree string

// Source tree constants.
const (
	SourceTreeRoot          SourceTree = "SOURCE_ROOT"
	SourceTreeGroup         SourceTree = "<group>"
	SourceTreeBuildProducts SourceTree = "BUILT_PRODUCTS_DIR"
	SourceTreeAbsolute      SourceTree = "<absolute>"
)

// validSourceTrees is the set of valid source tree bases.
var validSourceTrees = map[SourceTree]bool{
	SourceTreeRoot:          true,
	SourceTreeGroup:         true,
	SourceTreeBuildProducts: true,
	SourceTreeAbsolute:      true,
}

// IsValid returns true if the source tree base is valid.
func (s SourceTree) IsValid() bool {
	return validSourceTrees[s]
}

// Reference is a node of the source layout tree: a FileReference or a Group.
// References carry no signature; their identity is structural.
type Reference interface {
	// GUID returns the reference identifier, unique among its siblings.
	GUID() string
	// contents returns the inlined canonical form of the reference.
	contents() encoding.Object
}

// FileReference describes one file in the source layout.
type FileReference struct {
	guid       string
	sourceTree SourceTree
	path       string
	name       string
	fileType   string
}

// NewFileReference creates a file reference. The name is an optional display
// name; the file type is an optional type identifier such as
// "sourcecode.c.c" (see internal/filetype for the static lookup).
func NewFileReference(guid string, sourceTree SourceTree, path, name, fileType string) (*FileReference, error) {
	if guid == "" {
		return nil, errors.NewValidation("fileReference.guid", "must not be empty")
	}
	if path == "" {
		return nil, errors.NewValidation("fileReference.path", "must not be empty")
	}
	if !sourceTree.IsValid() {
		return nil, errors.NewValidation("fileReference.sourceTree",
			fmt.Sprintf("invalid source tree %q", string(sourceTree)))
	}
	return &FileReference{
		guid:       guid,
		sourceTree: sourceTree,
		path:       path,
		name:       name,
		fileType:   fileType,
	}, nil
}

// GUID returns the reference identifier.
func (f *FileReference) GUID() string { return f.guid }

// SourceTree returns the path base.
func (f *FileReference) SourceTree() SourceTree { return f.sourceTree }

// Path returns the relative path.
func (f *FileReference) Path() string { return f.path }

// Name returns the optional display name.
func (f *FileReference) Name() string { return f.name }

// FileType returns the optional file type identifier.
func (f *FileReference) FileType() string { return f.fileType }

func (f *FileReference) contents() encoding.Object {
	o := encoding.Object{
		"type":       TypeFile,
		"guid":       f.guid,
		"sourceTree": string(f.sourceTree),
		"path":       f.path,
	}
	o.SetNonEmpty("name", f.name)
	o.SetNonEmpty("fileType", f.fileType)
	return o
}

// Group is an ordered collection of child references.
type Group struct {
	guid       string
	sourceTree SourceTree
	path       string
	name       string
	children   []Reference
}

// NewGroup creates a group. Child guids must be pairwise distinct.
func NewGroup(guid string, sourceTree SourceTree, path, name string, children []Reference) (*Group, error) {
	if guid == "" {
		return nil, errors.NewValidation("group.guid", "must not be empty")
	}
	if !sourceTree.IsValid() {
		return nil, errors.NewValidation("group.sourceTree",
			fmt.Sprintf("invalid source tree %q", string(sourceTree)))
	}
	guids := make([]string, len(children))
	for i, c := range children {
		guids[i] = c.GUID()
	}
	if err := checkDistinct("group.children", "guid", guids); err != nil {
		return nil, err
	}
	return &Group{
		guid:       guid,
		sourceTree: sourceTree,
		path:       path,
		name:       name,
		children:   append([]Reference(nil), children...),
	}, nil
}

// GUID returns the group identifier.
func (g *Group) GUID() string { return g.guid }

// SourceTree returns the path base.
func (g *Group) SourceTree() SourceTree { return g.sourceTree }

// Path returns the relative path, which may be empty for virtual groups.
func (g *Group) Path() string { return g.path }

// Name returns the optional display name.
func (g *Group) Name() string { return g.name }

// Children returns the ordered child references.
func (g *Group) Children() []Reference {
	return append([]Reference(nil), g.children...)
}

func (g *Group) contents() encoding.Object {
	children := make([]encoding.Object, len(g.children))
	for i, c := range g.children {
		children[i] = c.contents()
	}
	o := encoding.Object{
		"type":       TypeGroup,
		"guid":       g.guid,
		"sourceTree": string(g.sourceTree),
		"children":   children,
	}
	o.SetNonEmpty("path", g.path)
	o.SetNonEmpty("name", g.name)
	return o
}
