package model

import (
	"github.com/FocuswithJustin/blueprint/core/encoding"
	"github.com/FocuswithJustin/blueprint/core/errors"
	"github.com/FocuswithJustin/blueprint/core/sign"
)

// Workspace is the root of the build graph.
type Workspace struct {
	guid      string
	name      string
	path      string
	signature string
	projects  []*Project
}

// NewWorkspace creates and signs a workspace. Project guids and project
// content signatures must both be pairwise distinct.
func NewWorkspace(guid, name, path string, projects []*Project) (*Workspace, error) {
	if guid == "" {
		return nil, errors.NewValidation("workspace.guid", "must not be empty")
	}
	if name == "" {
		return nil, errors.NewValidation("workspace.name", "must not be empty")
	}
	if path == "" {
		return nil, errors.NewValidation("workspace.path", "must not be empty")
	}

	guids := make([]string, len(projects))
	sigs := make([]string, len(projects))
	for i, p := range projects {
		guids[i] = p.GUID()
		sigs[i] = p.Signature()
	}
	if err := checkDistinct("workspace.projects", "guid", guids); err != nil {
		return nil, err
	}
	if err := checkDistinct("workspace.projects", "signature", sigs); err != nil {
		return nil, err
	}

	w := &Workspace{
		guid:     guid,
		name:     name,
		path:     path,
		projects: append([]*Project(nil), projects...),
	}
	sig, err := sign.Digest(w.signContents())
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign workspace")
	}
	w.signature = sig
	return w, nil
}

// GUID returns the workspace identifier.
func (w *Workspace) GUID() string { return w.guid }

// Name returns the workspace name.
func (w *Workspace) Name() string { return w.name }

// Path returns the workspace path.
func (w *Workspace) Path() string { return w.path }

// Signature returns the content signature computed at construction.
func (w *Workspace) Signature() string { return w.signature }

// Kind returns the discriminator tag.
func (w *Workspace) Kind() string { return TypeWorkspace }

// Projects returns the ordered projects in declaration order.
func (w *Workspace) Projects() []*Project {
	return append([]*Project(nil), w.projects...)
}

func (w *Workspace) contentsWithProjectRefs(refOf func(*Project) string) encoding.Object {
	refs := make([]string, len(w.projects))
	for i, p := range w.projects {
		refs[i] = Ref(refOf(p))
	}
	return encoding.Object{
		"guid":     w.guid,
		"name":     w.name,
		"path":     w.path,
		"projects": refs,
	}
}

// Contents returns the canonical document-form body, projects by guid.
func (w *Workspace) Contents() encoding.Object {
	return w.contentsWithProjectRefs(func(p *Project) string { return p.GUID() })
}

func (w *Workspace) signContents() encoding.Object {
	return w.contentsWithProjectRefs(func(p *Project) string { return p.Signature() })
}
