package model

import (
	"github.com/FocuswithJustin/blueprint/core/encoding"
	"github.com/FocuswithJustin/blueprint/core/errors"
	"github.com/FocuswithJustin/blueprint/core/sign"
)

// Project owns an ordered collection of targets, its build configurations,
// and the root of its reference tree.
type Project struct {
	guid           string
	name           string
	path           string
	signature      string
	configurations []*BuildConfiguration
	targets        []ProjectTarget
	groupTree      *Group
}

// NewProject creates and signs a project. Target guids and target content
// signatures must both be pairwise distinct; a signature collision between
// targets with distinct contents is treated as a construction defect.
// The group tree is optional.
func NewProject(guid, name, path string, configs []*BuildConfiguration,
	targets []ProjectTarget, groupTree *Group) (*Project, error) {

	if guid == "" {
		return nil, errors.NewValidation("project.guid", "must not be empty")
	}
	if name == "" {
		return nil, errors.NewValidation("project.name", "must not be empty")
	}
	if path == "" {
		return nil, errors.NewValidation("project.path", "must not be empty")
	}

	configGUIDs := make([]string, len(configs))
	for i, c := range configs {
		configGUIDs[i] = c.GUID()
	}
	if err := checkDistinct("project.buildConfigurations", "guid", configGUIDs); err != nil {
		return nil, err
	}

	targetGUIDs := make([]string, len(targets))
	targetSigs := make([]string, len(targets))
	for i, t := range targets {
		targetGUIDs[i] = t.GUID()
		targetSigs[i] = t.Signature()
	}
	if err := checkDistinct("project.targets", "guid", targetGUIDs); err != nil {
		return nil, err
	}
	if err := checkDistinct("project.targets", "signature", targetSigs); err != nil {
		return nil, err
	}

	p := &Project{
		guid:           guid,
		name:           name,
		path:           path,
		configurations: append([]*BuildConfiguration(nil), configs...),
		targets:        append([]ProjectTarget(nil), targets...),
		groupTree:      groupTree,
	}
	sig, err := sign.Digest(p.signContents())
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign project")
	}
	p.signature = sig
	return p, nil
}

// GUID returns the project identifier.
func (p *Project) GUID() string { return p.guid }

// Name returns the project name.
func (p *Project) Name() string { return p.name }

// Path returns the project path.
func (p *Project) Path() string { return p.path }

// Signature returns the content signature computed at construction.
func (p *Project) Signature() string { return p.signature }

// Kind returns the discriminator tag.
func (p *Project) Kind() string { return TypeProject }

// Configurations returns the ordered build configurations.
func (p *Project) Configurations() []*BuildConfiguration {
	return append([]*BuildConfiguration(nil), p.configurations...)
}

// Targets returns the ordered targets in declaration order.
func (p *Project) Targets() []ProjectTarget {
	return append([]ProjectTarget(nil), p.targets...)
}

// GroupTree returns the root of the reference tree, or nil.
func (p *Project) GroupTree() *Group { return p.groupTree }

// contentsWithTargetRefs assembles the body with one reference string per
// target. The document form references targets by guid; the signature form
// references them by their already-computed content signature, which is what
// makes a project's signature depend on its targets' signatures.
func (p *Project) contentsWithTargetRefs(refOf func(ProjectTarget) string) encoding.Object {
	refs := make([]string, len(p.targets))
	for i, t := range p.targets {
		refs[i] = Ref(refOf(t))
	}
	o := encoding.Object{
		"guid":                p.guid,
		"name":                p.name,
		"path":                p.path,
		"buildConfigurations": configurationContents(p.configurations),
		"targets":             refs,
	}
	if p.groupTree != nil {
		o["groupTree"] = p.groupTree.contents()
	}
	return o
}

// Contents returns the canonical document-form body, targets by guid.
func (p *Project) Contents() encoding.Object {
	return p.contentsWithTargetRefs(func(t ProjectTarget) string { return t.GUID() })
}

func (p *Project) signContents() encoding.Object {
	return p.contentsWithTargetRefs(func(t ProjectTarget) string { return t.Signature() })
}
