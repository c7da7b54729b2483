// Package manifest loads a YAML workspace description and builds the
// signed object graph from it.
//
// Guids are derived deterministically from the object's position in the
// manifest, so emitting the same manifest twice yields byte-identical
// documents.
package manifest

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/blueprint/core/errors"
	"github.com/FocuswithJustin/blueprint/core/model"
	"github.com/FocuswithJustin/blueprint/core/settings"
	"github.com/FocuswithJustin/blueprint/internal/filetype"
)

// Manifest is the root of a workspace description file.
type Manifest struct {
	Name     string        `yaml:"name"`
	Path     string        `yaml:"path,omitempty"`
	Projects []ProjectSpec `yaml:"projects"`
}

// ProjectSpec describes one project.
type ProjectSpec struct {
	Name           string       `yaml:"name"`
	Path           string       `yaml:"path,omitempty"`
	Configurations []ConfigSpec `yaml:"configurations,omitempty"`
	Targets        []TargetSpec `yaml:"targets"`
}

// ConfigSpec describes one build configuration.
type ConfigSpec struct {
	Name      string                         `yaml:"name"`
	Settings  map[string]string              `yaml:"settings,omitempty"`
	Lists     map[string][]string            `yaml:"lists,omitempty"`
	Platforms map[string]map[string][]string `yaml:"platforms,omitempty"`
}

// TargetSpec describes one target.
type TargetSpec struct {
	Name           string       `yaml:"name"`
	Product        string       `yaml:"product"`
	ProductName    string       `yaml:"product_name,omitempty"`
	Configurations []ConfigSpec `yaml:"configurations,omitempty"`
	Sources        []string     `yaml:"sources,omitempty"`
	Resources      []string     `yaml:"resources,omitempty"`
	Dependencies   []string     `yaml:"dependencies,omitempty"`
	Imparted       *ConfigSpec  `yaml:"imparted,omitempty"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read manifest")
	}
	return Parse(data)
}

// Parse parses manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "failed to parse manifest")
	}
	if m.Name == "" {
		return nil, errors.NewValidation("manifest.name", "must not be empty")
	}
	if len(m.Projects) == 0 {
		return nil, errors.NewValidation("manifest.projects", "must not be empty")
	}
	return &m, nil
}

// childScope extends a guid scope without sharing the parent's backing
// array.
func childScope(scope []string, parts ...string) []string {
	out := make([]string, 0, len(scope)+len(parts))
	out = append(out, scope...)
	return append(out, parts...)
}

// buildSettings converts the loose string maps of a ConfigSpec into a
// typed settings record. Unknown setting or platform names are rejected.
func buildSettings(spec ConfigSpec) (settings.Settings, error) {
	s := settings.New()
	for name, value := range spec.Settings {
		s.Scalar[settings.ScalarSetting(name)] = value
	}
	for name, values := range spec.Lists {
		s.Lists[settings.ListSetting(name)] = append([]string(nil), values...)
	}
	for platform, lists := range spec.Platforms {
		p := settings.Platform(platform)
		if !p.IsValid() {
			return settings.Settings{}, errors.NewValidation("platform",
				"unknown platform "+platform)
		}
		for name, values := range lists {
			s.AddPlatformList(p, settings.ListSetting(name), values...)
		}
	}
	if err := s.Validate(); err != nil {
		return settings.Settings{}, err
	}
	return s, nil
}

// buildConfigurations builds signable configurations with deterministic
// guids scoped under the owner's guid parts.
func buildConfigurations(specs []ConfigSpec, scope ...string) ([]*model.BuildConfiguration, error) {
	var configs []*model.BuildConfiguration
	for _, spec := range specs {
		s, err := buildSettings(spec)
		if err != nil {
			return nil, errors.Wrap(err, "configuration "+spec.Name)
		}
		guid := model.DeterministicGUID(childScope(scope, "config", spec.Name)...)
		cfg, err := model.NewBuildConfiguration(guid, spec.Name, s)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// buildTarget builds one signed target and the file references backing
// its build files. The references are returned so the project can inline
// them in its group tree.
func buildTarget(spec TargetSpec, scope []string) (*model.Target, []model.Reference, error) {
	tscope := childScope(scope, "target", spec.Name)

	configs, err := buildConfigurations(spec.Configurations, tscope...)
	if err != nil {
		return nil, nil, err
	}

	var refs []model.Reference
	var phases []*model.BuildPhase

	addPhase := func(kind model.PhaseKind, paths []string) error {
		if len(paths) == 0 {
			return nil
		}
		var files []*model.BuildFile
		for _, p := range paths {
			frGUID := model.DeterministicGUID(childScope(tscope, "file", p)...)
			fr, err := model.NewFileReference(frGUID, model.SourceTreeRoot, p, "", filetype.Identify(p))
			if err != nil {
				return err
			}
			refs = append(refs, fr)
			bfGUID := model.DeterministicGUID(childScope(tscope, "buildfile", p)...)
			bf, err := model.NewBuildFile(bfGUID, fr.GUID(), nil)
			if err != nil {
				return err
			}
			files = append(files, bf)
		}
		guid := model.DeterministicGUID(childScope(tscope, "phase", string(kind))...)
		phase, err := model.NewBuildPhase(guid, kind, files)
		if err != nil {
			return err
		}
		phases = append(phases, phase)
		return nil
	}

	if err := addPhase(model.PhaseSources, spec.Sources); err != nil {
		return nil, nil, err
	}
	if err := addPhase(model.PhaseResources, spec.Resources); err != nil {
		return nil, nil, err
	}

	var deps []*model.TargetDependency
	for _, name := range spec.Dependencies {
		dep, err := model.NewTargetDependency(
			model.DeterministicGUID(childScope(scope, "target", name)...), nil)
		if err != nil {
			return nil, nil, err
		}
		deps = append(deps, dep)
	}

	imparted := settings.New()
	if spec.Imparted != nil {
		imparted, err = buildSettings(*spec.Imparted)
		if err != nil {
			return nil, nil, errors.Wrap(err, "imparted settings")
		}
	}

	productName := spec.ProductName
	if productName == "" {
		productName = spec.Name
	}
	product := model.ProductType(spec.Product)
	if product == model.ProductPackage {
		productName = ""
	}

	guid := model.DeterministicGUID(tscope...)
	tgt, err := model.NewTarget(guid, spec.Name, product, productName,
		configs, phases, deps, imparted)
	if err != nil {
		return nil, nil, errors.Wrap(err, "target "+spec.Name)
	}
	return tgt, refs, nil
}

// buildProject builds one signed project, with all target file references
// gathered into a root group.
func buildProject(spec ProjectSpec, scope []string) (*model.Project, error) {
	pscope := childScope(scope, "project", spec.Name)

	configs, err := buildConfigurations(spec.Configurations, pscope...)
	if err != nil {
		return nil, errors.Wrap(err, "project "+spec.Name)
	}

	var targets []model.ProjectTarget
	var refs []model.Reference
	for _, ts := range spec.Targets {
		tgt, trefs, err := buildTarget(ts, pscope)
		if err != nil {
			return nil, errors.Wrap(err, "project "+spec.Name)
		}
		targets = append(targets, tgt)
		refs = append(refs, trefs...)
	}

	var group *model.Group
	if len(refs) > 0 {
		group, err = model.NewGroup(
			model.DeterministicGUID(childScope(pscope, "group", "root")...),
			model.SourceTreeRoot, "", spec.Name, refs)
		if err != nil {
			return nil, errors.Wrap(err, "project "+spec.Name)
		}
	}

	path := spec.Path
	if path == "" {
		path = spec.Name + ".xcodeproj"
	}
	guid := model.DeterministicGUID(pscope...)
	prj, err := model.NewProject(guid, spec.Name, path, configs, targets, group)
	if err != nil {
		return nil, errors.Wrap(err, "project "+spec.Name)
	}
	return prj, nil
}

// Build constructs a signed workspace from the manifest.
func (m *Manifest) Build() (*model.Workspace, error) {
	scope := []string{"workspace", m.Name}

	var projects []*model.Project
	for _, ps := range m.Projects {
		prj, err := buildProject(ps, scope)
		if err != nil {
			return nil, err
		}
		projects = append(projects, prj)
	}

	path := m.Path
	if path == "" {
		path = m.Name + ".xcworkspace"
	}
	guid := model.DeterministicGUID(scope...)
	return model.NewWorkspace(guid, m.Name, path, projects)
}
