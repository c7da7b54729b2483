package model

import (
	"github.com/FocuswithJustin/blueprint/core/encoding"
	"github.com/FocuswithJustin/blueprint/core/errors"
	"github.com/FocuswithJustin/blueprint/core/settings"
)

// BuildConfiguration pairs a configuration name ("Debug", "Release") with
// one settings record.
type BuildConfiguration struct {
	guid     string
	name     string
	settings settings.Settings
}

// NewBuildConfiguration creates a build configuration. The settings record
// is validated against the closed setting enumerations and deep-copied, so
// later mutation of the caller's record cannot reach signed state.
func NewBuildConfiguration(guid, name string, s settings.Settings) (*BuildConfiguration, error) {
	if guid == "" {
		return nil, errors.NewValidation("buildConfiguration.guid", "must not be empty")
	}
	if name == "" {
		return nil, errors.NewValidation("buildConfiguration.name", "must not be empty")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &BuildConfiguration{
		guid:     guid,
		name:     name,
		settings: s.Clone(),
	}, nil
}

// GUID returns the configuration identifier.
func (c *BuildConfiguration) GUID() string { return c.guid }

// Name returns the configuration name.
func (c *BuildConfiguration) Name() string { return c.name }

// Settings returns a copy of the settings record.
func (c *BuildConfiguration) Settings() settings.Settings {
	return c.settings.Clone()
}

func (c *BuildConfiguration) contents() encoding.Object {
	return encoding.Object{
		"guid":          c.guid,
		"name":          c.name,
		"buildSettings": c.settings.Flatten(),
	}
}

func configurationContents(configs []*BuildConfiguration) []encoding.Object {
	out := make([]encoding.Object, len(configs))
	for i, c := range configs {
		out[i] = c.contents()
	}
	return out
}

// TargetDependency is an edge to a sibling target, expressed by guid
// reference so the owned tree stays acyclic.
type TargetDependency struct {
	targetGUID      string
	platformFilters []PlatformFilter
}

// NewTargetDependency creates a dependency edge.
func NewTargetDependency(targetGUID string, filters []PlatformFilter) (*TargetDependency, error) {
	if targetGUID == "" {
		return nil, errors.NewValidation("dependency.target", "must not be empty")
	}
	return &TargetDependency{
		targetGUID:      targetGUID,
		platformFilters: append([]PlatformFilter(nil), filters...),
	}, nil
}

// TargetGUID returns the referenced target guid.
func (d *TargetDependency) TargetGUID() string { return d.targetGUID }

// PlatformFilters returns the filters restricting the edge.
func (d *TargetDependency) PlatformFilters() []PlatformFilter {
	return append([]PlatformFilter(nil), d.platformFilters...)
}

func (d *TargetDependency) contents() encoding.Object {
	o := encoding.Object{"target": Ref(d.targetGUID)}
	if len(d.platformFilters) > 0 {
		o["platformFilters"] = filterContents(d.platformFilters)
	}
	return o
}

func dependencyContents(deps []*TargetDependency) []encoding.Object {
	out := make([]encoding.Object, len(deps))
	for i, d := range deps {
		out[i] = d.contents()
	}
	return out
}
