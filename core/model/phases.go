package model

import (
	"fmt"

	"github.com/FocuswithJustin/blueprint/core/encoding"
	"github.com/FocuswithJustin/blueprint/core/errors"
	"github.com/FocuswithJustin/blueprint/core/settings"
)

// PhaseKind identifies a build phase variant.
type PhaseKind string

// Build phase kinds.
const (
	PhaseSources    PhaseKind = "sources"
	PhaseHeaders    PhaseKind = "headers"
	PhaseFrameworks PhaseKind = "frameworks"
	PhaseResources  PhaseKind = "resources"
)

// validPhaseKinds is the set of valid phase kinds.
var validPhaseKinds = map[PhaseKind]bool{
	PhaseSources:    true,
	PhaseHeaders:    true,
	PhaseFrameworks: true,
	PhaseResources:  true,
}

// IsValid returns true if the phase kind is valid.
func (k PhaseKind) IsValid() bool {
	return validPhaseKinds[k]
}

// PlatformFilter restricts a build file or dependency to a platform,
// optionally narrowed to an environment such as "simulator".
type PlatformFilter struct {
	platform    settings.Platform
	environment string
}

// NewPlatformFilter creates a platform filter.
func NewPlatformFilter(platform settings.Platform, environment string) (PlatformFilter, error) {
	if !platform.IsValid() {
		return PlatformFilter{}, errors.NewValidation("platformFilter.platform",
			fmt.Sprintf("invalid platform %q", string(platform)))
	}
	return PlatformFilter{platform: platform, environment: environment}, nil
}

// Platform returns the platform name.
func (p PlatformFilter) Platform() settings.Platform { return p.platform }

// Environment returns the optional environment qualifier.
func (p PlatformFilter) Environment() string { return p.environment }

func (p PlatformFilter) contents() encoding.Object {
	o := encoding.Object{"platform": string(p.platform)}
	o.SetNonEmpty("environment", p.environment)
	return o
}

func filterContents(filters []PlatformFilter) []encoding.Object {
	out := make([]encoding.Object, len(filters))
	for i, f := range filters {
		out[i] = f.contents()
	}
	return out
}

// BuildFile is one ordered member of a build phase. It references either a
// file in the reference tree or a sibling target's product, never both.
type BuildFile struct {
	guid            string
	fileGUID        string
	targetGUID      string
	platformFilters []PlatformFilter
}

// NewBuildFile creates a build file referencing a file in the reference tree.
func NewBuildFile(guid, fileGUID string, filters []PlatformFilter) (*BuildFile, error) {
	if guid == "" {
		return nil, errors.NewValidation("buildFile.guid", "must not be empty")
	}
	if fileGUID == "" {
		return nil, errors.NewValidation("buildFile.fileReference", "must not be empty")
	}
	return &BuildFile{
		guid:            guid,
		fileGUID:        fileGUID,
		platformFilters: append([]PlatformFilter(nil), filters...),
	}, nil
}

// NewTargetBuildFile creates a build file referencing a sibling target's
// product, as used in frameworks phases.
func NewTargetBuildFile(guid, targetGUID string, filters []PlatformFilter) (*BuildFile, error) {
	if guid == "" {
		return nil, errors.NewValidation("buildFile.guid", "must not be empty")
	}
	if targetGUID == "" {
		return nil, errors.NewValidation("buildFile.targetReference", "must not be empty")
	}
	return &BuildFile{
		guid:            guid,
		targetGUID:      targetGUID,
		platformFilters: append([]PlatformFilter(nil), filters...),
	}, nil
}

// GUID returns the build file identifier.
func (b *BuildFile) GUID() string { return b.guid }

// FileGUID returns the referenced file guid, empty for target references.
func (b *BuildFile) FileGUID() string { return b.fileGUID }

// TargetGUID returns the referenced target guid, empty for file references.
func (b *BuildFile) TargetGUID() string { return b.targetGUID }

// PlatformFilters returns the filters restricting applicability.
func (b *BuildFile) PlatformFilters() []PlatformFilter {
	return append([]PlatformFilter(nil), b.platformFilters...)
}

func (b *BuildFile) contents() encoding.Object {
	o := encoding.Object{"guid": b.guid}
	if b.fileGUID != "" {
		o["fileReference"] = Ref(b.fileGUID)
	} else {
		o["targetReference"] = Ref(b.targetGUID)
	}
	if len(b.platformFilters) > 0 {
		o["platformFilters"] = filterContents(b.platformFilters)
	}
	return o
}

// BuildPhase is an ordered membership list of build files.
type BuildPhase struct {
	guid  string
	kind  PhaseKind
	files []*BuildFile
}

// NewBuildPhase creates a build phase. Build file guids must be pairwise
// distinct within the phase.
func NewBuildPhase(guid string, kind PhaseKind, files []*BuildFile) (*BuildPhase, error) {
	if guid == "" {
		return nil, errors.NewValidation("buildPhase.guid", "must not be empty")
	}
	if !kind.IsValid() {
		return nil, errors.NewValidation("buildPhase.kind",
			fmt.Sprintf("invalid phase kind %q", string(kind)))
	}
	guids := make([]string, len(files))
	for i, f := range files {
		guids[i] = f.GUID()
	}
	if err := checkDistinct("buildPhase.buildFiles", "guid", guids); err != nil {
		return nil, err
	}
	return &BuildPhase{
		guid:  guid,
		kind:  kind,
		files: append([]*BuildFile(nil), files...),
	}, nil
}

// GUID returns the phase identifier.
func (p *BuildPhase) GUID() string { return p.guid }

// Kind returns the phase kind.
func (p *BuildPhase) Kind() PhaseKind { return p.kind }

// BuildFiles returns the ordered build files.
func (p *BuildPhase) BuildFiles() []*BuildFile {
	return append([]*BuildFile(nil), p.files...)
}

func (p *BuildPhase) contents() encoding.Object {
	files := make([]encoding.Object, len(p.files))
	for i, f := range p.files {
		files[i] = f.contents()
	}
	return encoding.Object{
		"type":       string(p.kind),
		"guid":       p.guid,
		"buildFiles": files,
	}
}
