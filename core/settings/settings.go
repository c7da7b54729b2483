// Package settings models build settings and their flattened encoding.
//
// Setting names form two closed enumerations: scalar-valued and list-valued.
// A name outside these enumerations is not representable; the enumeration
// itself is the validation. List-valued settings may additionally be
// conditioned on a target platform, in which case flattening synthesizes one
// key per condition clause associated with that platform.
package settings

import (
	"fmt"

	"github.com/FocuswithJustin/blueprint/core/errors"
)

// ScalarSetting names a scalar-valued build setting.
type ScalarSetting string

// Scalar-valued setting names.
const (
	ProductName             ScalarSetting = "PRODUCT_NAME"
	ProductModuleName       ScalarSetting = "PRODUCT_MODULE_NAME"
	ProductBundleIdentifier ScalarSetting = "PRODUCT_BUNDLE_IDENTIFIER"
	ExecutableName          ScalarSetting = "EXECUTABLE_NAME"
	TargetName              ScalarSetting = "TARGET_NAME"
	SDKRoot                 ScalarSetting = "SDKROOT"
	MacOSDeploymentTarget   ScalarSetting = "MACOSX_DEPLOYMENT_TARGET"
	IOSDeploymentTarget     ScalarSetting = "IPHONEOS_DEPLOYMENT_TARGET"
	TVOSDeploymentTarget    ScalarSetting = "TVOS_DEPLOYMENT_TARGET"
	WatchOSDeploymentTarget ScalarSetting = "WATCHOS_DEPLOYMENT_TARGET"
	SwiftVersion            ScalarSetting = "SWIFT_VERSION"
	ClangEnableModules      ScalarSetting = "CLANG_ENABLE_MODULES"
	DefinesModule           ScalarSetting = "DEFINES_MODULE"
	SkipInstall             ScalarSetting = "SKIP_INSTALL"
	GenerateInfoPlist       ScalarSetting = "GENERATE_INFOPLIST_FILE"
)

// validScalarSettings is the set of valid scalar setting names.
var validScalarSettings = map[ScalarSetting]bool{
	ProductName:             true,
	ProductModuleName:       true,
	ProductBundleIdentifier: true,
	ExecutableName:          true,
	TargetName:              true,
	SDKRoot:                 true,
	MacOSDeploymentTarget:   true,
	IOSDeploymentTarget:     true,
	TVOSDeploymentTarget:    true,
	WatchOSDeploymentTarget: true,
	SwiftVersion:            true,
	ClangEnableModules:      true,
	DefinesModule:           true,
	SkipInstall:             true,
	GenerateInfoPlist:       true,
}

// IsValid returns true if the scalar setting name is valid.
func (s ScalarSetting) IsValid() bool {
	return validScalarSettings[s]
}

// ListSetting names a list-valued build setting.
type ListSetting string

// List-valued setting names.
const (
	FrameworkSearchPaths       ListSetting = "FRAMEWORK_SEARCH_PATHS"
	HeaderSearchPaths          ListSetting = "HEADER_SEARCH_PATHS"
	LibrarySearchPaths         ListSetting = "LIBRARY_SEARCH_PATHS"
	RunpathSearchPaths         ListSetting = "LD_RUNPATH_SEARCH_PATHS"
	PreprocessorDefinitions    ListSetting = "GCC_PREPROCESSOR_DEFINITIONS"
	SwiftCompilationConditions ListSetting = "SWIFT_ACTIVE_COMPILATION_CONDITIONS"
	OtherCFlags                ListSetting = "OTHER_CFLAGS"
	OtherCPlusPlusFlags        ListSetting = "OTHER_CPLUSPLUSFLAGS"
	OtherLDFlags               ListSetting = "OTHER_LDFLAGS"
	OtherSwiftFlags            ListSetting = "OTHER_SWIFT_FLAGS"
)

// validListSettings is the set of valid list setting names.
var validListSettings = map[ListSetting]bool{
	FrameworkSearchPaths:       true,
	HeaderSearchPaths:          true,
	LibrarySearchPaths:         true,
	RunpathSearchPaths:         true,
	PreprocessorDefinitions:    true,
	SwiftCompilationConditions: true,
	OtherCFlags:                true,
	OtherCPlusPlusFlags:        true,
	OtherLDFlags:               true,
	OtherSwiftFlags:            true,
}

// IsValid returns true if the list setting name is valid.
func (s ListSetting) IsValid() bool {
	return validListSettings[s]
}

// Platform identifies a target platform for conditioned settings.
type Platform string

// Platform constants.
const (
	PlatformMacOS     Platform = "macos"
	PlatformIOS       Platform = "ios"
	PlatformTVOS      Platform = "tvos"
	PlatformWatchOS   Platform = "watchos"
	PlatformDriverKit Platform = "driverkit"
)

// platformConditions maps each platform to its condition clauses. The mobile
// platforms match both the device and the simulator SDK, so a setting
// conditioned on one of them expands to two synthesized keys.
var platformConditions = map[Platform][]string{
	PlatformMacOS:     {"sdk=macosx*"},
	PlatformIOS:       {"sdk=iphoneos*", "sdk=iphonesimulator*"},
	PlatformTVOS:      {"sdk=appletvos*", "sdk=appletvsimulator*"},
	PlatformWatchOS:   {"sdk=watchos*", "sdk=watchsimulator*"},
	PlatformDriverKit: {"sdk=driverkit*"},
}

// IsValid returns true if the platform is valid.
func (p Platform) IsValid() bool {
	_, ok := platformConditions[p]
	return ok
}

// Conditions returns the condition clauses for the platform, in a fixed order.
func (p Platform) Conditions() []string {
	clauses := platformConditions[p]
	out := make([]string, len(clauses))
	copy(out, clauses)
	return out
}

// Settings holds the build settings of one build configuration: scalar
// settings, ungated list settings, and platform-conditioned list settings.
type Settings struct {
	Scalar        map[ScalarSetting]string
	Lists         map[ListSetting][]string
	PlatformLists map[Platform]map[ListSetting][]string
}

// New returns an empty Settings record with initialized maps.
func New() Settings {
	return Settings{
		Scalar:        make(map[ScalarSetting]string),
		Lists:         make(map[ListSetting][]string),
		PlatformLists: make(map[Platform]map[ListSetting][]string),
	}
}

// AddPlatformList appends values to a platform-conditioned list setting.
func (s Settings) AddPlatformList(platform Platform, name ListSetting, values ...string) {
	byName, ok := s.PlatformLists[platform]
	if !ok {
		byName = make(map[ListSetting][]string)
		s.PlatformLists[platform] = byName
	}
	byName[name] = append(byName[name], values...)
}

// IsEmpty returns true if no settings are populated.
func (s Settings) IsEmpty() bool {
	return len(s.Scalar) == 0 && len(s.Lists) == 0 && len(s.PlatformLists) == 0
}

// Clone returns a deep copy. Constructors of signable objects clone the
// settings they receive so later caller mutation cannot reach signed state.
func (s Settings) Clone() Settings {
	out := New()
	for k, v := range s.Scalar {
		out.Scalar[k] = v
	}
	for k, v := range s.Lists {
		out.Lists[k] = append([]string(nil), v...)
	}
	for p, byName := range s.PlatformLists {
		dst := make(map[ListSetting][]string, len(byName))
		for k, v := range byName {
			dst[k] = append([]string(nil), v...)
		}
		out.PlatformLists[p] = dst
	}
	return out
}

// Validate checks that every setting name and platform belongs to the
// closed enumerations.
func (s Settings) Validate() error {
	for k := range s.Scalar {
		if !k.IsValid() {
			return errors.NewUnsupported("setting", fmt.Sprintf("unknown scalar setting %q", string(k)))
		}
	}
	for k := range s.Lists {
		if !k.IsValid() {
			return errors.NewUnsupported("setting", fmt.Sprintf("unknown list setting %q", string(k)))
		}
	}
	for p, byName := range s.PlatformLists {
		if !p.IsValid() {
			return errors.NewUnsupported("platform", fmt.Sprintf("unknown platform %q", string(p)))
		}
		for k := range byName {
			if !k.IsValid() {
				return errors.NewUnsupported("setting", fmt.Sprintf("unknown list setting %q", string(k)))
			}
		}
	}
	return nil
}

// Flatten produces the flat key to value mapping used in the canonical
// encoding. Scalar settings emit their value as-is; list settings emit an
// ordered list; platform-conditioned list settings emit one synthesized key
// per condition clause of their platform, duplicating the value list across
// clauses. An ungated list entry and a conditioned entry for the same base
// key both appear in the output.
func (s Settings) Flatten() map[string]any {
	out := make(map[string]any)
	for k, v := range s.Scalar {
		out[string(k)] = v
	}
	for k, v := range s.Lists {
		out[string(k)] = append([]string(nil), v...)
	}
	for p, byName := range s.PlatformLists {
		for k, v := range byName {
			for _, clause := range p.Conditions() {
				out[fmt.Sprintf("%s[%s]", string(k), clause)] = append([]string(nil), v...)
			}
		}
	}
	return out
}
