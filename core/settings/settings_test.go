package settings

import (
	"reflect"
	"testing"

	"github.com/FocuswithJustin/blueprint/core/errors"
)

func TestScalarSettingIsValid(t *testing.T) {
	if !ProductName.IsValid() {
		t.Error("PRODUCT_NAME should be valid")
	}
	if ScalarSetting("MADE_UP_SETTING").IsValid() {
		t.Error("unknown scalar setting reported valid")
	}
}

func TestListSettingIsValid(t *testing.T) {
	if !OtherCFlags.IsValid() {
		t.Error("OTHER_CFLAGS should be valid")
	}
	if ListSetting("MADE_UP_LIST").IsValid() {
		t.Error("unknown list setting reported valid")
	}
}

func TestPlatformConditions(t *testing.T) {
	tests := []struct {
		platform Platform
		want     []string
	}{
		{PlatformMacOS, []string{"sdk=macosx*"}},
		{PlatformIOS, []string{"sdk=iphoneos*", "sdk=iphonesimulator*"}},
		{PlatformTVOS, []string{"sdk=appletvos*", "sdk=appletvsimulator*"}},
		{PlatformWatchOS, []string{"sdk=watchos*", "sdk=watchsimulator*"}},
		{PlatformDriverKit, []string{"sdk=driverkit*"}},
	}
	for _, tt := range tests {
		got := tt.platform.Conditions()
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s conditions = %v, want %v", tt.platform, got, tt.want)
		}
	}

	if Platform("beos").IsValid() {
		t.Error("unknown platform reported valid")
	}
}

func TestFlattenScalar(t *testing.T) {
	s := New()
	s.Scalar[ProductName] = "core"
	s.Scalar[SDKRoot] = "macosx"

	flat := s.Flatten()
	if flat["PRODUCT_NAME"] != "core" {
		t.Errorf("PRODUCT_NAME = %v", flat["PRODUCT_NAME"])
	}
	if flat["SDKROOT"] != "macosx" {
		t.Errorf("SDKROOT = %v", flat["SDKROOT"])
	}
	if len(flat) != 2 {
		t.Errorf("flat has %d entries, want 2", len(flat))
	}
}

func TestFlattenList(t *testing.T) {
	s := New()
	s.Lists[OtherCFlags] = []string{"-Wall", "-O2"}

	flat := s.Flatten()
	got, ok := flat["OTHER_CFLAGS"].([]string)
	if !ok {
		t.Fatalf("OTHER_CFLAGS is %T, want []string", flat["OTHER_CFLAGS"])
	}
	if !reflect.DeepEqual(got, []string{"-Wall", "-O2"}) {
		t.Errorf("OTHER_CFLAGS = %v", got)
	}
}

// A list setting conditioned on a two-clause platform expands into exactly
// two synthesized keys carrying identical duplicated values, and an ungated
// entry for the same base key still appears on its own.
func TestFlattenPlatformConditioned(t *testing.T) {
	s := New()
	s.Lists[FrameworkSearchPaths] = []string{"/common"}
	s.AddPlatformList(PlatformIOS, FrameworkSearchPaths, "/ios/frameworks")

	flat := s.Flatten()

	device, ok := flat["FRAMEWORK_SEARCH_PATHS[sdk=iphoneos*]"].([]string)
	if !ok {
		t.Fatal("device clause missing")
	}
	sim, ok := flat["FRAMEWORK_SEARCH_PATHS[sdk=iphonesimulator*]"].([]string)
	if !ok {
		t.Fatal("simulator clause missing")
	}
	if !reflect.DeepEqual(device, sim) {
		t.Errorf("clause values differ: %v vs %v", device, sim)
	}
	if !reflect.DeepEqual(device, []string{"/ios/frameworks"}) {
		t.Errorf("clause value = %v", device)
	}

	// The ungated entry is not suppressed
	ungated, ok := flat["FRAMEWORK_SEARCH_PATHS"].([]string)
	if !ok {
		t.Fatal("ungated entry missing")
	}
	if !reflect.DeepEqual(ungated, []string{"/common"}) {
		t.Errorf("ungated value = %v", ungated)
	}

	if len(flat) != 3 {
		t.Errorf("flat has %d entries, want 3", len(flat))
	}
}

func TestFlattenSingleClausePlatform(t *testing.T) {
	s := New()
	s.AddPlatformList(PlatformMacOS, OtherLDFlags, "-lz")

	flat := s.Flatten()
	if len(flat) != 1 {
		t.Fatalf("flat has %d entries, want 1", len(flat))
	}
	if _, ok := flat["OTHER_LDFLAGS[sdk=macosx*]"]; !ok {
		t.Error("synthesized macos key missing")
	}
}

func TestFlattenCopiesValues(t *testing.T) {
	s := New()
	s.Lists[OtherCFlags] = []string{"-Wall"}
	flat := s.Flatten()

	s.Lists[OtherCFlags][0] = "-mutated"
	if flat["OTHER_CFLAGS"].([]string)[0] != "-Wall" {
		t.Error("Flatten aliased the source slice")
	}
}

func TestValidate(t *testing.T) {
	s := New()
	s.Scalar[ProductName] = "ok"
	s.Lists[OtherCFlags] = []string{"-Wall"}
	s.AddPlatformList(PlatformIOS, HeaderSearchPaths, "/inc")
	if err := s.Validate(); err != nil {
		t.Errorf("Validate failed for valid settings: %v", err)
	}

	bad := New()
	bad.Scalar[ScalarSetting("NOPE")] = "x"
	if err := bad.Validate(); !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("Validate = %v, want ErrUnsupported", err)
	}

	bad2 := New()
	bad2.Lists[ListSetting("NOPE_LIST")] = []string{"x"}
	if err := bad2.Validate(); !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("Validate = %v, want ErrUnsupported", err)
	}

	bad3 := New()
	bad3.AddPlatformList(Platform("beos"), OtherCFlags, "x")
	if err := bad3.Validate(); !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("Validate = %v, want ErrUnsupported", err)
	}

	bad4 := New()
	bad4.AddPlatformList(PlatformIOS, ListSetting("NOPE_LIST"), "x")
	if err := bad4.Validate(); !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("Validate = %v, want ErrUnsupported", err)
	}
}

func TestClone(t *testing.T) {
	s := New()
	s.Scalar[ProductName] = "core"
	s.Lists[OtherCFlags] = []string{"-Wall"}
	s.AddPlatformList(PlatformIOS, OtherCFlags, "-DIOS")

	c := s.Clone()
	s.Scalar[ProductName] = "mutated"
	s.Lists[OtherCFlags][0] = "-mutated"
	s.PlatformLists[PlatformIOS][OtherCFlags][0] = "-mutated"

	if c.Scalar[ProductName] != "core" {
		t.Error("Clone aliased the scalar map")
	}
	if c.Lists[OtherCFlags][0] != "-Wall" {
		t.Error("Clone aliased a list slice")
	}
	if c.PlatformLists[PlatformIOS][OtherCFlags][0] != "-DIOS" {
		t.Error("Clone aliased a platform list slice")
	}
}

func TestIsEmpty(t *testing.T) {
	s := New()
	if !s.IsEmpty() {
		t.Error("new settings should be empty")
	}
	s.Scalar[ProductName] = "x"
	if s.IsEmpty() {
		t.Error("populated settings reported empty")
	}
}
