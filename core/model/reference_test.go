package model

import (
	"testing"

	"github.com/FocuswithJustin/blueprint/core/encoding"
	"github.com/FocuswithJustin/blueprint/core/errors"
	"github.com/FocuswithJustin/blueprint/core/settings"
)

func TestNewFileReference(t *testing.T) {
	f, err := NewFileReference("FR-1", SourceTreeGroup, "main.c", "", "sourcecode.c.c")
	if err != nil {
		t.Fatalf("NewFileReference failed: %v", err)
	}
	if f.GUID() != "FR-1" || f.Path() != "main.c" || f.FileType() != "sourcecode.c.c" {
		t.Error("fields not stored")
	}

	c := f.contents()
	if c["type"] != TypeFile {
		t.Errorf("type = %v, want %q", c["type"], TypeFile)
	}
	if _, ok := c["name"]; ok {
		t.Error("empty name should be omitted")
	}
}

func TestNewFileReferenceValidation(t *testing.T) {
	tests := []struct {
		name string
		guid string
		tree SourceTree
		path string
	}{
		{"empty guid", "", SourceTreeGroup, "main.c"},
		{"empty path", "FR-1", SourceTreeGroup, ""},
		{"bad source tree", "FR-1", SourceTree("WHEREVER"), "main.c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileReference(tt.guid, tt.tree, tt.path, "", "")
			if !errors.Is(err, errors.ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestSourceTreeIsValid(t *testing.T) {
	for _, tree := range []SourceTree{SourceTreeRoot, SourceTreeGroup, SourceTreeBuildProducts, SourceTreeAbsolute} {
		if !tree.IsValid() {
			t.Errorf("%q should be valid", tree)
		}
	}
	if SourceTree("SRCROOT").IsValid() {
		t.Error("unknown source tree reported valid")
	}
}

func TestNewGroup(t *testing.T) {
	f1, _ := NewFileReference("FR-1", SourceTreeGroup, "a.c", "", "")
	f2, _ := NewFileReference("FR-2", SourceTreeGroup, "b.c", "", "")
	sub, err := NewGroup("GRP-2", SourceTreeGroup, "sub", "", []Reference{f2})
	if err != nil {
		t.Fatalf("NewGroup failed: %v", err)
	}

	g, err := NewGroup("GRP-1", SourceTreeRoot, "", "Sources", []Reference{f1, sub})
	if err != nil {
		t.Fatalf("NewGroup failed: %v", err)
	}

	c := g.contents()
	if c["type"] != TypeGroup {
		t.Errorf("type = %v, want %q", c["type"], TypeGroup)
	}

	// Children are inlined bodies, not references
	children := c["children"].([]encoding.Object)
	if len(children) != 2 {
		t.Fatalf("children count = %d, want 2", len(children))
	}
	if children[0]["guid"] != "FR-1" || children[1]["guid"] != "GRP-2" {
		t.Error("children out of declaration order")
	}
	nested := children[1]["children"].([]encoding.Object)
	if len(nested) != 1 || nested[0]["guid"] != "FR-2" {
		t.Error("nested group children not inlined")
	}
}

func TestGroupDuplicateChildGUID(t *testing.T) {
	f1, _ := NewFileReference("FR-1", SourceTreeGroup, "a.c", "", "")
	f2, _ := NewFileReference("FR-1", SourceTreeGroup, "b.c", "", "")

	_, err := NewGroup("GRP-1", SourceTreeRoot, "", "", []Reference{f1, f2})
	if !errors.Is(err, errors.ErrDuplicate) {
		t.Errorf("err = %v, want ErrDuplicate", err)
	}

	var de *errors.DuplicateError
	if !errors.As(err, &de) {
		t.Fatal("expected DuplicateError")
	}
	if de.Value != "FR-1" {
		t.Errorf("duplicate value = %q, want FR-1", de.Value)
	}
}

func TestNewBuildFile(t *testing.T) {
	bf, err := NewBuildFile("BF-1", "FR-1", nil)
	if err != nil {
		t.Fatalf("NewBuildFile failed: %v", err)
	}
	c := bf.contents()
	if c["fileReference"] != "FR-1@11" {
		t.Errorf("fileReference = %v", c["fileReference"])
	}
	if _, ok := c["targetReference"]; ok {
		t.Error("file build file must not carry a target reference")
	}
	if _, ok := c["platformFilters"]; ok {
		t.Error("empty platform filters should be omitted")
	}

	if _, err := NewBuildFile("", "FR-1", nil); !errors.Is(err, errors.ErrInvalidInput) {
		t.Error("empty guid should fail")
	}
	if _, err := NewBuildFile("BF-1", "", nil); !errors.Is(err, errors.ErrInvalidInput) {
		t.Error("empty file reference should fail")
	}
}

func TestNewTargetBuildFile(t *testing.T) {
	filter, err := NewPlatformFilter(settings.PlatformIOS, "simulator")
	if err != nil {
		t.Fatalf("NewPlatformFilter failed: %v", err)
	}

	bf, err := NewTargetBuildFile("BF-1", "TGT-2", []PlatformFilter{filter})
	if err != nil {
		t.Fatalf("NewTargetBuildFile failed: %v", err)
	}
	c := bf.contents()
	if c["targetReference"] != "TGT-2@11" {
		t.Errorf("targetReference = %v", c["targetReference"])
	}
	filters := c["platformFilters"].([]encoding.Object)
	if len(filters) != 1 || filters[0]["platform"] != "ios" || filters[0]["environment"] != "simulator" {
		t.Errorf("platformFilters = %v", filters)
	}

	if _, err := NewTargetBuildFile("BF-1", "", nil); !errors.Is(err, errors.ErrInvalidInput) {
		t.Error("empty target reference should fail")
	}
}

func TestNewPlatformFilterValidation(t *testing.T) {
	if _, err := NewPlatformFilter(settings.Platform("beos"), ""); !errors.Is(err, errors.ErrInvalidInput) {
		t.Error("unknown platform should fail")
	}
}

func TestNewBuildPhase(t *testing.T) {
	bf1, _ := NewBuildFile("BF-1", "FR-1", nil)
	bf2, _ := NewBuildFile("BF-2", "FR-2", nil)

	p, err := NewBuildPhase("PH-1", PhaseSources, []*BuildFile{bf1, bf2})
	if err != nil {
		t.Fatalf("NewBuildPhase failed: %v", err)
	}
	c := p.contents()
	if c["type"] != "sources" {
		t.Errorf("type = %v, want sources", c["type"])
	}

	// Duplicate build file guids fail
	dup, _ := NewBuildFile("BF-1", "FR-3", nil)
	if _, err := NewBuildPhase("PH-2", PhaseSources, []*BuildFile{bf1, dup}); !errors.Is(err, errors.ErrDuplicate) {
		t.Errorf("err = %v, want ErrDuplicate", err)
	}

	// Unknown phase kind fails
	if _, err := NewBuildPhase("PH-3", PhaseKind("prelink"), nil); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestNewBuildConfiguration(t *testing.T) {
	s := settings.New()
	s.Scalar[settings.ProductName] = "core"

	c, err := NewBuildConfiguration("CFG-1", "Debug", s)
	if err != nil {
		t.Fatalf("NewBuildConfiguration failed: %v", err)
	}

	// Settings are cloned at construction
	s.Scalar[settings.ProductName] = "mutated"
	if c.Settings().Scalar[settings.ProductName] != "core" {
		t.Error("configuration aliased the caller's settings")
	}

	body := c.contents()
	flat := body["buildSettings"].(map[string]any)
	if flat["PRODUCT_NAME"] != "core" {
		t.Errorf("PRODUCT_NAME = %v", flat["PRODUCT_NAME"])
	}

	if _, err := NewBuildConfiguration("", "Debug", settings.New()); !errors.Is(err, errors.ErrInvalidInput) {
		t.Error("empty guid should fail")
	}
	if _, err := NewBuildConfiguration("CFG-1", "", settings.New()); !errors.Is(err, errors.ErrInvalidInput) {
		t.Error("empty name should fail")
	}

	bad := settings.New()
	bad.Scalar[settings.ScalarSetting("NOPE")] = "x"
	if _, err := NewBuildConfiguration("CFG-1", "Debug", bad); !errors.Is(err, errors.ErrUnsupported) {
		t.Error("invalid settings should fail")
	}
}

func TestNewTargetDependency(t *testing.T) {
	d, err := NewTargetDependency("TGT-2", nil)
	if err != nil {
		t.Fatalf("NewTargetDependency failed: %v", err)
	}
	if d.contents()["target"] != "TGT-2@11" {
		t.Errorf("target = %v", d.contents()["target"])
	}

	if _, err := NewTargetDependency("", nil); !errors.Is(err, errors.ErrInvalidInput) {
		t.Error("empty target guid should fail")
	}
}
