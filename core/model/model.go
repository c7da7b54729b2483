// Package model defines the build-graph object model: the reference tree,
// build phases and files, build configurations, and the signable objects
// (Workspace, Project, Target, AggregateTarget).
//
// Signable objects are constructed bottom-up. Each constructor validates its
// own invariants, assembles the object's canonical contents, and computes the
// content signature before returning; the resulting value is immutable and
// carries its signature for its entire lifetime. A changed graph is a newly
// constructed graph. Cross-object references are rendered as
// "<guid>@<SchemaVersion>" so consumers invalidate caches across format
// revisions.
package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/blueprint/core/encoding"
	"github.com/FocuswithJustin/blueprint/core/errors"
)

// SchemaVersion is the interchange document schema version. It is appended
// to every cross-object reference.
const SchemaVersion = 11

// Discriminator tags identifying each body kind in the assembled document.
const (
	TypeWorkspace = "workspace"
	TypeProject   = "project"
	TypeTarget    = "target"
	TypeAggregate = "aggregate"
	TypeFile      = "file"
	TypeGroup     = "group"
)

// Ref renders a versioned cross-object reference for a guid (or, during the
// signature pass, for a child signature).
func Ref(id string) string {
	return fmt.Sprintf("%s@%d", id, SchemaVersion)
}

// guidNamespace scopes deterministic GUID derivation to this schema.
var guidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("blueprint.dev/guid"))

// NewGUID returns a random unique identifier.
func NewGUID() string {
	return uuid.New().String()
}

// DeterministicGUID derives a stable identifier from the given name parts.
// Graphs built from the same description get the same guids on every run,
// which keeps assembled documents byte-identical across invocations.
func DeterministicGUID(parts ...string) string {
	return uuid.NewSHA1(guidNamespace, []byte(strings.Join(parts, "/"))).String()
}

// Signable is an object type whose instances carry an immutable,
// self-computed content signature.
type Signable interface {
	// GUID returns the object's identifier, unique among its siblings.
	GUID() string
	// Name returns the object's display name.
	Name() string
	// Signature returns the content signature computed at construction.
	Signature() string
	// Kind returns the discriminator tag for the assembled document.
	Kind() string
	// Contents returns the canonical document-form body. Owned signable
	// children appear as guid references; everything else is inlined.
	Contents() encoding.Object
}

// ProjectTarget is the closed set of signable objects a project may own:
// Target and AggregateTarget.
type ProjectTarget interface {
	Signable
	isProjectTarget()
}

// checkDistinct verifies that values are pairwise distinct within a sibling
// collection, failing fast on the first repeat.
func checkDistinct(collection, kind string, values []string) error {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return errors.NewDuplicate(collection, kind, v)
		}
		seen[v] = true
	}
	return nil
}
