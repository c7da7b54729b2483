// Package plan assembles a signed build graph into the interchange document
// consumed by the build engine.
//
// The document is not a nested encoding of the tree. It is a flat, ordered
// sequence of tagged bodies: the workspace first, then each project's full
// body in declaration order, each followed immediately by the full bodies of
// its targets. Signable children appear in their parent's body only as
// guid references; everything non-signable is inlined. A consumer that
// caches bodies keyed by guid and signature can skip any subtree whose
// signature is unchanged without understanding the tree shape.
package plan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/blueprint/core/encoding"
	"github.com/FocuswithJustin/blueprint/core/errors"
	"github.com/FocuswithJustin/blueprint/core/model"
	"github.com/FocuswithJustin/blueprint/core/sign"
)

// Body is one element of the assembled document.
type Body struct {
	Type      string          `json:"type"`
	GUID      string          `json:"guid"`
	Signature string          `json:"signature,omitempty"`
	Contents  encoding.Object `json:"contents"`
}

// Document is the assembled top-level sequence.
type Document []Body

// Assemble flattens a workspace into its interchange document.
func Assemble(w *model.Workspace) (Document, error) {
	if w == nil {
		return nil, errors.NewValidation("workspace", "must not be nil")
	}

	var doc Document
	doc = append(doc, bodyOf(w))
	for _, p := range w.Projects() {
		doc = append(doc, bodyOf(p))
		for _, t := range p.Targets() {
			doc = append(doc, bodyOf(t))
		}
	}
	return doc, nil
}

func bodyOf(s model.Signable) Body {
	return Body{
		Type:      s.Kind(),
		GUID:      s.GUID(),
		Signature: s.Signature(),
		Contents:  s.Contents(),
	}
}

// Marshal encodes the document in canonical form.
func (d Document) Marshal() ([]byte, error) {
	data, err := encoding.Marshal(d)
	if err != nil {
		return nil, errors.NewEncode("canonical marshal", "", err)
	}
	return data, nil
}

// MarshalIndent encodes the document for human inspection.
func (d Document) MarshalIndent() ([]byte, error) {
	data, err := encoding.MarshalIndent(d)
	if err != nil {
		return nil, errors.NewEncode("canonical marshal", "", err)
	}
	return data, nil
}

// Parse decodes a document previously produced by Marshal.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := encoding.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewEncode("parse document", "", err)
	}
	return doc, nil
}

// refKeys are the contents fields whose string values are cross-object
// references. Everything else is payload.
var refKeys = map[string]bool{
	"projects":        true,
	"targets":         true,
	"fileReference":   true,
	"targetReference": true,
	"target":          true,
}

// parseRef splits a "<guid>@<version>" reference.
func parseRef(s string) (guid string, version int, ok bool) {
	i := strings.LastIndex(s, "@")
	if i <= 0 || i == len(s)-1 {
		return "", 0, false
	}
	v, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return "", 0, false
	}
	return s[:i], v, true
}

// Verify checks the document's reference integrity: top-level guids are
// distinct, and every cross-object reference resolves to a body in the
// document (top-level or inlined) whose guid matches and whose version
// matches the schema version.
func (d Document) Verify() error {
	topLevel := make(map[string]bool, len(d))
	for _, b := range d {
		if topLevel[b.GUID] {
			return errors.NewDuplicate("document", "guid", b.GUID)
		}
		topLevel[b.GUID] = true
	}

	resolvable := make(map[string]bool)
	for _, b := range d {
		collectGUIDs(b.Contents, resolvable)
	}

	for _, b := range d {
		if err := checkRefs(b.Contents, resolvable); err != nil {
			return errors.Wrapf(err, "body %s", b.GUID)
		}
	}
	return nil
}

// collectGUIDs records the guid of every object in the contents tree.
func collectGUIDs(v any, out map[string]bool) {
	switch val := v.(type) {
	case encoding.Object:
		collectGUIDs(map[string]any(val), out)
	case map[string]any:
		if g, ok := val["guid"].(string); ok {
			out[g] = true
		}
		for _, child := range val {
			collectGUIDs(child, out)
		}
	case []encoding.Object:
		for _, child := range val {
			collectGUIDs(child, out)
		}
	case []any:
		for _, child := range val {
			collectGUIDs(child, out)
		}
	}
}

// checkRefs walks the contents tree and resolves every reference field.
func checkRefs(v any, resolvable map[string]bool) error {
	var check func(key string, val any) error
	check = func(key string, val any) error {
		switch value := val.(type) {
		case string:
			if !refKeys[key] {
				return nil
			}
			guid, version, ok := parseRef(value)
			if !ok {
				return errors.NewValidation(key, fmt.Sprintf("malformed reference %q", value))
			}
			if version != model.SchemaVersion {
				return errors.NewValidation(key,
					fmt.Sprintf("reference %q has version %d, document has %d", value, version, model.SchemaVersion))
			}
			if !resolvable[guid] {
				return errors.NewNotFound("referenced body", guid)
			}
			return nil
		case encoding.Object:
			return check(key, map[string]any(value))
		case map[string]any:
			for k, child := range value {
				if err := check(k, child); err != nil {
					return err
				}
			}
			return nil
		case []encoding.Object:
			for _, child := range value {
				if err := check(key, child); err != nil {
					return err
				}
			}
			return nil
		case []string:
			for _, child := range value {
				if err := check(key, child); err != nil {
					return err
				}
			}
			return nil
		case []any:
			for _, child := range value {
				if err := check(key, child); err != nil {
					return err
				}
			}
			return nil
		default:
			return nil
		}
	}
	return check("", v)
}

// VerifySignatures recomputes every body's content signature and compares it
// to the recorded one. Parent bodies reference owned children by guid, but
// are signed over the children's signatures, so the child references are
// substituted from the document's own signature index before hashing.
func (d Document) VerifySignatures() error {
	sigIndex := make(map[string]string, len(d))
	for _, b := range d {
		sigIndex[b.GUID] = b.Signature
	}

	for _, b := range d {
		if b.Signature == "" {
			return errors.NewValidation("signature", fmt.Sprintf("body %s has no signature", b.GUID))
		}
		contents := b.Contents
		switch b.Type {
		case model.TypeWorkspace:
			substituted, err := substituteChildRefs(contents, "projects", sigIndex)
			if err != nil {
				return errors.Wrapf(err, "body %s", b.GUID)
			}
			contents = substituted
		case model.TypeProject:
			substituted, err := substituteChildRefs(contents, "targets", sigIndex)
			if err != nil {
				return errors.Wrapf(err, "body %s", b.GUID)
			}
			contents = substituted
		}
		if !sign.Verify(contents, b.Signature) {
			return errors.NewValidation("signature", fmt.Sprintf("body %s signature mismatch", b.GUID))
		}
	}
	return nil
}

// substituteChildRefs replaces "<guid>@<v>" entries of the named field with
// "<signature>@<v>" using the document's signature index.
func substituteChildRefs(contents encoding.Object, field string, sigIndex map[string]string) (encoding.Object, error) {
	raw, ok := contents[field]
	if !ok {
		return contents, nil
	}

	var refs []string
	switch val := raw.(type) {
	case []string:
		refs = val
	case []any:
		refs = make([]string, 0, len(val))
		for _, e := range val {
			s, ok := e.(string)
			if !ok {
				return nil, errors.NewValidation(field, "reference list holds a non-string entry")
			}
			refs = append(refs, s)
		}
	default:
		return nil, errors.NewValidation(field, "not a reference list")
	}

	substituted := make([]string, len(refs))
	for i, r := range refs {
		guid, _, ok := parseRef(r)
		if !ok {
			return nil, errors.NewValidation(field, fmt.Sprintf("malformed reference %q", r))
		}
		childSig, ok := sigIndex[guid]
		if !ok || childSig == "" {
			return nil, errors.NewNotFound("signed child body", guid)
		}
		substituted[i] = model.Ref(childSig)
	}

	out := contents.Omitting(field)
	out[field] = substituted
	return out, nil
}
