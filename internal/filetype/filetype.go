// Package filetype maps source file extensions to the file type
// identifiers carried by file references.
package filetype

import (
	"path/filepath"
	"strings"
)

// byExtension maps lowercased file extensions to file type identifiers.
var byExtension = map[string]string{
	".c":             "sourcecode.c.c",
	".m":             "sourcecode.c.objc",
	".h":             "sourcecode.c.h",
	".hpp":           "sourcecode.cpp.h",
	".hh":            "sourcecode.cpp.h",
	".cpp":           "sourcecode.cpp.cpp",
	".cc":            "sourcecode.cpp.cpp",
	".cxx":           "sourcecode.cpp.cpp",
	".mm":            "sourcecode.cpp.objcpp",
	".swift":         "sourcecode.swift",
	".s":             "sourcecode.asm",
	".metal":         "sourcecode.metal",
	".plist":         "text.plist",
	".entitlements":  "text.plist.entitlements",
	".modulemap":     "sourcecode.module-map",
	".xib":           "file.xib",
	".storyboard":    "file.storyboard",
	".xcassets":      "folder.assetcatalog",
	".xcdatamodeld":  "wrapper.xcdatamodeld",
	".strings":       "text.plist.strings",
	".md":            "net.daringfireball.markdown",
	".json":          "text.json",
	".a":             "archive.ar",
	".dylib":         "compiled.mach-o.dylib",
	".framework":     "wrapper.framework",
	".xcframework":   "wrapper.xcframework",
	".bundle":        "wrapper.cfbundle",
	".app":           "wrapper.application",
	".xctest":        "wrapper.cfbundle",
}

// DefaultType is returned for extensions with no known identifier.
const DefaultType = "text"

// Identify returns the file type identifier for a path, based on its
// extension. Unknown extensions identify as DefaultType.
func Identify(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := byExtension[ext]; ok {
		return t
	}
	return DefaultType
}

// IsSource reports whether a path identifies as compilable source code.
func IsSource(path string) bool {
	return strings.HasPrefix(Identify(path), "sourcecode.") &&
		!isHeader(path)
}

// IsHeader reports whether a path identifies as a C-family header.
func IsHeader(path string) bool {
	return isHeader(path)
}

func isHeader(path string) bool {
	t := Identify(path)
	return t == "sourcecode.c.h" || t == "sourcecode.cpp.h"
}

// IsResource reports whether a path identifies as a bundle resource.
func IsResource(path string) bool {
	switch Identify(path) {
	case "file.xib", "file.storyboard", "folder.assetcatalog",
		"text.plist.strings", "wrapper.xcdatamodeld":
		return true
	}
	return false
}
