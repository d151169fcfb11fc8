// Package refscan builds an approximate reference graph across a web
// project's markup, style and script files, and classifies CSS/JS/image
// assets as used or unused.
//
// Extraction is pattern-based by design, not a real parser. The matching
// rules deliberately over-approximate "used": false negatives (a referenced
// file reported as used) are acceptable, false positives (deleting a file
// that is still needed) must stay rare.
package refscan

import (
	"path"
	"strings"
)

// SourceKind identifies the syntax family of a file that can contain
// references to other assets.
type SourceKind string

const (
	Markup SourceKind = "markup"
	Style  SourceKind = "style"
	Script SourceKind = "script"
)

// AssetCategory identifies the classification buckets for unused-asset
// reporting.
type AssetCategory string

const (
	AssetCSS   AssetCategory = "css"
	AssetJS    AssetCategory = "js"
	AssetImage AssetCategory = "image"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".svg": true, ".webp": true,
}

// KindOf returns the source kind for a file path, or "" if the file cannot
// contain references we scan for.
func KindOf(filePath string) SourceKind {
	switch strings.ToLower(path.Ext(filePath)) {
	case ".html", ".htm":
		return Markup
	case ".css":
		return Style
	case ".js", ".mjs":
		return Script
	default:
		return ""
	}
}

// CategoryOf returns the asset category for a file path, or "" if the file
// is not a classifiable asset.
func CategoryOf(filePath string) AssetCategory {
	ext := strings.ToLower(path.Ext(filePath))
	switch {
	case ext == ".css":
		return AssetCSS
	case ext == ".js" || ext == ".mjs":
		return AssetJS
	case imageExtensions[ext]:
		return AssetImage
	default:
		return ""
	}
}
