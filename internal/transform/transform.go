// Package transform applies best-effort, per-file-type content transforms:
// comment stripping, whitespace normalization, minification and image
// re-encoding. Transforms never corrupt a file they cannot safely handle;
// every step falls back to its input on failure.
package transform

import (
	"path"
	"strings"

	"github.com/greenweb/optimizer/pkg/api/optimizerun"
)

var (
	textExtensions = map[string]bool{
		"css": true, "js": true, "jsx": true, "ts": true, "tsx": true,
		"mjs": true, "html": true, "htm": true, "py": true,
	}
	// Formats worth re-encoding. WebP and SVG are left alone (already
	// modern / not raster); GIF is skipped since animations do not
	// survive a single-frame re-encode.
	imageExtensions = map[string]bool{
		"jpg": true, "jpeg": true, "png": true, "bmp": true, "tiff": true,
	}
)

// Result reports what a file transform did. Content is always valid: on
// any internal failure it is the input, byte for byte.
type Result struct {
	Content           []byte
	CommentsRemoved   bool
	WhitespaceCleaned bool
	Minified          bool
	ImageOptimized    bool
}

// File dispatches content to the appropriate transform chain by file
// extension, honoring the given options. Unknown file types pass through
// untouched.
func File(filePath string, content []byte, opts optimizerun.CleanupOptions) Result {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filePath)), ".")
	switch {
	case imageExtensions[ext] && opts.OptimizeImages:
		return imageFile(content)
	case textExtensions[ext]:
		return textFile(content, ext, opts)
	default:
		return Result{Content: content}
	}
}

func imageFile(content []byte) Result {
	optimized, err := OptimizeImage(content)
	if err != nil {
		return Result{Content: content}
	}
	return Result{Content: optimized, ImageOptimized: true}
}

// textFile applies the enabled steps in a fixed order: comments first
// (blank lines left behind by removed comments are a whitespace concern),
// then whitespace, then minification.
func textFile(content []byte, ext string, opts optimizerun.CleanupOptions) Result {
	text := string(content)
	result := Result{}

	if opts.RemoveComments {
		stripped := StripComments(text, ext)
		if len(stripped) < len(text) {
			result.CommentsRemoved = true
		}
		text = stripped
	}

	if opts.RemoveWhitespace {
		cleaned := CleanWhitespace(text, true)
		if len(cleaned) < len(text) {
			result.WhitespaceCleaned = true
		}
		text = cleaned
	}

	if opts.MinifyCode {
		switch ext {
		case "css":
			text = MinifyCSS(text)
			result.Minified = true
		case "js", "jsx", "ts", "tsx", "mjs":
			text = MinifyJS(text)
			result.Minified = true
		case "html", "htm":
			text = MinifyHTML(text)
			result.Minified = true
		}
	}

	result.Content = []byte(text)
	return result
}
