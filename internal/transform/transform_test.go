package transform

import (
	"bytes"
	"testing"

	"github.com/greenweb/optimizer/pkg/api/optimizerun"
)

func TestFileCSSPipeline(t *testing.T) {
	opts := optimizerun.CleanupOptions{RemoveWhitespace: true, MinifyCode: true}
	result := File("css/style.css", []byte(".a { color:  red; }\n.b{margin:0;}"), opts)

	want := ".a{color:red;}.b{margin:0;}"
	if got := string(result.Content); got != want {
		t.Errorf("File() content = %q, want %q", got, want)
	}
	if !result.WhitespaceCleaned {
		t.Error("WhitespaceCleaned = false, want true")
	}
	if !result.Minified {
		t.Error("Minified = false, want true")
	}
}

func TestFileCommentCounting(t *testing.T) {
	opts := optimizerun.CleanupOptions{RemoveComments: true}
	result := File("app.js", []byte("var a = 1; // note\n"), opts)
	if !result.CommentsRemoved {
		t.Error("CommentsRemoved = false, want true")
	}

	result = File("app.js", []byte("var a = 1;\n"), opts)
	if result.CommentsRemoved {
		t.Error("CommentsRemoved = true for comment-free input")
	}
}

func TestFileUnknownTypePassesThrough(t *testing.T) {
	content := []byte{0x00, 0x01, 0x02}
	result := File("data.bin", content, optimizerun.DefaultCleanupOptions())
	if !bytes.Equal(result.Content, content) {
		t.Error("binary content modified")
	}
}

func TestFileDisabledOptionsPassThrough(t *testing.T) {
	content := []byte("/* comment */  .a  {  color:red;  }\n")
	result := File("style.css", content, optimizerun.CleanupOptions{})
	if !bytes.Equal(result.Content, content) {
		t.Errorf("content modified with all options disabled: %q", result.Content)
	}
}

func TestFileCorruptImageKeptVerbatim(t *testing.T) {
	content := []byte("not a real png")
	result := File("img/logo.png", content, optimizerun.DefaultCleanupOptions())
	if !bytes.Equal(result.Content, content) {
		t.Error("corrupt image content modified")
	}
	if result.ImageOptimized {
		t.Error("ImageOptimized = true for corrupt image")
	}
}

func TestFileTextIdempotent(t *testing.T) {
	opts := optimizerun.DefaultCleanupOptions()
	inputs := map[string]string{
		"style.css":  "/* c */ .a { color:  red; }\n\n\n.b{margin:0;}",
		"app.js":     "// top\nfunction f( x ) {\n  return x;   \n}\n",
		"index.html": "<div>\n  <!-- note -->\n  <p>hi</p>\n</div>",
		"script.py":  "x = 1  # note\n\n\n\ny = 2\n",
	}
	for path, in := range inputs {
		once := File(path, []byte(in), opts)
		twice := File(path, once.Content, opts)
		if !bytes.Equal(once.Content, twice.Content) {
			t.Errorf("%s: transform not idempotent:\nonce:  %q\ntwice: %q",
				path, once.Content, twice.Content)
		}
	}
}
