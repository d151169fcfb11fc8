package refscan

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type resolveTestCase struct {
	name       string
	ref        string
	sourcePath string
	want       []string
}

func TestResolveCandidates(t *testing.T) {
	tests := []resolveTestCase{
		{
			name:       "relative reference joins source directory",
			ref:        "img/logo.png",
			sourcePath: "pages/index.html",
			want:       []string{"pages/img/logo.png", "img/logo.png", "logo.png"},
		},
		{
			name:       "source at project root keeps raw form only",
			ref:        "style.css",
			sourcePath: "index.html",
			want:       []string{"style.css"},
		},
		{
			name:       "root-relative strips leading slash",
			ref:        "/assets/app.js",
			sourcePath: "pages/about.html",
			want:       []string{"assets/app.js", "app.js"},
		},
		{
			name:       "query string stripped",
			ref:        "style.css?v=3",
			sourcePath: "index.html",
			want:       []string{"style.css"},
		},
		{
			name:       "fragment stripped",
			ref:        "sprite.svg#icon-home",
			sourcePath: "index.html",
			want:       []string{"sprite.svg"},
		},
		{
			name:       "parent-relative reference",
			ref:        "../shared/base.css",
			sourcePath: "pages/sub/index.html",
			want:       []string{"pages/shared/base.css", "../shared/base.css", "base.css"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveCandidates(tt.ref, tt.sourcePath)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ResolveCandidates() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveCandidatesNonLocal(t *testing.T) {
	// Remote and data URIs can never be unused-deleted, so they resolve to
	// no candidates at all.
	refs := []string{
		"http://cdn.example.com/lib.js",
		"https://cdn.example.com/lib.css",
		"//cdn.example.com/lib.js",
		"data:image/png;base64,iVBORw0KGgo=",
	}
	for _, ref := range refs {
		if got := ResolveCandidates(ref, "index.html"); len(got) != 0 {
			t.Errorf("ResolveCandidates(%q) = %v, want empty", ref, got)
		}
	}
}

func TestResolveCandidatesEmptyAfterStripping(t *testing.T) {
	if got := ResolveCandidates("?v=1", "index.html"); len(got) != 0 {
		t.Errorf("ResolveCandidates(%q) = %v, want empty", "?v=1", got)
	}
}
