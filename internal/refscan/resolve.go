package refscan

import (
	"path"
	"strings"

	"github.com/greenweb/optimizer/internal/utils"
)

// nonLocalPrefixes mark references that cannot denote a project-local file
// and therefore never participate in unused classification.
var nonLocalPrefixes = []string{"http://", "https://", "//", "data:"}

// ResolveCandidates turns a raw reference string into the set of plausible
// project-relative paths it could denote.
//
// The candidate set is deliberately over-generated: both the source-file
// directory join and the raw reference are kept (the path a file was read
// from does not always match the reference's actual mount root, e.g. when
// build tooling rewrites asset base paths), and the bare filename is always
// added as a weak ends-with fallback. The unused-asset resolver only needs
// one candidate to hit for a file to count as referenced, so favoring false
// "used" classifications over false "unused" ones is the designed safety
// bias.
func ResolveCandidates(rawRef, sourcePath string) []string {
	ref, _, _ := strings.Cut(rawRef, "?")
	ref, _, _ = strings.Cut(ref, "#")
	if ref == "" {
		return nil
	}

	for _, prefix := range nonLocalPrefixes {
		if strings.HasPrefix(ref, prefix) {
			return nil
		}
	}

	var candidates []string
	if strings.HasPrefix(ref, "/") {
		candidates = append(candidates, strings.TrimPrefix(ref, "/"))
	} else {
		if dir := path.Dir(sourcePath); dir != "." {
			candidates = append(candidates, path.Join(dir, ref))
		}
		candidates = append(candidates, ref)
	}
	candidates = append(candidates, path.Base(ref))

	return utils.RemoveDuplicates(candidates)
}
