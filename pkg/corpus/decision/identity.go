package decision

import (
	"github.com/gosimple/slug"

	"github.com/cognicore/corpus/pkg/corpus/citation"
)

// ResolveID derives the URL-safe identifier of a decision. The folder name
// is unique within the source tree and is the fallback at every step.
func ResolveID(folder string, src Source, c citation.Citation) string {
	s := c.Slug()
	if s == "" {
		return folder
	}
	if src == SourceLegacy {
		return s
	}
	if c.Docket != "" {
		if report := c.Report(); report != "" {
			return slug.Make(c.Docket + "-" + report)
		}
		return slug.Make(c.Docket)
	}
	return folder
}
