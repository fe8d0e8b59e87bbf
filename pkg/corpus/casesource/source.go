// Package casesource enumerates case folders laid out as
// <root>/<source>/<folder>/details.yaml, on disk or in an object bucket.
package casesource

import (
	"context"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"
)

// File names inside a case folder.
const (
	DetailsFile  = "details.yaml"
	PonenciaFile = "ponencia.html"
	FalloFile    = "fallo.html"
	AnnexFile    = "annex.html"
	OpinionsDir  = "opinions"
)

// Source lists case folders in traversal order.
type Source interface {
	Folders(ctx context.Context) ([]Folder, error)
}

type backend interface {
	read(ctx context.Context, key string) ([]byte, error)
	list(ctx context.Context, dir string) ([]string, error)
}

// Folder is one case. Name is the folder name as listed and Source the
// provenance directory it sits in.
type Folder struct {
	Source   string
	Name     string
	Location string
	Created  time.Time
	Modified time.Time

	b backend
}

// ReadFile returns the content of a file in the folder. A missing file
// yields an error matching fs.ErrNotExist.
func (f Folder) ReadFile(ctx context.Context, name string) ([]byte, error) {
	return f.b.read(ctx, path.Join(f.Location, name))
}

// OpinionStems lists the separate opinions of the folder, named
// "<justice_id>.md" under opinions/, in numeric order.
func (f Folder) OpinionStems(ctx context.Context) ([]string, error) {
	names, err := f.b.list(ctx, path.Join(f.Location, OpinionsDir))
	if err != nil {
		return nil, err
	}
	var stems []string
	for _, name := range names {
		stem, ok := strings.CutSuffix(name, ".md")
		if !ok {
			continue
		}
		if _, err := strconv.Atoi(stem); err != nil {
			continue
		}
		stems = append(stems, stem)
	}
	sort.Slice(stems, func(i, j int) bool {
		a, _ := strconv.Atoi(stems[i])
		b, _ := strconv.Atoi(stems[j])
		return a < b
	})
	return stems, nil
}

// OpinionPath is the folder-relative name of a separate opinion
func OpinionPath(stem string) string {
	return path.Join(OpinionsDir, stem+".md")
}
