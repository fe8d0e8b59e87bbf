package casesource

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLocalFolders(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sc", "62206", DetailsFile), "case_title: A")
	writeFile(t, filepath.Join(root, "sc", "62206", PonenciaFile), "<p>body</p>")
	writeFile(t, filepath.Join(root, "sc", "62206", OpinionsDir, "175.md"), "x")
	writeFile(t, filepath.Join(root, "sc", "62206", OpinionsDir, "23.md"), "x")
	writeFile(t, filepath.Join(root, "sc", "62206", OpinionsDir, "ponencia.md"), "x")
	writeFile(t, filepath.Join(root, "legacy", "c343d", DetailsFile), "case_title: B")
	writeFile(t, filepath.Join(root, "legacy", "notes.txt"), "ignored")

	folders, err := NewLocal(root).Folders(context.Background())
	require.NoError(t, err)
	require.Len(t, folders, 2)

	assert.Equal(t, "legacy", folders[0].Source)
	assert.Equal(t, "c343d", folders[0].Name)
	assert.Equal(t, "sc", folders[1].Source)
	assert.Equal(t, "62206", folders[1].Name)
	assert.False(t, folders[1].Modified.IsZero())

	ctx := context.Background()
	body, err := folders[1].ReadFile(ctx, PonenciaFile)
	require.NoError(t, err)
	assert.Equal(t, "<p>body</p>", string(body))

	_, err = folders[1].ReadFile(ctx, FalloFile)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	stems, err := folders[1].OpinionStems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"23", "175"}, stems)

	stems, err = folders[0].OpinionStems(ctx)
	require.NoError(t, err)
	assert.Empty(t, stems)
}

func TestLocalFoldersMissingRoot(t *testing.T) {
	_, err := NewLocal(filepath.Join(t.TempDir(), "absent")).Folders(context.Background())
	assert.Error(t, err)
}

func TestLocalFoldersCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sc", "1", DetailsFile), "x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLocal(root).Folders(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

type fakeS3 struct {
	objects  map[string]string
	pageSize int
	lists    int
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.lists++
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := 0
	if in.ContinuationToken != nil {
		for i, k := range keys {
			if k == *in.ContinuationToken {
				start = i
			}
		}
	}
	end := min(start+f.pageSize, len(keys))
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(keys[end])
	}
	modified := time.Date(2022, 10, 24, 0, 0, 0, 0, time.UTC)
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k), LastModified: &modified})
	}
	return out, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader([]byte(body)))}, nil
}

func TestS3Folders(t *testing.T) {
	fake := &fakeS3{
		pageSize: 2,
		objects: map[string]string{
			"decisions/sc/62206/details.yaml":     "case_title: A",
			"decisions/sc/62206/ponencia.html":    "<p>body</p>",
			"decisions/sc/62206/opinions/175.md":  "sep",
			"decisions/sc/62206/opinions/9.md":    "sep",
			"decisions/legacy/c343d/details.yaml": "case_title: B",
			"decisions/legacy/c343d/annex.html":   "<p>n</p>",
			"other/sc/1/details.yaml":             "outside prefix",
		},
	}
	src := NewS3(fake, "corpus", "/decisions/")
	ctx := context.Background()

	folders, err := src.Folders(ctx)
	require.NoError(t, err)
	require.Len(t, folders, 2)
	assert.Greater(t, fake.lists, 1, "listing should paginate")

	assert.Equal(t, "legacy", folders[0].Source)
	assert.Equal(t, "c343d", folders[0].Name)
	assert.Equal(t, "sc", folders[1].Source)
	assert.Equal(t, "62206", folders[1].Name)
	assert.Equal(t, 2022, folders[1].Modified.Year())

	body, err := folders[1].ReadFile(ctx, PonenciaFile)
	require.NoError(t, err)
	assert.Equal(t, "<p>body</p>", string(body))

	_, err = folders[1].ReadFile(ctx, FalloFile)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	stems, err := folders[1].OpinionStems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"9", "175"}, stems)

	raw, err := folders[1].ReadFile(ctx, OpinionPath("175"))
	require.NoError(t, err)
	assert.Equal(t, "sep", string(raw))
}
