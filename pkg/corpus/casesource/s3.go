package casesource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the part of the S3 client used to read case folders.
type S3API interface {
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config locates a bucket. Endpoint is set for S3-compatible stores
// such as R2 or MinIO.
type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// NewS3Client builds a client from explicit keys, or from the default
// credential chain when none are given.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// S3 reads case folders from keys <prefix>/<source>/<folder>/...
type S3 struct {
	client S3API
	bucket string
	prefix string

	keys map[string][]string // folder location → file names under opinions/
}

// NewS3 returns a Source over bucket, restricted to keys under prefix
func NewS3(client S3API, bucket, prefix string) *S3 {
	return &S3{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		keys:   make(map[string][]string),
	}
}

// Folders lists the bucket once and returns every key prefix holding a
// details.yaml, in key order.
func (s *S3) Folders(ctx context.Context) ([]Folder, error) {
	objects, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}

	s.keys = make(map[string][]string)
	var folders []Folder
	for _, obj := range objects {
		key := aws.ToString(obj.Key)
		dir, name := path.Split(key)
		dir = strings.TrimSuffix(dir, "/")

		if path.Base(dir) == OpinionsDir {
			loc := path.Dir(dir)
			s.keys[loc] = append(s.keys[loc], name)
			continue
		}
		if name != DetailsFile {
			continue
		}
		modified := aws.ToTime(obj.LastModified)
		folders = append(folders, Folder{
			Source:   path.Base(path.Dir(dir)),
			Name:     path.Base(dir),
			Location: dir,
			Created:  modified,
			Modified: modified,
			b:        s,
		})
	}
	sort.SliceStable(folders, func(i, j int) bool { return folders[i].Location < folders[j].Location })
	return folders, nil
}

func (s *S3) listAll(ctx context.Context) ([]types.Object, error) {
	in := &s3.ListObjectsV2Input{Bucket: aws.String(s.bucket)}
	if s.prefix != "" {
		in.Prefix = aws.String(s.prefix + "/")
	}
	var objects []types.Object
	for {
		out, err := s.client.ListObjectsV2(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("list s3://%s/%s: %w", s.bucket, s.prefix, err)
		}
		objects = append(objects, out.Contents...)
		if !aws.ToBool(out.IsTruncated) || out.NextContinuationToken == nil {
			return objects, nil
		}
		in.ContinuationToken = out.NextContinuationToken
	}
}

func (s *S3) read(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("s3://%s/%s: %w", s.bucket, key, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.bucket, key, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *S3) list(_ context.Context, dir string) ([]string, error) {
	return s.keys[path.Dir(dir)], nil
}
