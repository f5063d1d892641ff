// Package resultstore persists analysis results as JSON documents in a
// blob storage bucket. Bucket URLs may point at local storage (file://)
// or cloud storage (gs://, s3://).
package resultstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

type ResultStore struct {
	bucket   string
	basePath string
}

type (
	Option interface{ set(*ResultStore) }
	option func(*ResultStore) // option implements Option.
)

func (o option) set(rs *ResultStore) { o(rs) }

// BasePath sets the path prefix used while saving results to storage.
func BasePath(base string) Option {
	return option(func(rs *ResultStore) { rs.basePath = base })
}

func New(bucket string, options ...Option) *ResultStore {
	rs := &ResultStore{
		bucket: bucket,
	}
	for _, o := range options {
		o.set(rs)
	}
	return rs
}

func (rs *ResultStore) String() string {
	return rs.bucket + "/" + rs.basePath
}

func (rs *ResultStore) openBucket(ctx context.Context) (*blob.Bucket, error) {
	return blob.OpenBucket(ctx, rs.bucket)
}

// Save writes result as an indented JSON document named <name>.json under
// the configured bucket and base path.
func (rs *ResultStore) Save(ctx context.Context, name string, result any) error {
	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	bkt, err := rs.openBucket(ctx)
	if err != nil {
		return err
	}
	defer bkt.Close()

	uploadPath := path.Join(rs.basePath, name+".json")
	slog.InfoContext(ctx, "Uploading result",
		"bucket", rs.bucket,
		"path", uploadPath)

	w, err := bkt.NewWriter(ctx, uploadPath, nil)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
