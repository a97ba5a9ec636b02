// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package source opens raw source tables from the local filesystem or S3.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	awsx "github.com/staranto/cpictl/internal/aws"
)

const s3Scheme = "s3://"

// ErrBadURI is returned for an s3:// URI without a bucket or key.
var ErrBadURI = errors.New("invalid s3 uri")

// GetObjectAPI is the slice of the S3 client used to fetch objects.
type GetObjectAPI interface {
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// Opener opens local paths directly and s3:// URIs through an S3 client that
// is built on first use.
type Opener struct {
	// NewClient builds the S3 client. It is only called for remote paths.
	NewClient func(ctx context.Context) (GetObjectAPI, error)

	once   sync.Once
	client GetObjectAPI
	err    error
}

// Default opens local files and uses the shell's AWS setup for S3.
var Default = NewOpener()

// NewOpener returns an Opener whose S3 client is configured by opts.
func NewOpener(opts ...awsx.Option) *Opener {
	return &Opener{
		NewClient: func(ctx context.Context) (GetObjectAPI, error) {
			client, err := awsx.NewS3(ctx, opts...)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
	}
}

// IsRemote reports whether path is an s3:// URI.
func IsRemote(path string) bool {
	return strings.HasPrefix(strings.ToLower(path), s3Scheme)
}

// ParseS3URI splits s3://bucket/key into its bucket and key.
func ParseS3URI(uri string) (bucket string, key string, err error) {
	if !IsRemote(uri) {
		return "", "", fmt.Errorf("%w: %q", ErrBadURI, uri)
	}
	rest := uri[len(s3Scheme):]
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q", ErrBadURI, uri)
	}
	return bucket, key, nil
}

// Open returns a reader over path. The caller closes it.
func (o *Opener) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if !IsRemote(path) {
		return os.Open(path)
	}

	bucket, key, err := ParseS3URI(path)
	if err != nil {
		return nil, err
	}

	client, err := o.s3(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	log.Debugf("fetching s3 object bucket=%s key=%s", bucket, key)
	out, err := client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get S3 object: %w", err)
	}

	return out.Body, nil
}

func (o *Opener) s3(ctx context.Context) (GetObjectAPI, error) {
	o.once.Do(func() {
		o.client, o.err = o.NewClient(ctx)
	})
	return o.client, o.err
}
