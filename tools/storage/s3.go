package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectGetter is the part of *s3.Client the states need.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3State reads a document from a single S3 object.
type S3State struct {
	bucket string
	key    string
	kind   string
	s3     objectGetter
}

func NewS3RecipeState(s3Client objectGetter, bucket, key string) *S3State {
	return &S3State{bucket: bucket, key: key, kind: "recipe", s3: s3Client}
}

func NewS3CategoryState(s3Client objectGetter, bucket, key string) *S3State {
	return &S3State{bucket: bucket, key: key, kind: "category", s3: s3Client}
}

func (s *S3State) Load(ctx context.Context) ([]byte, error) {
	resp, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s object from S3: %w", s.kind, err)
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
