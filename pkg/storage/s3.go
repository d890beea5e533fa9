package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/raywall/mockerize/pkg/mock"
	"github.com/raywall/mockerize/pkg/secrets"
)

// S3API é o subconjunto do cliente S3 usado pelo store (Permite Mocking).
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

func (s *UniversalStore) s3Client(ctx context.Context) (S3API, error) {
	if s.s3 != nil {
		return s.s3, nil
	}
	cfg, err := secrets.GetAWSConfig(ctx, s.region)
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar config AWS: %w", err)
	}
	s.s3 = s3.NewFromConfig(cfg)
	return s.s3, nil
}

func parseS3URI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("URL S3 inválida: %w", err)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("URL S3 inválida: esperado s3://bucket/chave, recebido %s", uri)
	}
	return bucket, key, nil
}

func (s *UniversalStore) loadFromS3(ctx context.Context, uri string) ([]byte, error) {
	bucket, key, err := parseS3URI(uri)
	if err != nil {
		return nil, err
	}

	client, err := s.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func (s *UniversalStore) saveToS3(ctx context.Context, uri string, data []byte, overwrite bool) error {
	bucket, key, err := parseS3URI(uri)
	if err != nil {
		return err
	}

	client, err := s.s3Client(ctx)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentTypeFor(uri)),
	}
	if !overwrite {
		// Escrita condicional: falha com 412 se o objeto já existir
		input.IfNoneMatch = aws.String("*")
	}

	_, err = client.PutObject(ctx, input)
	return err
}

func contentTypeFor(uri string) string {
	if mock.FormatFromPath(uri) == mock.FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}
