package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// URLListSource reads the newline delimited list of default wallpaper urls
type URLListSource interface {
	Read(ctx context.Context) ([]byte, error)
}

// ResourceStatusError is returned when the list exists behind a server that
// answered with a non success status
type ResourceStatusError struct {
	Status int
}

func (e *ResourceStatusError) Error() string {
	return fmt.Sprintf("url list request failed with status %d", e.Status)
}

type FileSource struct {
	Path string
}

func (s FileSource) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read url list %s: %w", s.Path, err)
	}
	return data, nil
}

type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Read(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch url list %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ResourceStatusError{Status: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}

// s3Downloader is satisfied by manager.Downloader
type s3Downloader interface {
	Download(ctx context.Context, w io.WriterAt, input *s3.GetObjectInput, options ...func(*manager.Downloader)) (int64, error)
}

type S3Source struct {
	Bucket     string
	Key        string
	downloader s3Downloader
}

// NewS3Source loads the shared aws config for profile, the default chain
// when empty, and downloads objects with the s3 download manager
func NewS3Source(ctx context.Context, bucket, key, profile string) (*S3Source, error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	ctxCfg, cancelCfg := context.WithTimeout(ctx, 3*time.Second)
	cfg, err := config.LoadDefaultConfig(ctxCfg, opts...)
	cancelCfg()
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return &S3Source{
		Bucket:     bucket,
		Key:        key,
		downloader: manager.NewDownloader(s3.NewFromConfig(cfg)),
	}, nil
}

func (s *S3Source) Read(ctx context.Context) ([]byte, error) {
	buf := manager.NewWriteAtBuffer([]byte{})
	if _, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	}); err != nil {
		var respErr *awshttp.ResponseError
		if errors.As(err, &respErr) {
			return nil, &ResourceStatusError{Status: respErr.HTTPStatusCode()}
		}
		return nil, fmt.Errorf("unable to download object from s3, s3://%s/%s, %w", s.Bucket, s.Key, err)
	}
	return buf.Bytes(), nil
}

// NewURLListSource picks a source from the location's scheme: s3://bucket/key,
// http(s)://..., or a filesystem path
func NewURLListSource(ctx context.Context, location, awsProfile string) (URLListSource, error) {
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// bare paths and windows drive letters
		return FileSource{Path: location}, nil
	}

	switch strings.ToLower(u.Scheme) {
	case "s3":
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, fmt.Errorf("invalid s3 location %q, need s3://bucket/key", location)
		}
		return NewS3Source(ctx, u.Host, key, awsProfile)
	case "http", "https":
		return HTTPSource{URL: location, Client: &http.Client{Timeout: 30 * time.Second}}, nil
	case "file":
		return FileSource{Path: u.Path}, nil
	default:
		return nil, fmt.Errorf("unsupported url list location %q", location)
	}
}
