// Command fetchurls writes the image urls of a Pexels collection to the
// newline delimited list the frame falls back to when no api key is set.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/aouyang1/pexelwallpaper/config"
	"github.com/aouyang1/pexelwallpaper/pexels"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	defaultCollectionID = "vmnecek"
	maxTries            = 3
	retryDelay          = 2 * time.Second
)

type options struct {
	collection string
	output     string
	size       string
	baseURL    string
	s3Dest     string
	awsProfile string
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}

	var opts options
	flag.StringVar(&opts.collection, "collection", defaultCollectionID, "collection id or pexels collection url")
	flag.StringVar(&opts.output, "out", "pexels_photo_urls.txt", "file to write the url list to")
	flag.StringVar(&opts.size, "size", pexels.DefaultPhotoSize, "photo size: original, large2x, large, medium, small, portrait, landscape, tiny")
	flag.StringVar(&opts.baseURL, "base-url", pexels.DefaultBaseURL, "pexels api base url")
	flag.StringVar(&opts.s3Dest, "s3", "", "also upload the list to s3://bucket/key")
	flag.StringVar(&opts.awsProfile, "aws-profile", os.Getenv("WALLPAPER_AWS_PROFILE"), "shared aws config profile for -s3")
	flag.Parse()

	apiKey := os.Getenv("PEXELS_API_KEY")
	if apiKey == "" {
		log.Fatal("PEXELS_API_KEY environment variable is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, apiKey, opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, apiKey string, opts options, stdout io.Writer) error {
	collectionID, err := resolveCollectionID(opts.collection)
	if err != nil {
		return err
	}

	slog.Info("fetching collection", "collection_id", collectionID, "api_key", "..."+lastN(apiKey, 4))
	client := pexels.NewClient(opts.baseURL,
		pexels.WithPhotoSize(opts.size),
		pexels.WithRetries(maxTries, retryDelay),
	)
	photos, err := client.FetchCollection(ctx, apiKey, collectionID)
	if err != nil {
		return fmt.Errorf("failed to fetch collection %s: %w", collectionID, err)
	}
	if len(photos) == 0 {
		fmt.Fprintln(stdout, "No photo URLs were fetched.")
		return nil
	}

	var buf bytes.Buffer
	for _, photo := range photos {
		buf.WriteString(photo.ImageURL)
		buf.WriteByte('\n')
	}

	if dir := filepath.Dir(opts.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.output, err)
	}
	fmt.Fprintf(stdout, "Successfully fetched %d photo URLs.\nSaved to: %s\n", len(photos), opts.output)

	if opts.s3Dest == "" {
		return nil
	}
	bucket, key, err := parseS3Dest(opts.s3Dest)
	if err != nil {
		return err
	}
	uploader, err := newUploader(ctx, opts.awsProfile)
	if err != nil {
		return err
	}
	if err := upload(ctx, uploader, bucket, key, buf.Bytes()); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Uploaded to: s3://%s/%s\n", bucket, key)
	return nil
}

// resolveCollectionID accepts either a bare id or a collection page url
func resolveCollectionID(value string) (string, error) {
	value = strings.TrimSpace(value)
	if id, ok := pexels.ExtractCollectionID(value); ok {
		return id, nil
	}
	if value == "" || strings.ContainsAny(value, "/:?") {
		return "", fmt.Errorf("invalid collection %q", value)
	}
	return value, nil
}

func parseS3Dest(dest string) (string, string, error) {
	u, err := url.Parse(dest)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 destination %q: %w", dest, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || u.Host == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 destination %q, need s3://bucket/key", dest)
	}
	return u.Host, key, nil
}

// s3Uploader is satisfied by manager.Uploader
type s3Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

func newUploader(ctx context.Context, profile string) (*manager.Uploader, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}
	ctxCfg, cancelCfg := context.WithTimeout(ctx, 3*time.Second)
	cfg, err := awsconfig.LoadDefaultConfig(ctxCfg, opts...)
	cancelCfg()
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return manager.NewUploader(s3.NewFromConfig(cfg)), nil
}

func upload(ctx context.Context, uploader s3Uploader, bucket, key string, data []byte) error {
	if _, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/plain; charset=utf-8"),
	}); err != nil {
		return fmt.Errorf("unable to upload url list to s3, s3://%s/%s, %w", bucket, key, err)
	}
	return nil
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
