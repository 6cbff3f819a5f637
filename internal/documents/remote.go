package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const maxRemoteSize = 20 << 20

// S3Config describes an S3 compatible endpoint such as Cloudflare R2 or MinIO.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3Client builds an S3 client. Static credentials are used when both keys
// are set, otherwise the default AWS credential chain applies.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (l *Loader) loadS3(ctx context.Context, ref string) (*Document, error) {
	if l.S3 == nil {
		return nil, errors.New("s3 source is not configured")
	}
	bucket, key, err := splitS3(ref)
	if err != nil {
		return nil, err
	}

	type object struct {
		data        []byte
		contentType string
	}
	obj, err := retry(ctx, l, func() (object, error) {
		out, err := l.S3.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return object{}, fmt.Errorf("failed to get object: %w", err)
		}
		defer out.Body.Close()

		data, err := readLimited(out.Body)
		if err != nil {
			return object{}, fmt.Errorf("failed to read object body: %w", err)
		}
		return object{data: data, contentType: aws.ToString(out.ContentType)}, nil
	})
	if err != nil {
		return nil, err
	}

	text, err := Extract(key, obj.contentType, obj.data)
	if err != nil {
		return nil, err
	}
	return &Document{Label: path.Base(key), Text: text}, nil
}

type httpStatusError struct {
	status string
}

func (e *httpStatusError) Error() string {
	return "bad status: " + e.status
}

func (l *Loader) loadHTTP(ctx context.Context, ref string) (*Document, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, err
	}

	type page struct {
		data        []byte
		contentType string
	}
	p, err := retry(ctx, l, func() (page, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
		if err != nil {
			return page{}, err
		}
		resp, err := l.HTTPClient.Do(req)
		if err != nil {
			return page{}, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return page{}, &httpStatusError{status: resp.Status}
		}
		data, err := readLimited(resp.Body)
		if err != nil {
			return page{}, err
		}
		return page{data: data, contentType: resp.Header.Get("Content-Type")}, nil
	})
	if err != nil {
		return nil, err
	}

	label := path.Base(u.Path)
	if label == "." || label == "/" {
		label = u.Host
	}

	text, err := Extract(u.Path, p.contentType, p.data)
	if err != nil {
		return nil, err
	}
	return &Document{Label: label, Text: text}, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxRemoteSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxRemoteSize {
		return nil, fmt.Errorf("document exceeds %d bytes", maxRemoteSize)
	}
	return data, nil
}
