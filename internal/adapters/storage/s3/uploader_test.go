package s3

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/user_account_service/internal/platform/config"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func writeTemp(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("image-bytes"), 0o600))
	return p
}

func testS3Config() config.S3Config {
	return config.S3Config{
		Region:        "us-east-1",
		Bucket:        "avatars",
		KeyPrefix:     "/users/",
		PublicBaseURL: "https://cdn.example.com/",
	}
}

func TestUpload_PutsObjectAndRemovesFile(t *testing.T) {
	putter := &fakePutter{}
	u := newUploader(putter, testS3Config())
	u.now = func() time.Time { return time.Date(2024, time.March, 7, 10, 0, 0, 0, time.UTC) }

	local := writeTemp(t, "me.PNG")
	url, err := u.Upload(context.Background(), local)
	require.NoError(t, err)

	require.NotNil(t, putter.input)
	assert.Equal(t, "avatars", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "image/png", aws.ToString(putter.input.ContentType))
	assert.Equal(t, []byte("image-bytes"), putter.body)

	key := aws.ToString(putter.input.Key)
	assert.Regexp(t, regexp.MustCompile(`^users/2024/03/07/[0-9a-f-]{36}\.png$`), key)
	assert.Equal(t, "https://cdn.example.com/"+key, url)

	_, statErr := os.Stat(local)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUpload_EmptyPath(t *testing.T) {
	putter := &fakePutter{}
	url, err := newUploader(putter, testS3Config()).Upload(context.Background(), "")
	assert.NoError(t, err)
	assert.Empty(t, url)
	assert.Nil(t, putter.input)
}

func TestUpload_FailureStillRemovesFile(t *testing.T) {
	putter := &fakePutter{err: errors.New("bucket unavailable")}
	local := writeTemp(t, "cover.jpg")

	url, err := newUploader(putter, testS3Config()).Upload(context.Background(), local)
	assert.Error(t, err)
	assert.Empty(t, url)

	_, statErr := os.Stat(local)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUpload_MissingFile(t *testing.T) {
	putter := &fakePutter{}
	_, err := newUploader(putter, testS3Config()).Upload(context.Background(), filepath.Join(t.TempDir(), "gone.png"))
	assert.Error(t, err)
	assert.Nil(t, putter.input)
}

func TestNewUploader_PublicURLFallbacks(t *testing.T) {
	cfg := testS3Config()
	cfg.PublicBaseURL = ""
	cfg.BaseEndpoint = "http://minio:9000/"
	assert.Equal(t, "http://minio:9000/avatars", newUploader(&fakePutter{}, cfg).publicBaseURL)

	cfg.BaseEndpoint = ""
	assert.Equal(t, "https://avatars.s3.us-east-1.amazonaws.com", newUploader(&fakePutter{}, cfg).publicBaseURL)
}

func TestNewUploader_RequiresBucket(t *testing.T) {
	_, err := NewUploader(context.Background(), config.S3Config{Region: "us-east-1"})
	assert.Error(t, err)
}
