package objectstore

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lake-demo/internal/domain"
	"lake-demo/internal/frame"
)

// fakeS3 is an in-memory s3API that counts calls.
type fakeS3 struct {
	buckets map[string]map[string][]byte
	pageLen int

	createCalls int
	putCalls    int
	getCalls    int
	totalCalls  int
}

func newFakeS3() *fakeS3 {
	return &fakeS3{buckets: make(map[string]map[string][]byte), pageLen: 1000}
}

func (f *fakeS3) CreateBucket(_ context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.totalCalls++
	f.createCalls++
	name := aws.ToString(in.Bucket)
	if _, ok := f.buckets[name]; ok {
		return nil, &types.BucketAlreadyOwnedByYou{}
	}
	f.buckets[name] = make(map[string][]byte)
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeS3) HeadBucket(_ context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	f.totalCalls++
	if _, ok := f.buckets[aws.ToString(in.Bucket)]; !ok {
		return nil, &smithyAPIError{code: "NotFound"}
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.totalCalls++
	f.putCalls++
	b, ok := f.buckets[aws.ToString(in.Bucket)]
	if !ok {
		return nil, &types.NoSuchBucket{}
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	b[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.totalCalls++
	f.getCalls++
	b, ok := f.buckets[aws.ToString(in.Bucket)]
	if !ok {
		return nil, &types.NoSuchBucket{}
	}
	data, ok := b[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.totalCalls++
	b, ok := f.buckets[aws.ToString(in.Bucket)]
	if !ok {
		return nil, &smithyAPIError{code: "NotFound"}
	}
	if _, ok := b[aws.ToString(in.Key)]; !ok {
		return nil, &smithyAPIError{code: "NotFound"}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.totalCalls++
	b, ok := f.buckets[aws.ToString(in.Bucket)]
	if !ok {
		return nil, &types.NoSuchBucket{}
	}
	var keys []string
	for k := range b {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	start := 0
	if in.ContinuationToken != nil {
		start = sort.SearchStrings(keys, aws.ToString(in.ContinuationToken))
	}
	end := start + f.pageLen
	if end > len(keys) {
		end = len(keys)
	}
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(keys[end])
	}
	return out, nil
}

func (f *fakeS3) ListBuckets(_ context.Context, _ *s3.ListBucketsInput, _ ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	f.totalCalls++
	return &s3.ListBucketsOutput{}, nil
}

// smithyAPIError is a minimal smithy.APIError for code-based not-found paths.
type smithyAPIError struct{ code string }

func (e *smithyAPIError) Error() string                 { return e.code }
func (e *smithyAPIError) ErrorCode() string             { return e.code }
func (e *smithyAPIError) ErrorMessage() string          { return e.code }
func (e *smithyAPIError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

func newTestClient(api s3API) *Client {
	return NewWithAPI(api, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEnsureBucketIdempotent(t *testing.T) {
	api := newFakeS3()
	c := newTestClient(api)
	ctx := context.Background()

	require.NoError(t, c.EnsureBucket(ctx, "raw-ingestion-zone"))
	require.NoError(t, c.EnsureBucket(ctx, "raw-ingestion-zone"))
	require.NoError(t, c.EnsureBucket(ctx, "raw-ingestion-zone"))
	assert.Equal(t, 1, api.createCalls)
}

func TestUploadDownload(t *testing.T) {
	api := newFakeS3()
	c := newTestClient(api)
	ctx := context.Background()

	require.NoError(t, c.Upload(ctx, "zone", "a/b.csv", []byte("payload"), "text/csv"))
	data, err := c.Download(ctx, "zone", "a/b.csv")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	ok, err := c.Exists(ctx, "zone", "a/b.csv")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = c.Exists(ctx, "zone", "a/missing.csv")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDownloadNotFound(t *testing.T) {
	api := newFakeS3()
	c := newTestClient(api)
	ctx := context.Background()

	var nferr *domain.NotFoundError
	_, err := c.Download(ctx, "no-such-bucket", "k")
	assert.ErrorAs(t, err, &nferr)

	require.NoError(t, c.EnsureBucket(ctx, "zone"))
	_, err = c.Download(ctx, "zone", "no-such-key")
	assert.ErrorAs(t, err, &nferr)
}

func TestListPaginates(t *testing.T) {
	api := newFakeS3()
	api.pageLen = 2
	c := newTestClient(api)
	ctx := context.Background()

	require.NoError(t, c.Upload(ctx, "zone", "p/1", nil, ""))
	require.NoError(t, c.Upload(ctx, "zone", "p/2", nil, ""))
	require.NoError(t, c.Upload(ctx, "zone", "p/3", nil, ""))
	require.NoError(t, c.Upload(ctx, "zone", "q/1", nil, ""))

	keys, err := c.List(ctx, "zone", "p/")
	require.NoError(t, err)
	assert.Equal(t, []string{"p/1", "p/2", "p/3"}, keys)
}

func TestFrameHelpersFailBeforeNetwork(t *testing.T) {
	api := newFakeS3()
	c := newTestClient(api)
	ctx := context.Background()

	f := frame.New("a")
	require.NoError(t, f.Append(int64(1)))

	var verr *domain.ValidationError
	err := UploadFrame(ctx, c, f, "zone", "k", "avro")
	assert.ErrorAs(t, err, &verr)

	_, err = DownloadFrame(ctx, c, "zone", "k", "avro")
	assert.ErrorAs(t, err, &verr)

	assert.Equal(t, 0, api.totalCalls)
}

func TestFrameRoundTripThroughStore(t *testing.T) {
	api := newFakeS3()
	c := newTestClient(api)
	ctx := context.Background()

	f := frame.New("id", "name")
	require.NoError(t, f.Append(int64(1), "x"))
	require.NoError(t, f.Append(int64(2), "y"))

	for _, format := range []string{frame.FormatCSV, frame.FormatParquet} {
		key := "data." + format
		require.NoError(t, UploadFrame(ctx, c, f, "zone", key, format))
		got, err := DownloadFrame(ctx, c, "zone", key, format)
		require.NoError(t, err)
		assert.ElementsMatch(t, f.Columns(), got.Columns())
		assert.Equal(t, f.NumRows(), got.NumRows())
	}
}
