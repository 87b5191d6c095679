package filestorage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanKey(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "gallery/a.jpg", want: "gallery/a.jpg"},
		{in: "gallery//b.jpg", want: "gallery/b.jpg"},
		{in: `profile_pictures\c.png`, want: "profile_pictures/c.png"},
		{in: "", wantErr: true},
		{in: "/etc/passwd", wantErr: true},
		{in: "../secret", wantErr: true},
		{in: "gallery/../../x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := CleanKey(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	exists, err := store.Exists(ctx, "gallery/a.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Put(ctx, "gallery/a.jpg", strings.NewReader("jpeg-bytes"), 10, "image/jpeg"))

	exists, err = store.Exists(ctx, "gallery/a.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	content, err := os.ReadFile(filepath.Join(dir, "gallery", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(content))

	// the local backend never overwrites
	assert.Error(t, store.Put(ctx, "gallery/a.jpg", strings.NewReader("other"), 5, ""))

	assert.Equal(t, "/uploads/gallery/a.jpg", store.URL("gallery/a.jpg"))

	require.NoError(t, store.Delete(ctx, "gallery/a.jpg"))
	require.NoError(t, store.Delete(ctx, "gallery/a.jpg"))
	exists, err = store.Exists(ctx, "gallery/a.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "https://cdn.example.com/media/")
	require.NoError(t, err)

	err = store.Put(context.Background(), "../outside.txt", strings.NewReader("x"), 1, "")
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.Equal(t, "https://cdn.example.com/media/gallery/x.png", store.URL("gallery/x.png"))
}

type fakeS3 struct {
	objects map[string]string
	headErr error
	puts    []*s3.PutObjectInput
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	if _, ok := f.objects[aws.ToString(in.Key)]; ok {
		return &s3.HeadObjectOutput{}, nil
	}
	return nil, &types.NotFound{}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = string(body)
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage(t *testing.T) {
	ctx := context.Background()
	client := &fakeS3{objects: map[string]string{"gallery/taken.jpg": "x"}}
	store := NewS3Storage(client, S3Config{Bucket: "memorial", Region: "ap-south-1"})

	exists, err := store.Exists(ctx, "gallery/taken.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Exists(ctx, "gallery/free.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Put(ctx, "gallery/free.jpg", strings.NewReader("abc"), 3, "image/jpeg"))
	require.Len(t, client.puts, 1)
	assert.Equal(t, "memorial", aws.ToString(client.puts[0].Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(client.puts[0].ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(client.puts[0].ContentLength))
	assert.Equal(t, "abc", client.objects["gallery/free.jpg"])

	assert.Equal(t, "https://memorial.s3.ap-south-1.amazonaws.com/gallery/free.jpg", store.URL("gallery/free.jpg"))

	require.NoError(t, store.Delete(ctx, "gallery/free.jpg"))
	assert.NotContains(t, client.objects, "gallery/free.jpg")
}

func TestS3Storage_HeadFailure(t *testing.T) {
	client := &fakeS3{objects: map[string]string{}, headErr: errors.New("access denied")}
	store := NewS3Storage(client, S3Config{Bucket: "memorial", Endpoint: "http://localhost:4566"})

	_, err := store.Exists(context.Background(), "gallery/a.jpg")
	assert.Error(t, err)
	assert.Equal(t, "http://localhost:4566/memorial/gallery/a.jpg", store.URL("gallery/a.jpg"))
}
