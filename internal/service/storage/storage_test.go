package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kingrain94/support-desk-api/internal/config"
)

func TestLocalStore_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)
	ctx := context.Background()

	ref, err := store.Save(ctx, "abc.png", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/tickets/abc.png", ref)

	content, err := os.ReadFile(filepath.Join(dir, "tickets", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(content))

	require.NoError(t, store.Delete(ctx, ref))
	_, err = os.Stat(filepath.Join(dir, "tickets", "abc.png"))
	assert.True(t, os.IsNotExist(err))

	// deleting again is not an error
	assert.NoError(t, store.Delete(ctx, ref))
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	_, err := store.Save(ctx, "../evil.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidName)

	err = store.Delete(ctx, "/uploads/tickets/../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidName)

	err = store.Delete(ctx, "/elsewhere/abc.png")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestLocalStore_DoesNotOverwrite(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	_, err := store.Save(ctx, "same.pdf", strings.NewReader("first"))
	require.NoError(t, err)
	_, err = store.Save(ctx, "same.pdf", strings.NewReader("second"))
	assert.Error(t, err)
}

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *mockS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func TestS3Store_Save(t *testing.T) {
	ctx := context.Background()
	client := new(mockS3)
	client.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "attachments" && *in.Key == "tickets/abc.pdf" && *in.ContentType == "application/pdf"
	})).Return(&s3.PutObjectOutput{}, nil)

	store := NewS3Store(client, &config.S3Config{BucketName: "attachments", PublicURL: "https://cdn.example.com/"})

	ref, err := store.Save(ctx, "abc.pdf", strings.NewReader("pdf"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/tickets/abc.pdf", ref)
	client.AssertExpectations(t)
}

func TestS3Store_SaveWithoutPublicURL(t *testing.T) {
	ctx := context.Background()
	client := new(mockS3)
	client.On("PutObject", ctx, mock.Anything).Return(&s3.PutObjectOutput{}, nil)

	store := NewS3Store(client, &config.S3Config{BucketName: "attachments"})

	ref, err := store.Save(ctx, "abc.png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "s3://attachments/tickets/abc.png", ref)
}

func TestS3Store_Errors(t *testing.T) {
	ctx := context.Background()
	client := new(mockS3)
	client.On("PutObject", ctx, mock.Anything).Return(nil, errors.New("boom"))
	client.On("DeleteObject", ctx, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return *in.Key == "tickets/abc.png"
	})).Return(&s3.DeleteObjectOutput{}, nil)

	store := NewS3Store(client, &config.S3Config{BucketName: "attachments"})

	_, err := store.Save(ctx, "abc.png", strings.NewReader("png"))
	assert.Error(t, err)

	assert.NoError(t, store.Delete(ctx, "/uploads/tickets/abc.png"))
	client.AssertExpectations(t)
}
