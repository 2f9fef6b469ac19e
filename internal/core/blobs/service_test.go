package blobs

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory object store recording every call.
type fakeStore struct {
	objects map[string][]byte
	uploads int
	removes int
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	f.uploads++
	f.objects[path] = data
	return nil
}

func (f *fakeStore) ResolveURL(ctx context.Context, path string) (string, error) {
	return fmt.Sprintf("https://blobs.test/%s", path), nil
}

func (f *fakeStore) Remove(ctx context.Context, path string) error {
	f.removes++
	delete(f.objects, path)
	return nil
}

func TestClassify(t *testing.T) {
	tests := []struct {
		contentType string
		wantKind    Kind
		wantErr     bool
	}{
		{"image/png", KindImage, false},
		{"image/jpeg", KindImage, false},
		{"video/mp4", KindVideo, false},
		{"video/webm", KindVideo, false},
		{"application/pdf", "", true},
		{"text/plain", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		kind, err := Classify(tt.contentType)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnsupportedFileType, "content type %q", tt.contentType)
		} else {
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, kind)
		}
	}
}

func TestValidateSize_BoundaryIsInclusive(t *testing.T) {
	atLimit := FileUpload{Data: make([]byte, MaxFileSize), ContentType: "image/png"}
	assert.NoError(t, ValidateSize(atLimit))

	overLimit := FileUpload{Data: make([]byte, MaxFileSize+1), ContentType: "image/png"}
	assert.ErrorIs(t, ValidateSize(overLimit), ErrFileTooLarge)
}

func TestUploadPostMedia(t *testing.T) {
	store := newFakeStore()
	svc := NewBlobService(store)

	file := FileUpload{Data: []byte("fake png"), ContentType: "image/png"}
	url, kind, err := svc.UploadPostMedia(context.Background(), "user-1", "post-1", file)

	require.NoError(t, err)
	assert.Equal(t, KindImage, kind)
	assert.Equal(t, "https://blobs.test/contents/user-1/post-1", url)
	assert.Contains(t, store.objects, "contents/user-1/post-1")
}

func TestUploadPostMedia_RejectsBeforeUpload(t *testing.T) {
	store := newFakeStore()
	svc := NewBlobService(store)

	_, _, err := svc.UploadPostMedia(context.Background(), "user-1", "post-1",
		FileUpload{Data: make([]byte, MaxFileSize+1), ContentType: "image/png"})
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, _, err = svc.UploadPostMedia(context.Background(), "user-1", "post-1",
		FileUpload{Data: []byte("nope"), ContentType: "application/zip"})
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	assert.Zero(t, store.uploads, "invalid files must never reach the store")
}

func TestUploadAvatar_ImagesOnly(t *testing.T) {
	store := newFakeStore()
	svc := NewBlobService(store)

	url, err := svc.UploadAvatar(context.Background(), "user-1", FileUpload{Data: []byte("pic"), ContentType: "image/jpeg"})
	require.NoError(t, err)
	assert.Equal(t, "https://blobs.test/avatars/user-1", url)

	_, err = svc.UploadAvatar(context.Background(), "user-1", FileUpload{Data: []byte("clip"), ContentType: "video/mp4"})
	assert.ErrorIs(t, err, ErrAvatarNotImage)
	assert.Equal(t, 1, store.uploads)
}

func TestRemovePostMedia(t *testing.T) {
	store := newFakeStore()
	store.objects["contents/user-1/post-1"] = []byte("data")
	svc := NewBlobService(store)

	require.NoError(t, svc.RemovePostMedia(context.Background(), "user-1", "post-1"))
	assert.NotContains(t, store.objects, "contents/user-1/post-1")
}

func TestMediaPaths(t *testing.T) {
	assert.Equal(t, "contents/u/p", PostMediaPath("u", "p"))
	assert.Equal(t, "avatars/u", AvatarPath("u"))
}
