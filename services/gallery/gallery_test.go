package gallery

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"pizzeria/database"
	galleryRepo "pizzeria/database/repository/gallery"
	"pizzeria/models"
	"pizzeria/services/storage"
	"pizzeria/utils"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		img.Set(x, 0, color.NRGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestService() (*Service, *storage.MemoryBlobStore) {
	blobs := storage.NewMemoryBlobStore()
	return NewService(galleryRepo.NewGalleryRepo(database.NewMemoryStore()), blobs, nil), blobs
}

func TestUploadResizesAndStoresJPEG(t *testing.T) {
	svc, blobs := newTestService()
	ctx := context.Background()

	img, err := svc.Upload(ctx, bytes.NewReader(pngBytes(t, 3840, 1080)), "image/png", Upload{Title: "Taller", IsFeatured: true})
	require.NoError(t, err)
	assert.Equal(t, 1920, img.Width)
	assert.Equal(t, 540, img.Height)
	assert.Equal(t, "gallery/"+img.ID+".jpg", img.BlobPath)
	assert.True(t, strings.HasPrefix(img.URL, "memory://"))

	data, ok := blobs.Get(img.BlobPath)
	require.True(t, ok)
	decoded, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1920, decoded.Bounds().Dx())
	assert.Equal(t, []byte{0xFF, 0xD8}, data[:2])
}

func TestUploadKeepsSmallImages(t *testing.T) {
	svc, _ := newTestService()
	img, err := svc.Upload(context.Background(), bytes.NewReader(pngBytes(t, 640, 480)), "image/png", Upload{})
	require.NoError(t, err)
	assert.Equal(t, 640, img.Width)
	assert.Equal(t, 480, img.Height)
}

func TestUploadRejectsNonImages(t *testing.T) {
	svc, _ := newTestService()
	var vErr *utils.ValidationError

	_, err := svc.Upload(context.Background(), strings.NewReader("hello"), "text/plain", Upload{})
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.Upload(context.Background(), strings.NewReader("not really a png"), "image/png", Upload{})
	assert.ErrorAs(t, err, &vErr)
}

func TestListFeaturedUpdateDelete(t *testing.T) {
	svc, blobs := newTestService()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 8; i++ {
		img, err := svc.Upload(ctx, bytes.NewReader(pngBytes(t, 20, 20)), "image/png", Upload{IsFeatured: true, EventID: "ev-1"})
		require.NoError(t, err)
		ids = append(ids, img.ID)
	}

	featured, err := svc.Featured(ctx)
	require.NoError(t, err)
	assert.Len(t, featured, 6)

	byEvent, err := svc.List(ctx, "ev-1", false, 0)
	require.NoError(t, err)
	assert.Len(t, byEvent, 8)

	off := false
	title := "Masa madre"
	updated, err := svc.Update(ctx, ids[0], models.GalleryImageUpdate{Title: &title, IsFeatured: &off})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.False(t, updated.IsFeatured)

	require.NoError(t, svc.Delete(ctx, ids[0]))
	_, ok := blobs.Get(updated.BlobPath)
	assert.False(t, ok)

	var nErr *utils.NotFoundError
	_, err = svc.Get(ctx, ids[0])
	assert.ErrorAs(t, err, &nErr)
	assert.ErrorAs(t, svc.Delete(ctx, ids[0]), &nErr)
}
