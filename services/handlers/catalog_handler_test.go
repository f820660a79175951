package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/shared"
)

type stubMediaService struct {
	lastObject string
	lastExpiry time.Duration
}

func (s *stubMediaService) UploadImage(string, *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubMediaService) PresignedURL(objectName string, expiry time.Duration) (string, error) {
	s.lastObject = objectName
	s.lastExpiry = expiry
	return "https://cdn.test/" + objectName + "?sig=abc", nil
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if appErr, ok := shared.GetAppError(err); ok {
				return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
			}
			return shared.ResponseInternalError(c, err)
		},
	})
}

func TestProductImageLinkReturnsPresignedURL(t *testing.T) {
	media := &stubMediaService{}
	h := NewCatalogHandler(nil, media)

	app := newTestApp()
	app.Get("/products/images/link", h.ProductImageLink)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/products/images/link?object=products/foo.jpg", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body struct {
		Code int               `json:"code"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(raw, &body))
	assert.Equal(t, "https://cdn.test/products/foo.jpg?sig=abc", body.Data["url"])

	assert.Equal(t, "products/foo.jpg", media.lastObject)
	assert.Equal(t, 15*time.Minute, media.lastExpiry)
}

func TestProductImageLinkRequiresObject(t *testing.T) {
	h := NewCatalogHandler(nil, &stubMediaService{})

	app := newTestApp()
	app.Get("/products/images/link", h.ProductImageLink)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/products/images/link", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
