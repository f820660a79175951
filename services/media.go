package services

import (
	ctx "context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/shared"
)

// MediaService stores category and product images in MinIO.
type MediaService struct {
	context.DefaultService

	client     *minio.Client
	bucketName string
	endpoint   string
	accessKey  string
	secretKey  string
	useSSL     bool
	publicURL  string
}

const MEDIA_SVC = "media_svc"

const maxUploadSize = 5 << 20 // 5 MiB

var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *context.Context) error {
	svc.endpoint = os.Getenv("MINIO_ENDPOINT")
	if svc.endpoint == "" {
		svc.endpoint = "localhost:9000"
	}

	svc.accessKey = os.Getenv("MINIO_ACCESS_KEY")
	if svc.accessKey == "" {
		svc.accessKey = "admin"
	}

	svc.secretKey = os.Getenv("MINIO_SECRET_KEY")
	if svc.secretKey == "" {
		svc.secretKey = "password123"
	}

	svc.useSSL = os.Getenv("MINIO_USE_SSL") == "true"

	svc.bucketName = os.Getenv("MINIO_BUCKET_NAME")
	if svc.bucketName == "" {
		svc.bucketName = "fastbite-media"
	}

	svc.publicURL = os.Getenv("MINIO_PUBLIC_URL")

	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	client, err := minio.New(svc.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(svc.accessKey, svc.secretKey, ""),
		Secure: svc.useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %v", err)
	}

	svc.client = client

	if err := svc.ensureBucket(); err != nil {
		return fmt.Errorf("failed to ensure bucket exists: %v", err)
	}

	log.WithField("endpoint", svc.endpoint).Info("Media service started")
	return nil
}

func (svc *MediaService) ensureBucket() error {
	c := ctx.Background()

	exists, err := svc.client.BucketExists(c, svc.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %v", err)
	}

	if !exists {
		if err := svc.client.MakeBucket(c, svc.bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %v", err)
		}
		log.WithField("bucket", svc.bucketName).Info("Created MinIO bucket")
	}

	return nil
}

// UploadImage validates and stores an uploaded image, returning its public
// URL. Object names are uuid-based under the given folder so repeat uploads
// never collide.
func (svc *MediaService) UploadImage(folder string, fileHeader *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if fileHeader.Size > maxUploadSize {
		return nil, shared.ErrBadRequest("La imagen supera el tamaño máximo de 5MB")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := allowedImageTypes[ext]
	if !ok {
		return nil, shared.ErrBadRequest("Formato de imagen no soportado (jpg, png, webp)")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer file.Close()

	objectName := fmt.Sprintf("%s/%s%s", folder, uuid.Must(uuid.NewV7()).String(), ext)

	c, cancel := ctx.WithTimeout(ctx.Background(), 30*time.Second)
	defer cancel()

	info, err := svc.client.PutObject(c, svc.bucketName, objectName, file, fileHeader.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file to MinIO: %v", err)
	}

	return &dto.MediaUploadResponse{
		URL:        svc.objectURL(objectName),
		ObjectName: objectName,
		Size:       info.Size,
	}, nil
}

// PresignedURL generates a short-lived download link for a stored object.
func (svc *MediaService) PresignedURL(objectName string, expiry time.Duration) (string, error) {
	c, cancel := ctx.WithTimeout(ctx.Background(), 10*time.Second)
	defer cancel()

	presignedURL, err := svc.client.PresignedGetObject(c, svc.bucketName, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %v", err)
	}
	return presignedURL.String(), nil
}

func (svc *MediaService) objectURL(objectName string) string {
	if svc.publicURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(svc.publicURL, "/"), svc.bucketName, objectName)
	}
	scheme := "http"
	if svc.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, svc.endpoint, svc.bucketName, objectName)
}
