package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	// MaxImageBytes bounds uploads before decoding.
	MaxImageBytes = 5 << 20
	maxImageSide  = 512
	jpegQuality   = 85
)

var allowedImageExts = []string{".jpg", ".jpeg", ".png"}

type FileService interface {
	// UploadEmployeeImage stores a resized JPEG copy and returns its storage key.
	UploadEmployeeImage(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	GetFileURL(key string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

func (s *fileServiceImpl) UploadEmployeeImage(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !isAllowedImage(ext) {
		return "", employee.ErrInvalidImageType
	}

	buffer, err := io.ReadAll(io.LimitReader(file, MaxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(buffer) > MaxImageBytes {
		return "", employee.ErrImageTooLarge
	}

	encoded, err := shrinkImage(buffer, maxImageSide)
	if err != nil {
		return "", err
	}

	key := path.Join("employees", employeeID, uuid.NewString()+".jpg")
	uploaded, err := s.storage.Upload(ctx, bytes.NewReader(encoded), key, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload employee image: %w", err)
	}
	return uploaded, nil
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

func (s *fileServiceImpl) GetFileURL(key string) string {
	return s.storage.GetURL(key)
}

func isAllowedImage(ext string) bool {
	for _, allowed := range allowedImageExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

// shrinkImage re-encodes as JPEG, scaling down so the longest side is at most maxSide.
func shrinkImage(buffer []byte, maxSide int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, employee.ErrInvalidImageType
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > maxSide || height > maxSide {
		if width >= height {
			height = max(1, height*maxSide/width)
			width = maxSide
		} else {
			width = max(1, width*maxSide/height)
			height = maxSide
		}
		img = resizeImage(img, width, height)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
