package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxPhotoSize = 20 * 1024 * 1024 // 20 MB

// allowedMimeTypes lists the image formats accepted from field devices.
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type Service struct {
	repo       Repository
	signer     *Signer // nil when no signing secret is configured
	baseDir    string
	staticBase string
	proxy      *Proxy
	logger     *zap.Logger
}

func NewService(repo Repository, signer *Signer, baseDir, staticBase string, proxy *Proxy, logger *zap.Logger) *Service {
	return &Service{
		repo:       repo,
		signer:     signer,
		baseDir:    baseDir,
		staticBase: staticBase,
		proxy:      proxy,
		logger:     logger,
	}
}

// Upload saves a photo to disk and records it in the database.
func (s *Service) Upload(ctx context.Context, clientID, userID int64, fileHeader *multipart.FileHeader) (*Photo, error) {
	if fileHeader.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fileHeader.Size > maxPhotoSize {
		return nil, ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Detect MIME type from the first 512 bytes, not the client header.
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	if !allowedMimeTypes[mimeType] {
		return nil, ErrInvalidMimeType
	}
	if seeker, ok := file.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}

	now := time.Now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	id := uuid.New().String()
	ext := filepath.Ext(fileHeader.Filename)
	if ext == "" {
		ext = mimeToExt(mimeType)
	}
	filename := fmt.Sprintf("%s_%s%s", id, sanitizeName(fileHeader.Filename), ext)

	absPath := filepath.Join(absDir, filename)
	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	photo := &Photo{
		ID:           id,
		ClientID:     clientID,
		UserID:       userID,
		OriginalName: fileHeader.Filename,
		FilePath:     filepath.Join(relDir, filename),
		MimeType:     mimeType,
		Size:         fileHeader.Size,
		CreatedAt:    now,
	}
	if err := s.repo.Create(ctx, photo); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to save photo record: %w", err)
	}
	return photo, nil
}

// URL returns the fetch URL for a photo. With a signing secret configured it
// is a short-lived signed link; without one it degrades to the public static
// path so existing galleries keep rendering.
func (s *Service) URL(ctx context.Context, clientID int64, id string) (string, error) {
	photo, err := s.repo.GetByID(ctx, clientID, id)
	if err != nil {
		return "", err
	}
	if s.signer == nil {
		return s.publicURL(photo), nil
	}
	return s.signer.SignedPath(photo.ID, time.Now()), nil
}

func (s *Service) publicURL(p *Photo) string {
	return s.staticBase + "/" + strings.ReplaceAll(p.FilePath, "\\", "/")
}

// Object verifies the signed query and returns the photo plus its absolute
// disk path. The object route is tenant-blind: possession of a valid
// signature is the authorization.
func (s *Service) Object(ctx context.Context, id, exp, sig string) (*Photo, string, error) {
	if s.signer == nil {
		return nil, "", ErrBadSignature
	}
	if err := s.signer.Verify(id, exp, sig, time.Now()); err != nil {
		return nil, "", err
	}
	p, err := s.repo.GetAnyByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return p, filepath.Join(s.baseDir, p.FilePath), nil
}

// Proxy fetches an external image through the allow-listed proxy.
func (s *Service) Proxy(ctx context.Context, rawURL string) ([]byte, string, error) {
	if s.proxy == nil {
		return nil, "", ErrHostNotAllowed
	}
	return s.proxy.Fetch(ctx, rawURL)
}

// ListByUser returns a user's photos with their fetch URLs resolved.
func (s *Service) ListByUser(ctx context.Context, clientID, userID int64) ([]PhotoView, error) {
	photos, err := s.repo.ListByUser(ctx, clientID, userID)
	if err != nil {
		s.logger.Error("photo list failed", zap.Int64("user_id", userID), zap.Error(err))
		return []PhotoView{}, nil
	}
	views := make([]PhotoView, 0, len(photos))
	now := time.Now()
	for _, p := range photos {
		url := s.publicURL(p)
		if s.signer != nil {
			url = s.signer.SignedPath(p.ID, now)
		}
		views = append(views, PhotoView{Photo: *p, URL: url})
	}
	return views, nil
}

type PhotoView struct {
	Photo
	URL string `json:"url"`
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" {
		return "photo"
	}
	return name
}

func mimeToExt(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
