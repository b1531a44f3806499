package cloudinary

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

// Config contains credentials required to talk to Cloudinary.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Storage keeps resource uploads in Cloudinary instead of the local disk.
type Storage struct {
	client *cloudinary.Cloudinary
	folder string
	logger zerolog.Logger
	now    func() time.Time
}

// New constructs a Cloudinary-backed upload store.
func New(cfg Config, logger zerolog.Logger) (*Storage, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &Storage{
		client: cld,
		folder: strings.Trim(cfg.Folder, "/"),
		logger: logger.With().Str("component", "cloudinary").Logger(),
		now:    time.Now,
	}, nil
}

// Save uploads the bytes and returns the asset's secure URL.
func (s *Storage) Save(ctx context.Context, name string, reader io.Reader) (string, error) {
	params := uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     buildPublicID(name, s.now()),
		ResourceType: "auto",
	}

	result, err := s.client.Upload.Upload(ctx, reader, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload asset: %w", err)
	}

	s.logger.Info().Str("public_id", result.PublicID).Msg("file uploaded to cloudinary")
	return result.SecureURL, nil
}

// Remove destroys the asset behind a URL previously returned by Save.
func (s *Storage) Remove(ctx context.Context, stored string) error {
	publicID, resourceType, err := publicIDFromURL(stored)
	if err != nil {
		return err
	}

	if _, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	}); err != nil {
		return fmt.Errorf("failed to destroy asset: %w", err)
	}

	s.logger.Info().Str("public_id", publicID).Msg("file removed from cloudinary")
	return nil
}

func buildPublicID(name string, now time.Time) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, base)

	base = strings.Trim(base, "-")
	if base == "" {
		base = "resource"
	}

	return fmt.Sprintf("%s-%d", base, now.Unix())
}

// publicIDFromURL extracts "<folder>/<id>" and the resource type from a delivery URL
// shaped like https://res.cloudinary.com/<cloud>/<type>/upload/v<version>/<folder>/<id>.<ext>.
func publicIDFromURL(raw string) (string, string, error) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return "", "", fmt.Errorf("not a cloudinary url: %q", raw)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	uploadIdx := -1
	for i, segment := range segments {
		if segment == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx < 1 || uploadIdx+1 >= len(segments) {
		return "", "", fmt.Errorf("not a cloudinary url: %q", raw)
	}

	resourceType := segments[uploadIdx-1]
	rest := segments[uploadIdx+1:]
	if len(rest) > 1 && strings.HasPrefix(rest[0], "v") {
		rest = rest[1:]
	}

	id := path.Join(rest...)
	id = strings.TrimSuffix(id, path.Ext(id))
	if id == "" {
		return "", "", fmt.Errorf("not a cloudinary url: %q", raw)
	}

	return id, resourceType, nil
}
