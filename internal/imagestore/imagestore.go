package imagestore

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Store is the image collaborator contract. Catalog create treats upload
// errors as fatal; delete errors are logged and ignored by callers.
type Store interface {
	Upload(ctx context.Context, name string, r io.Reader) (url string, err error)
	Delete(ctx context.Context, url string) error
}

// Cloudinary implements Store against the Cloudinary upload API.
type Cloudinary struct {
	client *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cloudinaryURL, folder string) (*Cloudinary, error) {
	client, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &Cloudinary{client: client, folder: folder}, nil
}

func (s *Cloudinary) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	res, err := s.client.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   s.folder,
		PublicID: name,
	})
	if err != nil {
		return "", err
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

func (s *Cloudinary) Delete(ctx context.Context, url string) error {
	publicID := publicIDFromURL(url, s.folder)
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// publicIDFromURL recovers "<folder>/<name>" from a delivery URL like
// .../upload/v123/<folder>/<name>.jpg.
func publicIDFromURL(url, folder string) string {
	marker := "/" + folder + "/"
	idx := strings.LastIndex(url, marker)
	if idx < 0 {
		return url
	}
	id := url[idx+1:]
	if dot := strings.LastIndex(id, "."); dot > 0 {
		id = id[:dot]
	}
	return id
}

// InMemory is a test double that records uploads and deletions.
type InMemory struct {
	mu       sync.Mutex
	nextID   int
	Uploaded []string
	Deleted  []string
	FailNext bool
}

func NewInMemory() *InMemory { return &InMemory{} }

func (s *InMemory) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailNext {
		s.FailNext = false
		return "", fmt.Errorf("upload failed")
	}
	s.nextID++
	url := fmt.Sprintf("https://img.test/%s-%d", name, s.nextID)
	s.Uploaded = append(s.Uploaded, url)
	return url, nil
}

func (s *InMemory) Delete(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deleted = append(s.Deleted, url)
	return nil
}
