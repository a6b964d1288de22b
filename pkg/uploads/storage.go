package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file exceeds the size limit")
)

// MaxSlipSize caps payment slip uploads at 2MB.
const MaxSlipSize = 2 << 20

var slipExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

var brandingExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".ico":  true,
}

// Store writes uploaded files under a single root directory with
// generated unique names. Callers remove the stored file when the
// surrounding database transaction fails.
type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{root: root}, nil
}

// SaveSlip stores a payment proof for an order and returns the stored
// file name. Extension and size are validated before anything is
// written.
func (s *Store) SaveSlip(orderID uint, filename string, r io.Reader, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !slipExts[ext] {
		return "", ErrUnsupportedType
	}
	if size > MaxSlipSize {
		return "", ErrFileTooLarge
	}
	name := fmt.Sprintf("slip_%d_%d%s", orderID, time.Now().UnixNano(), ext)
	if err := s.write(name, r); err != nil {
		return "", err
	}
	return name, nil
}

// SaveBrandingAsset stores a logo or favicon. The prefix becomes part of
// the generated name, e.g. logo_1699999999.png.
func (s *Store) SaveBrandingAsset(prefix, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !brandingExts[ext] {
		return "", ErrUnsupportedType
	}
	name := fmt.Sprintf("%s_%d%s", prefix, time.Now().UnixNano(), ext)
	if err := s.write(name, r); err != nil {
		return "", err
	}
	return name, nil
}

// Remove deletes a stored file. Missing files are not an error so
// rollback cleanup is idempotent.
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the absolute path of a stored file.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, name)
}

func (s *Store) write(name string, r io.Reader) error {
	f, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
