package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// LogoURLPrefix is the path under which the logo directory is served
const LogoURLPrefix = "/logos/"

// Upload is a file received from a client
type Upload struct {
	Filename string
	Content  io.Reader
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_\-.]`)

// SanitizeName replaces every character that is unsafe in a file name with "_"
func SanitizeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}

// LogoStore keeps one logo file per competition in a directory
type LogoStore struct {
	dir   string
	newID func() string
}

// NewLogoStore creates the directory if needed
func NewLogoStore(dir string) (*LogoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create logo dir: %w", err)
	}
	return &LogoStore{dir: dir, newID: uuid.NewString}, nil
}

// Dir returns the directory logos are stored in
func (s *LogoStore) Dir() string {
	return s.dir
}

// Save writes up as the new logo of the competition called name and then
// removes the file named by current, the competition's stored logo URL. A nil
// upload only removes, and Save then returns a nil URL.
func (s *LogoStore) Save(name string, current *string, up *Upload) (*string, error) {
	if up == nil {
		return nil, s.Remove(current)
	}

	filename := fmt.Sprintf("%s_%s%s", SanitizeName(name), s.newID(), filepath.Ext(up.Filename))
	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(f, up.Content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, err
	}

	url := LogoURLPrefix + filename
	if err := s.Remove(current); err != nil {
		return &url, err
	}
	return &url, nil
}

// Remove deletes the file behind a stored logo URL. A nil URL, or a file that
// is already gone, is not an error.
func (s *LogoStore) Remove(logoURL *string) error {
	if logoURL == nil {
		return nil
	}
	filename := filepath.Base(strings.TrimPrefix(*logoURL, LogoURLPrefix))
	if filename == "." || filename == "/" || filename == ".." {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
