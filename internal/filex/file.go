// Package filex reads media files for upload and prepares local folders
// for downloads.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxMediaSize bounds what ReadMedia will load into memory.
const MaxMediaSize = 50 << 20

var ErrUnsupportedMedia = errors.New("unsupported media type")

// Media is a local file ready for upload.
type Media struct {
	Data     []byte
	MIME     string
	Kind     string // "image" or "video"
	FileName string
}

// ReadMedia loads path and sniffs its content. Only images and videos are
// accepted.
func ReadMedia(path string) (Media, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Media{}, err
	}
	if fi.IsDir() {
		return Media{}, fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > MaxMediaSize {
		return Media{}, fmt.Errorf("%s is %d bytes, at most %d allowed", path, fi.Size(), MaxMediaSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Media{}, err
	}

	mime := mimetype.Detect(data)
	kind, _, _ := strings.Cut(mime.String(), "/")
	if kind != "image" && kind != "video" {
		return Media{}, fmt.Errorf("%w: %s", ErrUnsupportedMedia, mime.String())
	}

	return Media{Data: data, MIME: mime.String(), Kind: kind, FileName: filepath.Base(path)}, nil
}

// EnsureSubDir creates dirName under the working directory if needed and
// returns its absolute path.
func EnsureSubDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
