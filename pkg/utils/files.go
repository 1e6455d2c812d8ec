package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/ulikunitz/xz"
)

// romExtensions are the extensions preferred when picking a file out
// of an archive.
var romExtensions = []string{".gb", ".gbc", ".bin"}

// LoadFile loads the given file and performs decompression if necessary.
// Archives (.zip and .7z) yield the first ROM image they contain, or
// their first file when none has a ROM extension.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Decompress(filepath.Ext(filename), data)
}

// Decompress decodes data according to the file extension ext. Data
// with an unknown extension is returned as is.
func Decompress(ext string, data []byte) ([]byte, error) {
	var (
		decoder io.Reader
		err     error
	)
	switch strings.ToLower(ext) {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".xz":
		decoder, err = xz.NewReader(bytes.NewReader(data))
	case ".zip":
		var r *zip.Reader
		if r, err = zip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
			break
		}
		files := make([]archiveFile, len(r.File))
		for i, f := range r.File {
			files[i] = f
		}
		decoder, err = openArchived(files)
	case ".7z":
		var r *sevenzip.Reader
		if r, err = sevenzip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
			break
		}
		files := make([]archiveFile, len(r.File))
		for i, f := range r.File {
			files[i] = f
		}
		decoder, err = openArchived(files)
	default:
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", ext, err)
	}
	if c, ok := decoder.(io.Closer); ok {
		defer c.Close()
	}

	return io.ReadAll(decoder)
}

// archiveFile is a file inside a zip or 7z archive.
type archiveFile interface {
	Open() (io.ReadCloser, error)
	FileInfo() os.FileInfo
}

// openArchived opens the first ROM image in files.
func openArchived(files []archiveFile) (io.ReadCloser, error) {
	var first archiveFile
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		if first == nil {
			first = f
		}
		ext := strings.ToLower(filepath.Ext(f.FileInfo().Name()))
		for _, romExt := range romExtensions {
			if ext == romExt {
				return f.Open()
			}
		}
	}
	if first == nil {
		return nil, fmt.Errorf("archive is empty")
	}
	return first.Open()
}
