// Package filestore persists uploaded media under a kind-specific
// directory tree. Validation is content-based: the MIME type is sniffed
// from the payload, never taken from the client-supplied filename.
package filestore

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/castkeep/publisher-api/pkg/errors"
	"github.com/castkeep/publisher-api/pkg/format"
)

// Kind classifies an upload and selects its directory, allow-list and
// size cap.
type Kind string

const (
	KindImage Kind = "image"
	KindAudio Kind = "audio"
	KindVideo Kind = "video"
)

// Per-kind size caps.
const (
	MaxImageBytes int64 = 5 << 20
	MaxAudioBytes int64 = 50 << 20
	MaxVideoBytes int64 = 500 << 20
)

var allowedMIMEs = map[Kind][]string{
	KindImage: {"image/jpeg", "image/png", "image/gif", "image/webp"},
	KindAudio: {"audio/mpeg", "audio/wav", "audio/x-wav", "audio/ogg", "audio/aac", "audio/flac", "audio/x-m4a", "audio/mp4"},
	KindVideo: {"video/mp4", "video/webm", "video/ogg", "video/quicktime"},
}

var sizeLimits = map[Kind]int64{
	KindImage: MaxImageBytes,
	KindAudio: MaxAudioBytes,
	KindVideo: MaxVideoBytes,
}

// StoredFile describes a persisted upload.
type StoredFile struct {
	// Path is relative to the store root, e.g. "audio/ab12_169...mp3".
	Path string
	Size int64
	MIME string
}

// Store is the interface the record managers depend on.
type Store interface {
	// Save validates and persists an uploaded file.
	Save(fh *multipart.FileHeader, kind Kind) (*StoredFile, error)
	// Remove deletes a previously stored file by its relative path.
	// Best effort: failures are logged, never returned.
	Remove(relPath string)
}

// DiskStore persists uploads on the local filesystem.
type DiskStore struct {
	root string
}

var _ Store = (*DiskStore)(nil)

// NewDiskStore creates a store rooted at dir.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{root: dir}
}

// Save validates the upload against kind's allow-list and size cap, then
// writes it under <root>/<kind>/ with a collision-resistant name. The
// file is created with O_EXCL so an existing file is never overwritten.
func (s *DiskStore) Save(fh *multipart.FileHeader, kind Kind) (*StoredFile, error) {
	if fh == nil || fh.Size == 0 {
		return nil, errors.UploadError(fmt.Sprintf("no %s data received", kind))
	}

	limit, ok := sizeLimits[kind]
	if !ok {
		return nil, errors.UploadError(fmt.Sprintf("unknown upload kind '%s'", kind))
	}
	if fh.Size > limit {
		return nil, errors.UploadError(fmt.Sprintf("%s file exceeds the %s limit", kind, format.Bytes(limit)))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, errors.UploadError(fmt.Sprintf("failed to read %s upload", kind)).WithCause(err)
	}
	defer f.Close()

	return s.save(f, fh.Size, fh.Filename, kind, limit)
}

func (s *DiskStore) save(r io.Reader, declaredSize int64, originalName string, kind Kind, limit int64) (*StoredFile, error) {
	// Sniff from the first bytes of content
	header := make([]byte, 3072)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, errors.UploadError(fmt.Sprintf("failed to read %s upload", kind)).WithCause(err)
	}
	if n == 0 {
		return nil, errors.UploadError(fmt.Sprintf("no %s data received", kind))
	}
	header = header[:n]

	mtype := mimetype.Detect(header)
	if !mimeAllowed(kind, mtype.String()) {
		return nil, errors.UploadError(fmt.Sprintf(
			"invalid %s type '%s', allowed types: %s",
			kind, mtype.String(), strings.Join(allowedMIMEs[kind], ", ")))
	}

	dir := filepath.Join(s.root, string(kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.UploadError(fmt.Sprintf("failed to prepare %s directory", kind)).WithCause(err)
	}

	name := generateName(originalName, mtype.Extension())
	dst := filepath.Join(dir, name)

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, errors.UploadError(fmt.Sprintf("failed to store %s file", kind)).WithCause(err)
	}

	// Guard the cap against a lying Content-Length: copy at most one
	// byte past the limit and reject if it arrives.
	written, err := io.Copy(out, io.MultiReader(bytes.NewReader(header), io.LimitReader(r, limit-int64(n)+1)))
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dst)
		return nil, errors.UploadError(fmt.Sprintf("failed to store %s file", kind)).WithCause(err)
	}
	if written > limit {
		os.Remove(dst)
		return nil, errors.UploadError(fmt.Sprintf("%s file exceeds the %s limit", kind, format.Bytes(limit)))
	}

	return &StoredFile{
		Path: path.Join(string(kind), name),
		Size: written,
		MIME: mtype.String(),
	}, nil
}

// Remove deletes a stored file. Stale files are acceptable clutter, so
// every failure (including a file already gone) is logged and swallowed.
func (s *DiskStore) Remove(relPath string) {
	if relPath == "" {
		return
	}
	cleaned := filepath.Clean(filepath.FromSlash(relPath))
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		log.Printf("[WARN] Refusing to remove file outside store root: %s", relPath)
		return
	}
	if err := os.Remove(filepath.Join(s.root, cleaned)); err != nil {
		log.Printf("[WARN] Failed to remove stored file %s: %v", relPath, err)
	}
}

func mimeAllowed(kind Kind, mime string) bool {
	for _, m := range allowedMIMEs[kind] {
		if m == mime {
			return true
		}
	}
	return false
}

// generateName combines a random token and a timestamp with the
// original extension, so concurrent uploads never collide.
func generateName(originalName, sniffedExt string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = sniffedExt
	}
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s_%d%s", token, time.Now().UnixNano(), ext)
}
