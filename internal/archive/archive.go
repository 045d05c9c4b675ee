package archive

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const zstSuffix = ".zst"

// Fingerprint returns the hex sha256 of an input blob.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Archive compresses data into archiveDir/{fingerprint-prefix}.txt.zst.
// Returns the archive path. An input already archived is not rewritten.
func Archive(data []byte, archiveDir string) (string, error) {
	destPath := ArchivePath(Fingerprint(data), archiveDir)
	if _, err := os.Stat(destPath); err == nil {
		return destPath, nil
	}

	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	dest, err := os.CreateTemp(archiveDir, ".archive-*")
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer os.Remove(dest.Name())

	encoder, err := zstd.NewWriter(dest)
	if err != nil {
		dest.Close()
		return "", fmt.Errorf("create zstd encoder: %w", err)
	}

	if _, err := io.Copy(encoder, bytes.NewReader(data)); err != nil {
		encoder.Close()
		dest.Close()
		return "", fmt.Errorf("compress: %w", err)
	}

	if err := encoder.Close(); err != nil {
		dest.Close()
		return "", fmt.Errorf("finalize compression: %w", err)
	}
	if err := dest.Close(); err != nil {
		return "", fmt.Errorf("close archive: %w", err)
	}

	if err := os.Rename(dest.Name(), destPath); err != nil {
		return "", fmt.Errorf("place archive: %w", err)
	}

	return destPath, nil
}

// Open returns a reader over the file at path, decoding zstd when the name
// ends in .zst.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	if !strings.HasSuffix(path, zstSuffix) {
		return f, nil
	}

	decoder, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &zstdFile{Decoder: decoder, f: f}, nil
}

type zstdFile struct {
	*zstd.Decoder
	f *os.File
}

func (z *zstdFile) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

// ReadFile returns the full, decompressed content of path.
func ReadFile(path string) ([]byte, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", path, err)
	}
	return data, nil
}

// IsArchived returns true if an archive file exists for the given fingerprint.
func IsArchived(fingerprint, archiveDir string) bool {
	_, err := os.Stat(ArchivePath(fingerprint, archiveDir))
	return err == nil
}

// ArchivePath returns the deterministic archive path for a fingerprint.
func ArchivePath(fingerprint, archiveDir string) string {
	name := fingerprint
	if len(name) > 16 {
		name = name[:16]
	}
	return filepath.Join(archiveDir, name+".txt"+zstSuffix)
}
