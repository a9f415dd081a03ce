package duplicates

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"nex/internal/fserr"
	"nex/internal/logging"
	"nex/internal/scanner"
)

// DefaultChunkSize is the read size used when hashing.
const DefaultChunkSize = 64 * 1024

// MaxChunkSize caps the hashing buffer.
const MaxChunkSize = 64 << 20

// Group is a set of files sharing one digest. Files[0] is the keeper.
type Group struct {
	Digest string              `json:"digest"`
	Files  []scanner.FileEntry `json:"files"`
}

// Keeper returns the file that stays.
func (g Group) Keeper() scanner.FileEntry {
	return g.Files[0]
}

// Removable returns every file but the keeper.
func (g Group) Removable() []scanner.FileEntry {
	return append([]scanner.FileEntry(nil), g.Files[1:]...)
}

// ProgressFunc is called after each file with the files handled so far.
type ProgressFunc func(done, total int)

// Options tunes duplicate detection.
type Options struct {
	// ChunkSize is the hashing read size in bytes; <= 0 selects
	// DefaultChunkSize and larger values are capped at MaxChunkSize.
	ChunkSize int
	Progress  ProgressFunc
	Logger    *slog.Logger
}

// HashFile returns the lowercase hex SHA-256 digest of the file at path.
func HashFile(path string, chunkSize int) (string, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	chunkSize = min(chunkSize, MaxChunkSize)
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, onlyReader{f}, buf); err != nil {
		return "", fmt.Errorf("read: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// onlyReader hides WriterTo so io.CopyBuffer honours the chunk size.
type onlyReader struct {
	io.Reader
}

// Find hashes files in order and returns the duplicate groups. Files that
// cannot be read are reported and excluded. A cancelled context stops before
// the next file.
func Find(ctx context.Context, files []scanner.FileEntry, opts Options) ([]Group, *fserr.Report, error) {
	logger := logging.NewComponentLogger(opts.Logger, "duplicates")
	report := fserr.NewReport()

	byDigest := make(map[string][]scanner.FileEntry)
	var order []string
	total := len(files)

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}
		digest, err := HashFile(file.Path, opts.ChunkSize)
		if err != nil {
			report.Add("hash", file.Path, err)
			logger.Warn("hashing failed", logging.String(logging.FieldPath, file.Path), logging.Error(err))
		} else {
			if _, seen := byDigest[digest]; !seen {
				order = append(order, digest)
			}
			byDigest[digest] = append(byDigest[digest], file)
		}
		if opts.Progress != nil {
			opts.Progress(i+1, total)
		}
	}

	var groups []Group
	for _, digest := range order {
		members := byDigest[digest]
		if len(members) < 2 {
			continue
		}
		groups = append(groups, Group{Digest: digest, Files: members})
	}

	logger.Info("duplicate scan complete",
		logging.Int("files", total),
		logging.Int("groups", len(groups)),
		logging.Int("failures", report.Len()),
	)
	return groups, report, nil
}

// FindInMap runs Find over every file of m, categories in map order.
func FindInMap(ctx context.Context, m scanner.FileMap, opts Options) ([]Group, *fserr.Report, error) {
	return Find(ctx, m.All(), opts)
}
