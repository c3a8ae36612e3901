package fs

import (
	"bytes"
	"io"
	"os"

	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
	"go.trai.ch/zerr"
)

// streamBlockSize is the read block size for the streaming path.
const streamBlockSize = 64 * 1024

// ReadFile returns the content of path. Files larger than threshold are read
// through a streaming path that accumulates content block by block instead of
// one blocking read, bounding peak allocation spikes on pathological inputs.
// A non-positive threshold disables streaming.
func ReadFile(path string, threshold int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
	}

	if threshold <= 0 || info.Size() <= threshold {
		data, err := os.ReadFile(path) //nolint:gosec // Path is controlled by caller
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
		}
		return data, nil
	}

	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	var buf bytes.Buffer
	block := make([]byte, streamBlockSize)
	for {
		n, readErr := f.Read(block)
		if n > 0 {
			buf.Write(block[:n])
		}
		if readErr == io.EOF {
			return buf.Bytes(), nil
		}
		if readErr != nil {
			return nil, zerr.With(zerr.Wrap(readErr, domain.ErrFileOpenFailed.Error()), "path", path)
		}
	}
}
