// Package loader implements progressive unit loading: chunk partitioning,
// priority scoring and strategy-driven scheduling through the executor.
package loader

import (
	"os"

	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
)

const (
	// fallbackFileSize is assumed for paths that cannot be stat'd.
	fallbackFileSize = 1024
	// basePriority is the starting score for every chunk.
	basePriority = 1.0
	// priorityPatternBoost is added when any chunk member matches a
	// configured priority pattern.
	priorityPatternBoost = 2.0
	// smallChunkBoost is added to chunks below smallChunkThreshold, since
	// they finish faster and unblock dependents sooner.
	smallChunkBoost = 0.5
	// smallChunkThreshold is the byte size below which a chunk counts as
	// small.
	smallChunkThreshold = 32 * 1024
)

// Chunker partitions unit paths into priority-scored chunks.
type Chunker struct {
	chunkSize        int
	priorityPatterns []string
}

// NewChunker creates a Chunker. A non-positive chunkSize falls back to the
// default settings value.
func NewChunker(chunkSize int, priorityPatterns []string) *Chunker {
	if chunkSize <= 0 {
		chunkSize = domain.DefaultSettings().ChunkSize
	}
	return &Chunker{
		chunkSize:        chunkSize,
		priorityPatterns: priorityPatterns,
	}
}

// Partition splits paths into chunks of the configured size, preserving
// input order, and scores each chunk. Chunks are immutable once computed
// for a load pass.
func (c *Chunker) Partition(paths []string) []domain.Chunk {
	if len(paths) == 0 {
		return nil
	}

	chunks := make([]domain.Chunk, 0, (len(paths)+c.chunkSize-1)/c.chunkSize)
	for start := 0; start < len(paths); start += c.chunkSize {
		end := min(start+c.chunkSize, len(paths))
		members := make([]string, end-start)
		copy(members, paths[start:end])

		chunk := domain.Chunk{
			Index:         len(chunks),
			Paths:         members,
			EstimatedSize: estimateSize(members),
			ExternalDeps:  make(map[string]struct{}),
		}
		chunk.Priority = c.score(chunk)
		chunks = append(chunks, chunk)
	}
	return chunks
}

// score computes the chunk priority: boosted for priority-pattern matches
// and for small chunks that finish faster.
func (c *Chunker) score(chunk domain.Chunk) float64 {
	priority := basePriority
	for _, path := range chunk.Paths {
		if domain.MatchAny(path, c.priorityPatterns) {
			priority += priorityPatternBoost
			break
		}
	}
	if chunk.EstimatedSize < smallChunkThreshold {
		priority += smallChunkBoost
	}
	return priority
}

// matchesPriority reports whether any chunk member matches a priority
// pattern. Used by the lazy strategy to decide what loads now.
func (c *Chunker) matchesPriority(chunk domain.Chunk) bool {
	for _, path := range chunk.Paths {
		if domain.MatchAny(path, c.priorityPatterns) {
			return true
		}
	}
	return false
}

// estimateSize sums the stat sizes of members, assuming fallbackFileSize
// for unreadable paths.
func estimateSize(paths []string) int64 {
	var total int64
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			total += fallbackFileSize
			continue
		}
		total += info.Size()
	}
	return total
}
