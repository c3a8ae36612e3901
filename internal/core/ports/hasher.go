package ports

// Hasher computes fast non-cryptographic content hashes used for change
// detection. Hashes are a local signal only and are never persisted
// across schema versions.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashFile hashes the content of the file at path.
	HashFile(path string) (uint64, error)
	// HashBytes hashes an in-memory buffer.
	HashBytes(data []byte) uint64
}
