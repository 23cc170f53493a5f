// Package entities defines core domain models and data structures.
package entities

// DownloadedArtifact is a file fetched to local storage for hashing.
// The pipeline stage that receives it owns the file and must delete it.
type DownloadedArtifact struct {
	Path         string
	Size         int64
	DeclaredSize int64 // Content-Length from the response, -1 when absent
}
