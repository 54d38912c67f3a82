// Package filehost provides a minimal file hosting core: a durable file
// metadata store, pluggable blob storage backends, and a service that
// orchestrates upload, listing, preview, download, and deletion.
//
// The package follows an interface-driven design. Repository persists
// FileRecord metadata (flat JSON file, in-memory, or PostgreSQL), BlobStore
// holds raw bytes (filesystem, in-memory, or S3), and Service combines the
// two with the preview strategy resolver in package preview.
//
// Basic usage:
//
//	repo, _ := jsonfile.New("data/files.json")
//	store, _ := fs.New(fs.Config{BaseDir: "uploads"})
//	svc, _ := filehost.New(
//		filehost.WithRepository(repo),
//		filehost.WithBlobStore(store),
//	)
package filehost
