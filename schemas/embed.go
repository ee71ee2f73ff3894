// Package schemas bundles the JSON Schemas for the documents the builder accepts.
package schemas

import (
	"embed"
	"io/fs"
)

// Schema file names
const (
	ResumeData   = "resume_data.schema.json"
	Visibility   = "visibility.schema.json"
	ResumeRecord = "resume_record.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// FS returns the bundled schema files.
func FS() fs.FS {
	return files
}
