package schema

import (
	"path/filepath"
	"strings"
)

// Source identifies where a schema lives so loaders can operate on files,
// fs.FS entries, Go packages or OpenAPI documents without leaking details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile    SourceKind = "file"
	SourceKindFS      SourceKind = "fs"
	SourceKindPackage SourceKind = "package"
	SourceKindOpenAPI SourceKind = "openapi"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a Go file on disk.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a Go file inside the loader's fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type packageSource struct {
	pattern string
}

func (s packageSource) Location() string { return s.pattern }
func (s packageSource) Kind() SourceKind { return SourceKindPackage }

// SourceFromPackage returns a Source for a Go package pattern such as "." or
// "github.com/acme/app/model".
func SourceFromPackage(pattern string) Source {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		pattern = "."
	}
	return packageSource{pattern: pattern}
}

type openAPISource struct {
	path string
}

func (s openAPISource) Location() string { return s.path }
func (s openAPISource) Kind() SourceKind { return SourceKindOpenAPI }

// SourceFromOpenAPI returns a Source for an OpenAPI 3 document (JSON or YAML)
// whose components.schemas hold the record types.
func SourceFromOpenAPI(path string) Source {
	return openAPISource{path: filepath.Clean(path)}
}
