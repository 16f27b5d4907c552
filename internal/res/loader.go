// Package res loads the HTML and CSS resources a document references
// (external stylesheets, @import-free for now) from the local
// filesystem: the input file's own directory plus any configured
// search paths.
package res

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ResourceType represents the type of resource
type ResourceType int

const (
	// ResourceTypeUnknown is an unknown resource type
	ResourceTypeUnknown ResourceType = iota
	// ResourceTypeCSS is a CSS resource
	ResourceTypeCSS
	// ResourceTypeOther is any other resource
	ResourceTypeOther
)

// Resource represents a loaded resource
type Resource struct {
	URL      string
	Type     ResourceType
	Data     []byte
	MimeType string
}

// Loader handles loading resources from the local filesystem.
type Loader struct {
	// BaseDir anchors relative references (the directory containing the
	// document being converted).
	BaseDir string

	cache     map[string]*Resource
	cacheLock sync.RWMutex

	searchPaths []string
}

// NewLoader creates a new resource loader rooted at baseDir.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		BaseDir: baseDir,
		cache:   make(map[string]*Resource),
	}
}

// AddSearchPath adds a directory to search for local resources
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// Load loads a resource from a file path, relative to BaseDir unless
// already absolute.
func (l *Loader) Load(path string) (*Resource, error) {
	l.cacheLock.RLock()
	if res, ok := l.cache[path]; ok {
		l.cacheLock.RUnlock()
		return res, nil
	}
	l.cacheLock.RUnlock()

	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(l.BaseDir, resolved)
	}

	res, err := l.loadLocal(resolved)
	if err != nil {
		return nil, err
	}

	l.cacheLock.Lock()
	l.cache[path] = res
	l.cacheLock.Unlock()

	return res, nil
}

// loadLocal loads a resource from a local file, falling back to the
// configured search paths when it isn't found at path directly.
func (l *Loader) loadLocal(path string) (*Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l.loadFromSearchPaths(path)
		}
		return nil, err
	}

	res := &Resource{URL: path, Data: data}
	res.MimeType = determineMimeType(path)
	res.Type = determineResourceType(res.MimeType, path)
	return res, nil
}

// loadFromSearchPaths tries to load a resource from the search paths
func (l *Loader) loadFromSearchPaths(filename string) (*Resource, error) {
	baseFilename := filepath.Base(filename)

	for _, searchPath := range l.searchPaths {
		path := filepath.Join(searchPath, baseFilename)

		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		res := &Resource{URL: path, Data: data}
		res.MimeType = determineMimeType(path)
		res.Type = determineResourceType(res.MimeType, path)
		return res, nil
	}

	return nil, fmt.Errorf("resource not found: %s", filename)
}

// determineMimeType determines the MIME type of a file
func determineMimeType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".css":
		return "text/css"
	case ".html", ".htm":
		return "text/html"
	default:
		return "application/octet-stream"
	}
}

// determineResourceType determines the type of a resource
func determineResourceType(mimeType, path string) ResourceType {
	if mimeType == "text/css" {
		return ResourceTypeCSS
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".css" {
		return ResourceTypeCSS
	}

	return ResourceTypeOther
}

// LoadCSS loads a CSS resource
func (l *Loader) LoadCSS(path string) (*Resource, error) {
	res, err := l.Load(path)
	if err != nil {
		return nil, err
	}

	if res.Type != ResourceTypeCSS {
		return nil, fmt.Errorf("resource is not CSS: %s", path)
	}

	return res, nil
}

// LoadHTML loads an HTML resource
func (l *Loader) LoadHTML(path string) (*Resource, error) {
	return l.Load(path)
}

// GetReader returns a reader for a resource
func (r *Resource) GetReader() *bytes.Reader {
	return bytes.NewReader(r.Data)
}

// GetString returns the resource data as a string
func (r *Resource) GetString() string {
	return string(r.Data)
}
