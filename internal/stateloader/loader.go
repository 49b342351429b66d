// Package stateloader reads selection state documents from disk, an fs.FS or
// an HTTP endpoint.
package stateloader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/goliatone/go-taskform/pkg/selection"
)

// SourceKind tells the loader where a document lives.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source identifies one state document.
type Source struct {
	Kind     SourceKind
	Location string
	// Format forces the decoder; inferred from the location when empty.
	Format string
}

// SourceFor guesses the kind of location: http(s) URLs are fetched, anything
// else is read from disk.
func SourceFor(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return Source{Kind: SourceKindURL, Location: location}
	}
	return Source{Kind: SourceKindFile, Location: location}
}

// Options configures a Loader.
type Options struct {
	FileSystem     fs.FS
	HTTPClient     *http.Client
	AllowHTTP      bool
	RequestTimeout time.Duration
}

// Loader resolves sources into selection states.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// New constructs a Loader from options.
func New(options Options) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTP:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches src and decodes it on top of the default selections.
func (l *Loader) Load(ctx context.Context, src Source) (selection.State, error) {
	var (
		data []byte
		err  error
	)

	switch src.Kind {
	case SourceKindFile:
		data, err = loadFile(ctx, src.Location)
	case SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location)
	case SourceKindURL:
		if !l.allowHTTP {
			return selection.State{}, errors.New("stateloader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location, l.timeout)
	default:
		err = fmt.Errorf("stateloader: unsupported source kind %q", src.Kind)
	}
	if err != nil {
		return selection.State{}, err
	}

	return selection.Parse(data, formatOf(src))
}

// formatOf falls back to YAML, which also accepts JSON documents.
func formatOf(src Source) string {
	if src.Format != "" {
		return src.Format
	}
	location := src.Location
	if idx := strings.IndexAny(location, "?#"); idx >= 0 {
		location = location[:idx]
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}
