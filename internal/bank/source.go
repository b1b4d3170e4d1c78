package bank

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"classics-study/internal/config"
)

const (
	QuestionsDocument = "quiz-questions.json"
	TextsDocument     = "texts-detailed.json"
)

//go:embed content/*.json
var embedded embed.FS

// Source opens one of the static documents by name.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Describe identifies the source in logs.
	Describe() string
}

// FSSource reads documents from a file system.
type FSSource struct {
	fsys fs.FS
	desc string
}

// NewFSSource wraps fsys; desc is used in logs.
func NewFSSource(fsys fs.FS, desc string) *FSSource {
	return &FSSource{fsys: fsys, desc: desc}
}

// EmbeddedSource serves the content compiled into the binary.
func EmbeddedSource() *FSSource {
	sub, err := fs.Sub(embedded, "content")
	if err != nil {
		panic(fmt.Sprintf("bank: embedded content missing: %v", err))
	}
	return NewFSSource(sub, "embedded")
}

// DirSource reads documents from a directory on disk.
func DirSource(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir), "dir:"+dir)
}

func (s *FSSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.fsys.Open(name)
}

func (s *FSSource) Describe() string { return s.desc }

// PublicFS exposes only the texts document for static serving. The questions
// document carries correct answers and is never served raw.
func (s *FSSource) PublicFS() fs.FS { return publicFS{fsys: s.fsys} }

type publicFS struct {
	fsys fs.FS
}

func (p publicFS) Open(name string) (fs.File, error) {
	if name != TextsDocument {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return p.fsys.Open(name)
}

// HTTPSource fetches documents from a static host, the way the browser
// client fetched them.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource returns a source rooted at baseURL. A nil client gets a
// client with a 15 second timeout.
func NewHTTPSource(baseURL string, client *http.Client) (*HTTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid content base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid content base URL %q: scheme must be http or https", baseURL)
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPSource{base: u, client: client}, nil
}

func (s *HTTPSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	u := *s.base
	u.Path = path.Join("/", strings.TrimSuffix(u.Path, "/"), name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u.String(), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %d", u.String(), resp.StatusCode)
	}
	return resp.Body, nil
}

func (s *HTTPSource) Describe() string { return "http:" + s.base.String() }

// NewSource picks the document source named by the content config.
func NewSource(cfg config.ContentConfig) (Source, error) {
	switch cfg.Source {
	case "", "embedded":
		return EmbeddedSource(), nil
	case "dir":
		info, err := os.Stat(cfg.Location)
		if err != nil {
			return nil, fmt.Errorf("content directory %q: %w", cfg.Location, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("content directory %q is not a directory", cfg.Location)
		}
		return DirSource(cfg.Location), nil
	case "http":
		return NewHTTPSource(cfg.Location, &http.Client{Timeout: cfg.Timeout})
	default:
		return nil, fmt.Errorf("unsupported content source: %q", cfg.Source)
	}
}
