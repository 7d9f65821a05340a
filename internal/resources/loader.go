// Package resources retrieves named structured resources (catalog, grouping
// tables, language list, listener docs) from a directory or an HTTP origin.
package resources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no resource with the requested name exists.
var ErrNotFound = errors.New("resource not found")

// Loader loads the resource called name and decodes it into dst.
type Loader interface {
	Load(ctx context.Context, name string, dst any) error
}

// extensions lists the accepted file extensions in preference order.
var extensions = []string{".json", ".yaml", ".yml"}

// FSLoader finds resources anywhere below a root filesystem. A resource
// named "catalog" matches "catalog.json", "data/catalog.yaml" and so on; the
// shallowest match wins, then extension preference, then lexical order.
type FSLoader struct {
	FS fs.FS
}

// NewDirLoader returns an FSLoader rooted at dir.
func NewDirLoader(dir string) *FSLoader {
	return &FSLoader{FS: os.DirFS(dir)}
}

// Load implements Loader.
func (l *FSLoader) Load(ctx context.Context, name string, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := l.find(name)
	if err != nil {
		return err
	}
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return fmt.Errorf("reading %s: %w", p, err)
	}
	if err := decode(data, path.Ext(p), dst); err != nil {
		return fmt.Errorf("decoding %s: %w", p, err)
	}
	return nil
}

func (l *FSLoader) find(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "*?[{\\") {
		return "", fmt.Errorf("invalid resource name %q", name)
	}
	pattern := "**/" + name + ".{json,yaml,yml}"
	matches, err := doublestar.Glob(l.FS, pattern)
	if err != nil {
		return "", fmt.Errorf("searching for %s: %w", name, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	sort.Slice(matches, func(i, j int) bool {
		di, dj := strings.Count(matches[i], "/"), strings.Count(matches[j], "/")
		if di != dj {
			return di < dj
		}
		ei, ej := extRank(path.Ext(matches[i])), extRank(path.Ext(matches[j]))
		if ei != ej {
			return ei < ej
		}
		return matches[i] < matches[j]
	})
	return matches[0], nil
}

func extRank(ext string) int {
	for i, e := range extensions {
		if e == ext {
			return i
		}
	}
	return len(extensions)
}

// HTTPLoader fetches BaseURL + "/" + name + ".json".
type HTTPLoader struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPLoader returns an HTTPLoader with a default client.
func NewHTTPLoader(baseURL string) *HTTPLoader {
	return &HTTPLoader{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Load implements Loader.
func (l *HTTPLoader) Load(ctx context.Context, name string, dst any) error {
	url := l.BaseURL + "/" + name + ".json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: HTTP %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s: %w", url, err)
	}
	if err := decode(data, ".json", dst); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}

func decode(data []byte, ext string, dst any) error {
	switch ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, dst)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		return dec.Decode(dst)
	}
}
