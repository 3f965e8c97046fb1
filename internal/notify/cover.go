package notify

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
)

const maxCoverSize = 4 << 20

// CoverCache downloads track artwork to the user cache directory so it can
// be used as a notification icon. Files are keyed by URL and reused.
type CoverCache struct {
	dir    string
	client *http.Client

	mu    sync.Mutex
	paths map[string]string
}

// NewCoverCache creates a cache under dir. An empty dir selects
// $XDG_CACHE_HOME/wavestream/covers.
func NewCoverCache(dir string, client *http.Client) (*CoverCache, error) {
	if dir == "" {
		probe, err := xdg.CacheFile(filepath.Join("wavestream", "covers", ".keep"))
		if err != nil {
			return nil, fmt.Errorf("cover cache dir: %w", err)
		}
		dir = filepath.Dir(probe)
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cover cache dir: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &CoverCache{dir: dir, client: client, paths: make(map[string]string)}, nil
}

// Path returns a local file holding the image at url, downloading it on
// first use. An empty url yields "".
func (c *CoverCache) Path(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", nil
	}

	c.mu.Lock()
	if p, ok := c.paths[url]; ok {
		c.mu.Unlock()
		return p, nil
	}
	c.mu.Unlock()

	path := filepath.Join(c.dir, coverName(url))
	if _, err := os.Stat(path); err == nil {
		c.remember(url, path)
		return path, nil
	}

	if err := c.download(ctx, url, path); err != nil {
		return "", err
	}
	c.remember(url, path)
	return path, nil
}

func (c *CoverCache) remember(url, path string) {
	c.mu.Lock()
	c.paths[url] = path
	c.mu.Unlock()
}

func (c *CoverCache) download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create cover request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch cover: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch cover: status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(c.dir, "cover-*.tmp")
	if err != nil {
		return fmt.Errorf("create cover file: %w", err)
	}
	n, err := io.Copy(tmp, io.LimitReader(resp.Body, maxCoverSize+1))
	closeErr := tmp.Close()
	if err == nil && n > maxCoverSize {
		err = errors.New("cover too large")
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write cover: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write cover: %w", err)
	}
	return nil
}

func coverName(url string) string {
	h := fnv.New64a()
	h.Write([]byte(url))
	return fmt.Sprintf("%x.img", h.Sum64())
}
