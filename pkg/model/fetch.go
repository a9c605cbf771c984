package model

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/resilientlabs/credit-scoring-api/pkg/utils"
	"go.uber.org/zap"
)

// Fetcher retrieves missing artifacts from a configured remote base URL.
// Each file is fetched with a single attempt; a failure leaves the local
// directory unchanged and the caller decides whether to proceed.
type Fetcher struct {
	logger  *zap.Logger
	client  *http.Client
	baseURL string
}

func NewFetcher(logger *zap.Logger, baseURL string, timeout time.Duration) *Fetcher {
	client := utils.NewHTTPClient(
		utils.WithClientTimeout(timeout),
		utils.WithResponseHeaderTimeout(10*time.Second),
	)
	return &Fetcher{
		logger:  logger,
		client:  client,
		baseURL: strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
	}
}

// remoteFile describes one entry of the optional manifest.json published
// alongside the artifacts.
type remoteFile struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
	Size   int64  `json:"size"`
}

type remoteManifest struct {
	Files []remoteFile `json:"files"`
}

// Ensure downloads each named artifact that is missing from dir. Files
// already on disk are left untouched. When the remote publishes a
// manifest.json its checksums are enforced on the downloads.
func (f *Fetcher) Ensure(ctx context.Context, dir string, names ...string) error {
	if f.baseURL == "" {
		return nil
	}

	var missing []string
	for _, name := range names {
		if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	sums := f.fetchChecksums(ctx)
	for _, name := range missing {
		if err := f.download(ctx, dir, name, sums[name]); err != nil {
			return err
		}
	}
	return nil
}

// fetchChecksums loads the optional remote manifest. Absence is fine;
// downloads then proceed unverified.
func (f *Fetcher) fetchChecksums(ctx context.Context) map[string]remoteFile {
	data, err := f.get(ctx, "manifest.json")
	if err != nil {
		f.logger.Info("no artifact manifest published, skipping checksum verification", zap.Error(err))
		return nil
	}

	var manifest remoteManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		f.logger.Warn("artifact manifest unreadable, skipping checksum verification", zap.Error(err))
		return nil
	}

	sums := make(map[string]remoteFile, len(manifest.Files))
	for _, rf := range manifest.Files {
		sums[rf.Path] = rf
	}
	return sums
}

func (f *Fetcher) get(ctx context.Context, name string) ([]byte, error) {
	remote := f.baseURL + "/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remote, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", name, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", remote, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("download %s status: %s: %s", remote, resp.Status, strings.TrimSpace(string(errBody)))
	}
	return io.ReadAll(resp.Body)
}

// download streams one artifact to a temp file, verifies it against the
// remote manifest entry when one exists, and renames it into place so a
// partial download never becomes the active artifact.
func (f *Fetcher) download(ctx context.Context, dir, name string, want remoteFile) error {
	remote := f.baseURL + "/" + url.PathEscape(name)
	f.logger.Info("fetching artifact", zap.String("file", name), zap.String("url", remote))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remote, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", name, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", remote, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("download %s status: %s: %s", remote, resp.Status, strings.TrimSpace(string(errBody)))
	}

	tmp, err := os.CreateTemp(dir, name+".download-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", name, err)
	}
	tmpPath := tmp.Name()

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), resp.Body)
	if err == nil {
		err = tmp.Sync()
	}
	closeErr := tmp.Close()
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if closeErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", name, closeErr)
	}

	if want.Size > 0 && n != want.Size {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("size mismatch for %s: expected %d, got %d", name, want.Size, n)
	}
	if want.SHA256 != "" {
		sum := hex.EncodeToString(h.Sum(nil))
		if !strings.EqualFold(sum, want.SHA256) {
			_ = os.Remove(tmpPath)
			return fmt.Errorf("sha256 mismatch for %s: expected %s, got %s", name, want.SHA256, sum)
		}
	}

	if err := os.Rename(tmpPath, filepath.Join(dir, name)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("activate %s: %w", name, err)
	}
	f.logger.Info("artifact fetched", zap.String("file", name), zap.Int64("bytes", n))
	return nil
}
