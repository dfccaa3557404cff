// Copyright (c) 2026, Promstack Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package executor

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/promstack/provisioner/pkg/defaults"
)

// Downloader fetches release artifacts over HTTP with a rate cap so a
// crash-looping caller cannot hammer the release mirror.
type Downloader struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewDownloader creates a downloader with the default HTTP tuning.
func NewDownloader() *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: defaults.DownloadTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: defaults.HTTPConnectTimeout,
				}).DialContext,
				TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
				ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
			},
		},
		limiter: rate.NewLimiter(rate.Every(time.Minute/defaults.DownloadRatePerMinute), 1),
	}
}

// Fetch downloads url to the dest file path.
func (d *Downloader) Fetch(ctx context.Context, url, dest string) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("download rate limit wait canceled: %w", err)
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("failed to close download body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d downloading %s", resp.StatusCode, url)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create download file: %w", err)
	}

	written, err := io.Copy(out, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write download to %s: %w", dest, err)
	}

	slog.Debug("artifact downloaded",
		"url", url,
		"bytes", written,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// extractTarGz unpacks a gzip-compressed tar archive into destDir. Entry
// paths are validated so an archive cannot write outside destDir.
func extractTarGz(archivePath, destDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close archive", "error", closeErr)
		}
	}()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer func() {
		if closeErr := gz.Close(); closeErr != nil {
			slog.Warn("failed to close gzip reader", "error", closeErr)
		}
	}()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read archive entry: %w", err)
		}

		target, err := safeJoin(destDir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, defaults.DirMode); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), defaults.DirMode); err != nil {
				return fmt.Errorf("failed to create parent of %s: %w", target, err)
			}
			if err := writeArchiveFile(target, tr, hdr.FileInfo().Mode()); err != nil {
				return err
			}
		default:
			slog.Debug("skipping archive entry", "name", hdr.Name, "type", hdr.Typeflag)
		}
	}
}

// safeJoin joins name under destDir, rejecting absolute paths and traversal.
func safeJoin(destDir, name string) (string, error) {
	cleaned := filepath.Clean(name)
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("archive entry escapes destination: %q", name)
	}
	return filepath.Join(destDir, cleaned), nil
}

func writeArchiveFile(target string, r io.Reader, mode os.FileMode) error {
	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}

	_, err = io.Copy(out, r)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}
