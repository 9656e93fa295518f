package db

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// sqliteHeader opens every SQLite database file.
const sqliteHeader = "SQLite format 3\x00"

var errNotSQLite = errors.New("seed is not a SQLite database")

// EnsureSeed downloads a starter database file to path when none exists.
// It never blocks longer than the client's timeout. A failed download, or a
// body that is not a SQLite file, leaves path absent so that Migrate creates
// an empty store.
func EnsureSeed(ctx context.Context, client *http.Client, url, path string, logger *zap.Logger) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	if url == "" {
		logger.Info("no seed database configured, starting empty", zap.String("path", path))
		return nil
	}
	if err := fetchSeed(ctx, client, url, path); err != nil {
		logger.Warn("seed database download failed, starting empty",
			zap.String("url", url),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil
	}
	logger.Info("seed database downloaded", zap.String("url", url), zap.String("path", path))
	return nil
}

func fetchSeed(ctx context.Context, client *http.Client, url, path string) error {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	header := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(resp.Body, header); err != nil {
		return fmt.Errorf("read seed header: %w", err)
	}
	if !bytes.Equal(header, []byte(sqliteHeader)) {
		return errNotSQLite
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".download-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, io.MultiReader(bytes.NewReader(header), resp.Body)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("move seed database into place: %w", err)
	}
	return nil
}
