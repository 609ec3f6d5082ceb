package source

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/go-resty/resty/v2"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

func NewDownloader(logger *zap.Logger, progress bool) *Downloader {
	return &Downloader{
		cli:      resty.New().SetDoNotParseResponse(true),
		log:      logger,
		progress: progress,
	}
}

type Downloader struct {
	cli      *resty.Client
	log      *zap.Logger
	progress bool
}

// Get fetches the body of url.
func (d *Downloader) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := d.cli.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	defer func() {
		_ = resp.RawBody().Close()
	}()

	if resp.IsError() {
		return nil, fmt.Errorf("download failed: %s", resp.Status())
	}

	var buf bytes.Buffer
	var w io.Writer = &buf
	if d.progress {
		bar := progressbar.DefaultBytes(resp.RawResponse.ContentLength, fmt.Sprintf("Downloading %s", url))
		w = io.MultiWriter(&buf, bar)
	}

	if _, err := io.Copy(w, resp.RawBody()); err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	d.log.With(zap.String("url", url), zap.Int("bytes", buf.Len())).Debug("downloaded")
	return buf.Bytes(), nil
}
