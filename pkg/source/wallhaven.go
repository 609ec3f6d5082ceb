package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/moolex/wallhaven-go/api"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type WallhavenQuery struct {
	Query    string
	Category string
	Purity   string
	Ratio    string
	Thumb    bool
}

func NewWallhaven(key string, dl *Downloader, logger *zap.Logger) *Wallhaven {
	wh := api.New(key)
	wh.SetLogger(logger)
	return &Wallhaven{api: wh, dl: dl, log: logger.With(zap.String("via", "wallhaven"))}
}

// Wallhaven picks random wallpapers from wallhaven.cc as backgrounds.
type Wallhaven struct {
	api *api.API
	dl  *Downloader
	log *zap.Logger
}

// Random returns the file content of a random wallpaper matching wq.
func (w *Wallhaven) Random(ctx context.Context, wq WallhavenQuery) ([]byte, error) {
	q := api.NewQuery(wq.Query)
	if wq.Category != "" {
		q.SetCategory(strings.Split(wq.Category, ",")...)
	}
	if wq.Purity != "" {
		q.SetPurity(strings.Split(wq.Purity, ",")...)
	}
	if wq.Ratio != "" {
		q.SetRatio(wq.Ratio)
	}
	q.Random()

	ret, err := w.api.Query(q)
	if err != nil {
		return nil, fmt.Errorf("query wallpapers failed: %w", err)
	}

	wp, err := ret.Pick(api.PickRand)
	if err != nil {
		return nil, fmt.Errorf("pick wallpaper failed: %w", err)
	}

	w.log.With(
		zap.String("id", wp.Id),
		zap.String("url", wp.Url),
		zap.String("resolution", wp.Resolution),
	).Info("picked")

	return w.dl.Get(ctx, lo.Ternary(wq.Thumb, wp.Thumbs.Original, wp.Path))
}
