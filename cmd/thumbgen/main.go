package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"thumbgen/pkg/export"
	"thumbgen/pkg/fonts"
	"thumbgen/pkg/mixer"
	"thumbgen/pkg/params"
	"thumbgen/pkg/session"
	"thumbgen/pkg/source"
	"thumbgen/pkg/surface"
	"thumbgen/pkg/surface/remote"
	"thumbgen/pkg/vfs"
)

var imagePath = flag.String("image", "", "background image file")
var imageURL = flag.String("url", "", "background image url")
var outDir = flag.String("out", ".", "output directory")
var fontDir = flag.String("fonts", "", "directory with font files named after the font")
var preview = flag.String("preview", "", "remote preview server addr")
var previewWidth = flag.Int("preview-width", 640, "max width of remote previews")
var progress = flag.Bool("progress", true, "show download progress")
var timeout = flag.Duration("timeout", time.Minute, "download timeout")
var debug = flag.Bool("debug", false, "set debug")
var whKey = flag.String("wh-key", "", "wallhaven api key")
var whQuery = flag.String("wh-query", "", "wallhaven query string, picks a random background when set")
var whCategory = flag.String("wh-category", "", "wallhaven category names")
var whPurity = flag.String("wh-purity", "", "wallhaven purity levels")
var whRatio = flag.String("wh-ratio", "16x9", "wallhaven ratio filter")
var whThumb = flag.Bool("wh-thumb", false, "use wallhaven thumbnails instead of full images")

func main() {
	p := params.Default()
	params.Bind(flag.CommandLine, &p)
	flag.Parse()
	p.Clamp()

	logger, _ := zap.NewDevelopment()
	if !*debug {
		logger = logger.WithOptions(zap.IncreaseLevel(zap.InfoLevel))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	bs, err := loadSource(ctx, logger)
	if err != nil {
		log.Fatal(err)
	}

	fontFs := fontsDir(*fontDir, logger)
	comp := mixer.New(
		mixer.WithFonts(fonts.NewRegistry(fontFs, logger)),
		mixer.WithLogger(logger),
	)

	opts := []session.Option{session.WithParams(p)}
	if *debug {
		opts = append(opts, session.WithSurface(surface.Log(logger)))
	}
	if *preview != "" {
		client, err := remote.New(*preview, *previewWidth)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()
		opts = append(opts, session.WithSurface(client))
	}

	s := session.New(comp, logger, opts...)
	if err := <-s.Load(bs); err != nil {
		log.Fatal(err)
	}

	out, err := vfs.Dir(*outDir, true)
	if err != nil {
		log.Fatal(err)
	}

	name, err := export.New(out, logger).Save(s)
	if err != nil {
		log.Fatal(err)
	}

	logger.With(zap.String("dir", *outDir), zap.String("file", name)).Info("done")
	_ = logger.Sync()
}

func loadSource(ctx context.Context, logger *zap.Logger) ([]byte, error) {
	dl := source.NewDownloader(logger, *progress)

	switch {
	case *imagePath != "":
		return source.ReadFile(afero.NewOsFs(), *imagePath)
	case *imageURL != "":
		return dl.Get(ctx, *imageURL)
	case *whQuery != "" || *whCategory != "":
		return source.NewWallhaven(*whKey, dl, logger).Random(ctx, source.WallhavenQuery{
			Query:    *whQuery,
			Category: *whCategory,
			Purity:   *whPurity,
			Ratio:    *whRatio,
			Thumb:    *whThumb,
		})
	}

	flag.Usage()
	os.Exit(2)
	return nil, nil
}

func fontsDir(dir string, logger *zap.Logger) afero.Fs {
	if dir == "" {
		return nil
	}
	fs, err := vfs.Dir(dir, false)
	if err != nil {
		logger.With(zap.String("dir", dir), zap.Error(err)).Info("font dir unavailable, using bundled fonts")
		return nil
	}
	return fs
}
