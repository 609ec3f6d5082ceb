package main

import (
	"context"
	"log"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"thumbgen/pkg/bot"
	"thumbgen/pkg/fonts"
	"thumbgen/pkg/mixer"
	"thumbgen/pkg/session"
	"thumbgen/pkg/surface"
	"thumbgen/pkg/vfs"
)

var tgToken = flag.String("tg-token", "", "telegram bot token")
var fontDir = flag.String("fonts", "", "directory with font files named after the font")
var previewDir = flag.String("preview-dir", "", "write the latest render of every chat into this directory")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	if *tgToken == "" {
		log.Fatal("--tg-token is required")
	}

	fx.New(
		fx.Provide(
			newLogger,
			newFactory,
			func(factory bot.Factory, logger *zap.Logger) (*bot.Bot, error) {
				return bot.NewBot(*tgToken, factory, logger)
			},
		),
		fx.Invoke(
			run,
		),
	).Run()
}

func newLogger() (*zap.Logger, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	if !*debug {
		logger = logger.WithOptions(zap.IncreaseLevel(zap.InfoLevel))
	}
	return logger, nil
}

// newFactory gives every chat its own compositor, as font faces cannot be
// drawn from concurrently.
func newFactory(logger *zap.Logger) (bot.Factory, error) {
	var fontFs, previewFs afero.Fs
	if *fontDir != "" {
		fs, err := vfs.Dir(*fontDir, false)
		if err != nil {
			return nil, err
		}
		fontFs = fs
	}
	if *previewDir != "" {
		fs, err := vfs.Dir(*previewDir, true)
		if err != nil {
			return nil, err
		}
		previewFs = fs
	}

	return func(id string, l *zap.Logger) *session.Session {
		comp := mixer.New(
			mixer.WithFonts(fonts.NewRegistry(fontFs, l)),
			mixer.WithLogger(l),
		)

		var opts []session.Option
		if previewFs != nil {
			opts = append(opts, session.WithSurface(surface.File(previewFs, id+".png")))
		}
		return session.New(comp, l, opts...)
	}, nil
}

func run(b *bot.Bot, logger *zap.Logger, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			b.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("shutting down")
			b.Stop()
			_ = logger.Sync()
			return nil
		},
	})
}
