package main

import (
	"net/http"

	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"thumbgen/pkg/surface/remote"
)

var listen = flag.String("listen", ":9123", "listen addr")

func main() {
	flag.Parse()

	fx.New(
		fx.Provide(
			func() (*zap.Logger, *http.Server, error) {
				logger, err := zap.NewDevelopment()
				return logger, &http.Server{Addr: *listen}, err
			},
			remote.NewService,
		),
		fx.Invoke(
			remote.Serve,
		),
	).Run()
}
