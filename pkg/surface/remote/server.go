package remote

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"net/rpc"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Serve exposes svc over net/rpc on srv and serves its latest frame at
// /preview.png. The server follows the fx lifecycle.
func Serve(svc *Service, srv *http.Server, logger *zap.Logger, lifecycle fx.Lifecycle) error {
	handler, err := Handler(svc)
	if err != nil {
		return err
	}
	srv.Handler = handler

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != http.ErrServerClosed {
					logger.With(zap.Error(err)).Fatal("preview server failed")
				}
			}()
			logger.With(zap.String("addr", srv.Addr)).Info("preview server started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return nil
}

// Handler routes rpc calls, preview downloads and frame info to svc.
func Handler(svc *Service) (http.Handler, error) {
	rs := rpc.NewServer()
	if err := rs.Register(svc); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.Handle(http.MethodConnect, rpc.DefaultRPCPath, gin.WrapH(rs))
	r.GET("/preview.png", svc.serveFrame)
	r.GET("/info", svc.serveInfo)
	return r, nil
}

func NewService(logger *zap.Logger) *Service {
	return &Service{log: logger}
}

// Service keeps the most recent frame painted by remote clients.
type Service struct {
	mu     sync.RWMutex
	log    *zap.Logger
	frame  []byte
	frames int
	width  int
	height int
}

func (s *Service) Paint(req *PaintRequest, _ *EmptyResponse) error {
	cfg, err := png.DecodeConfig(bytes.NewReader(req.Image))
	if err != nil {
		return errors.Wrap(err, "invalid frame")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.frame = req.Image
	s.frames++
	s.width, s.height = cfg.Width, cfg.Height

	s.log.With(
		zap.Int("frame", s.frames),
		zap.Int("w", cfg.Width),
		zap.Int("h", cfg.Height),
	).Debug("painted")
	return nil
}

func (s *Service) Info(_ struct{}, resp *InfoResponse) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp.Frames = s.frames
	resp.Width = s.width
	resp.Height = s.height
	return nil
}

func (s *Service) serveFrame(c *gin.Context) {
	s.mu.RLock()
	frame := s.frame
	s.mu.RUnlock()

	if frame == nil {
		c.String(http.StatusNotFound, "no frame painted yet")
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", frame)
}

func (s *Service) serveInfo(c *gin.Context) {
	var info InfoResponse
	_ = s.Info(struct{}{}, &info)
	c.JSON(http.StatusOK, info)
}
