package remote

import (
	"bytes"
	"image"
	"image/png"
	"net/rpc"

	"github.com/disintegration/imaging"

	"thumbgen/pkg/surface"
)

// New connects to a preview server. Frames wider than width are scaled
// down before sending; width 0 sends them as rendered.
func New(addr string, width int) (*Client, error) {
	client, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &Client{rpc: client, width: width}, nil
}

var _ surface.Surface = (*Client)(nil)

type Client struct {
	rpc   *rpc.Client
	width int
}

func (c *Client) Paint(img image.Image) error {
	if c.width > 0 && img.Bounds().Dx() > c.width {
		img = imaging.Resize(img, c.width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	return c.rpc.Call("Service.Paint", &PaintRequest{Image: buf.Bytes()}, &EmptyResponse{})
}

func (c *Client) Info() (*InfoResponse, error) {
	var info InfoResponse
	if err := c.rpc.Call("Service.Info", struct{}{}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) Close() error {
	return c.rpc.Close()
}
