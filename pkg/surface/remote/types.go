package remote

type EmptyResponse struct {
}

type PaintRequest struct {
	Image []byte
}

type InfoResponse struct {
	Frames int `json:"frames"`
	Width  int `json:"width"`
	Height int `json:"height"`
}
