package maintenance

type PathRequest struct {
	Path string `json:"path" binding:"required" validate:"required"`
}

type StorageInfo struct {
	Path string `json:"path" yaml:"path"`
}
