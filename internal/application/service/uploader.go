package service

import (
	"context"
	"io"
)

type ResourceType string

const (
	ResourceImage ResourceType = "image"
	ResourceVideo ResourceType = "video"
)

// Asset is a file stored in the remote media store.
type Asset struct {
	URL      string
	PublicID string
}

type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, resource ResourceType) (*Asset, error)
	Delete(ctx context.Context, publicID string, resource ResourceType) error
	// TransformedURL builds a delivery URL for an image asset with the given transformation.
	TransformedURL(publicID, transformation string) (string, error)
}
