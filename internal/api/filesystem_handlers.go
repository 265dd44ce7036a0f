package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/tagexport/internal/service"
)

func (s *Server) registerFilesystemRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "browseFilesystem",
		Method:      http.MethodGet,
		Path:        "/api/v1/filesystem",
		Summary:     "Browse filesystem directories",
		Description: "Returns the visible subdirectories of path, for choosing an output directory.",
		Tags:        []string{"Filesystem"},
	}, s.handleBrowseFilesystem)
}

// BrowseFilesystemInput contains parameters for browsing the filesystem.
type BrowseFilesystemInput struct {
	Path string `query:"path" doc:"Directory to list. Defaults to the last used directory, then the home directory."`
}

// BrowseFilesystemOutput wraps the listing for Huma.
type BrowseFilesystemOutput struct {
	Body service.Listing
}

func (s *Server) handleBrowseFilesystem(ctx context.Context, input *BrowseFilesystemInput) (*BrowseFilesystemOutput, error) {
	listing, err := s.library.Browse(ctx, input.Path)
	if err != nil {
		return nil, fromDomain(err)
	}
	return &BrowseFilesystemOutput{Body: *listing}, nil
}
