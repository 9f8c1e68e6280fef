package handlers

import (
	"context"
	"time"

	"ffmpeg-gui/internal/configstore"
	"ffmpeg-gui/internal/status"
)

// Handlers serves the read-only status API of guictl serve.
type Handlers struct {
	store        *configstore.Store
	templatePath string
	boots        status.BootLister
	startTime    time.Time
}

// New creates the handlers. boots may be nil when the journal is disabled.
func New(store *configstore.Store, templatePath string, boots status.BootLister) *Handlers {
	return &Handlers{
		store:        store,
		templatePath: templatePath,
		boots:        boots,
		startTime:    time.Now(),
	}
}

func (h *Handlers) collect(ctx context.Context, bootLimit int) (*status.Report, error) {
	return status.Collect(ctx, status.Source{
		Store:        h.store,
		TemplatePath: h.templatePath,
		Boots:        h.boots,
		BootLimit:    bootLimit,
	})
}
