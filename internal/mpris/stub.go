//go:build !linux

package mpris

import (
	"context"
	"log/slog"

	"github.com/llehouerou/wavestream/internal/playback"
)

// Adapter does nothing outside Linux: there is no session bus to publish
// the player on.
type Adapter struct{}

func New(context.Context, playback.Service, *slog.Logger) (*Adapter, error) {
	return &Adapter{}, nil
}

func (*Adapter) Close() error { return nil }
