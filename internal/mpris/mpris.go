//go:build linux

package mpris

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/wavestream/internal/playback"
)

// Adapter connects a playback.Service to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
	cancel context.CancelFunc
}

// New creates and starts a new MPRIS adapter. Commands that start playback
// run in the background under ctx.
func New(ctx context.Context, service playback.Service, log *slog.Logger) (*Adapter, error) {
	if log == nil {
		log = slog.Default()
	}
	ctx, cancel := context.WithCancel(ctx)
	a := &Adapter{cancel: cancel}

	rootAdapter := &rootAdapter{}
	playerAdapter := &playerAdapter{ctx: ctx, service: service, log: log}

	a.server = server.NewServer("wavestream", rootAdapter, playerAdapter)

	// Start the server in background
	go func() {
		if err := a.server.Listen(); err != nil {
			log.Debug("MPRIS server stopped", "error", err)
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	a.cancel()
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Wavestream", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/mp3"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and optional interfaces.
type playerAdapter struct {
	ctx     context.Context
	service playback.Service
	log     *slog.Logger
}

// dispatch runs a blocking command off the D-Bus goroutine. Failures are
// already reported to the user by the controller.
func (p *playerAdapter) dispatch(name string, fn func(context.Context) error) {
	go func() {
		err := fn(p.ctx)
		if err != nil && !errors.Is(err, playback.ErrSuperseded) {
			p.log.Debug("MPRIS command failed", "command", name, "error", err)
		}
	}()
}

func (p *playerAdapter) Next() error {
	p.dispatch("next", p.service.Next)
	return nil
}

func (p *playerAdapter) Previous() error {
	p.dispatch("previous", p.service.Previous)
	return nil
}

func (p *playerAdapter) Pause() error {
	p.service.Pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.dispatch("playpause", p.service.Toggle)
	return nil
}

func (p *playerAdapter) Stop() error {
	p.service.Pause()
	return nil
}

func (p *playerAdapter) Play() error {
	p.dispatch("play", p.service.Resume)
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	snap := p.service.Snapshot()
	p.service.SeekTo(snap.Position + time.Duration(offset)*time.Microsecond)
	return nil
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	snap := p.service.Snapshot()
	if snap.Track == nil || formatTrackID(snap.Track.ID) != trackID {
		return nil // stale request for another track
	}
	p.service.SeekTo(time.Duration(position) * time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.service.Snapshot().State {
	case playback.StatePlaying, playback.StateLoading:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateIdle, playback.StateErrored:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap := p.service.Snapshot()
	track := snap.Track
	if track == nil {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.ID)),
		Length:  types.Microseconds(snap.Duration.Microseconds()),
		Title:   track.Title,
		ArtUrl:  track.Artwork.Best(),
	}
	if artist := track.ArtistName(); artist != "" {
		meta.Artist = []string{artist}
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	snap := p.service.Snapshot()
	if snap.Muted {
		return 0, nil
	}
	return snap.Volume, nil
}

func (p *playerAdapter) SetVolume(level float64) error {
	p.service.SetVolume(level)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.service.Snapshot().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return len(p.service.Queue()) > 0, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return len(p.service.Queue()) > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.service.Snapshot().Track != nil, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.service.Snapshot().State.IsActive(), nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
