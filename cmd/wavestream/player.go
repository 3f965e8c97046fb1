package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavestream/internal/config"
	"github.com/llehouerou/wavestream/internal/lastfm"
	"github.com/llehouerou/wavestream/internal/mpris"
	"github.com/llehouerou/wavestream/internal/notify"
	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/player"
	"github.com/llehouerou/wavestream/internal/playlist"
	"github.com/llehouerou/wavestream/internal/state"
	"github.com/llehouerou/wavestream/internal/stderr"
	"github.com/llehouerou/wavestream/internal/tui"
)

// runPlayer starts the terminal UI. ids, when given, are catalog track ids
// to play right away; otherwise the last played track is restored paused.
func runPlayer(ctx context.Context, log *slog.Logger, cfg *config.Config, store *state.Manager, ids []string) error {
	client := newRemote(cfg, store, log)

	var tracks []playlist.Track
	for _, id := range ids {
		t, err := client.Track(ctx, id)
		if err != nil {
			return fmt.Errorf("load track %s: %w", id, err)
		}
		tracks = append(tracks, t)
	}

	// Must happen before the audio device is opened.
	capture, err := stderr.Start()
	if err != nil {
		log.Warn("Could not capture stderr", "error", err)
	}
	defer func() {
		if capture == nil {
			return
		}
		for _, line := range capture.Stop() {
			log.Debug("Captured stderr", "line", line)
		}
	}()

	engine := player.NewEngine(player.NewSpeaker(player.SpeakerOptions{
		TickInterval: cfg.GetTimeUpdateInterval(),
	}))
	svc := playback.New(playback.Options{
		Engine: engine,
		Remote: client,
		Resume: store,
		Volume: store,
		Logger: log,
	})
	defer svc.Close()

	if err := svc.Init(ctx); err != nil {
		log.Warn("Session restore incomplete", "error", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	startDesktop(ctx, &wg, log, cfg, svc)
	startScrobbler(ctx, &wg, log, cfg, store, svc)

	if len(tracks) > 0 {
		wg.Go(func() {
			// Failures reach the UI as notices.
			if err := svc.Play(ctx, tracks[0], tracks...); err != nil {
				log.Warn("Could not start playback", "error", err)
			}
		})
	}

	opts := tui.Options{Service: svc, Catalog: client, Logger: log}
	if capture != nil {
		opts.Stderr = capture.Lines()
	}
	p := tea.NewProgram(tui.New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		if capture != nil {
			capture.WriteOriginal(fmt.Sprintf("wavestream: %v\n", err))
		} else {
			fmt.Fprintf(os.Stderr, "wavestream: %v\n", err)
		}
		return err
	}
	return nil
}

// startDesktop wires notifications and the MPRIS server, when enabled.
func startDesktop(ctx context.Context, wg *sync.WaitGroup, log *slog.Logger, cfg *config.Config, svc playback.Service) {
	if cfg.NotificationsEnabled() {
		notifier, err := notify.New()
		if err != nil {
			log.Warn("Desktop notifications unavailable", "error", err)
		} else {
			covers, err := notify.NewCoverCache("", nil)
			if err != nil {
				log.Warn("Cover cache unavailable", "error", err)
			}
			w := notify.NewWatcher(notify.WatcherOptions{
				Notifier:   notifier,
				Covers:     covers,
				NowPlaying: true,
				Notices:    true,
				Logger:     log,
			})
			sub := svc.Subscribe()
			wg.Go(func() { w.Run(ctx, sub) })
		}
	}

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(ctx, svc, log)
		if err != nil {
			log.Warn("MPRIS unavailable", "error", err)
			return
		}
		wg.Go(func() {
			<-ctx.Done()
			_ = adapter.Close()
		})
	}
}

// startScrobbler reports plays to Last.fm once an account is linked.
func startScrobbler(
	ctx context.Context,
	wg *sync.WaitGroup,
	log *slog.Logger,
	cfg *config.Config,
	store *state.Manager,
	svc playback.Service,
) {
	if !cfg.HasLastfmConfig() {
		return
	}
	client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
	switch session, err := store.GetLastfmSession(); {
	case cfg.Lastfm.SessionKey != "":
		client.SetSessionKey(cfg.Lastfm.SessionKey)
	case err != nil:
		log.Warn("Could not load Last.fm session", "error", err)
	case session != nil:
		client.SetSessionKey(session.SessionKey)
	}
	if !client.IsAuthenticated() {
		log.Info("Last.fm configured but not linked; run \"wavestream lastfm link\"")
		return
	}

	s := lastfm.NewScrobbler(lastfm.ScrobblerOptions{API: client, Store: store, Logger: log})
	sub := svc.Subscribe()
	wg.Go(func() { s.Run(ctx, sub) })
}
