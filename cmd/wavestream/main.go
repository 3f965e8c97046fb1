// Command wavestream is a terminal client for a music-discovery backend:
// browse trending tracks, search, like songs and keep listening where you
// left off.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/csmith/envflag/v2"
	"github.com/csmith/slogflags"

	"github.com/llehouerou/wavestream/internal/config"
	"github.com/llehouerou/wavestream/internal/remote"
	"github.com/llehouerou/wavestream/internal/state"
)

var (
	configPath = flag.String("config", "", "Config file to read instead of the default locations")
	token      = flag.String("token", "", "Session token; overrides the config file and the saved token")
	dbPath     = flag.String("db", "", "State database path; overrides the config file")
)

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags] [command]\n\n", os.Args[0])
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  (none)             start the player")
	fmt.Fprintln(out, "  play <id>...       start the player with the given tracks queued")
	fmt.Fprintln(out, "  login <token>      save a session token")
	fmt.Fprintln(out, "  logout             forget the saved session token")
	fmt.Fprintln(out, "  playlists          list your playlists")
	fmt.Fprintln(out, "  lastfm link        connect a Last.fm account for scrobbling")
	fmt.Fprintln(out, "  lastfm unlink      disconnect the Last.fm account")
	fmt.Fprintln(out, "\nFlags:")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	envflag.Parse()
	log := slogflags.Logger(slogflags.WithSetDefault(true))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		log.Error("Wavestream failed", "error", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

func run(ctx context.Context, log *slog.Logger, args []string) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	path := cfg.State.DBPath
	if *dbPath != "" {
		path = *dbPath
	}
	store, err := state.Open(path)
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer store.Close()
	store.SetDefaultVolume(cfg.GetVolume())

	cmd, rest := "", []string(nil)
	if len(args) > 0 {
		cmd, rest = args[0], args[1:]
	}

	switch cmd {
	case "":
		return runPlayer(ctx, log, cfg, store, nil)
	case "play":
		if len(rest) == 0 {
			return errUsage
		}
		return runPlayer(ctx, log, cfg, store, rest)
	case "login":
		if len(rest) != 1 {
			return errUsage
		}
		if err := store.SaveToken(rest[0]); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		fmt.Println("Session token saved.")
		return nil
	case "logout":
		if err := store.DeleteToken(); err != nil {
			return fmt.Errorf("delete token: %w", err)
		}
		fmt.Println("Session token removed.")
		return nil
	case "playlists":
		return listPlaylists(ctx, newRemote(cfg, store, log))
	case "lastfm":
		if len(rest) != 1 {
			return errUsage
		}
		switch rest[0] {
		case "link":
			return linkLastfm(ctx, cfg, store)
		case "unlink":
			return unlinkLastfm(store)
		}
		return errUsage
	default:
		return errUsage
	}
}

// newRemote builds the backend client. The token comes from the -token
// flag, then the config file, then the one saved with "login".
func newRemote(cfg *config.Config, store *state.Manager, log *slog.Logger) *remote.Client {
	var tokens remote.TokenSource = store
	switch {
	case *token != "":
		tokens = remote.StaticToken(*token)
	case cfg.HasToken():
		tokens = remote.StaticToken(cfg.Auth.Token)
	}
	return remote.New(remote.Options{
		CatalogURL: cfg.API.CatalogURL,
		SessionURL: cfg.API.SessionURL,
		Tokens:     tokens,
		Timeout:    cfg.GetAPITimeout(),
		MaxRetries: cfg.GetAPIRetries(),
		Logger:     log,
	})
}
