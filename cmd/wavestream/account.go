package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/wavestream/internal/config"
	"github.com/llehouerou/wavestream/internal/lastfm"
	"github.com/llehouerou/wavestream/internal/remote"
	"github.com/llehouerou/wavestream/internal/state"
)

const authTimeout = 5 * time.Minute

func listPlaylists(ctx context.Context, client *remote.Client) error {
	lists, err := client.Playlists(ctx)
	if errors.Is(err, remote.ErrAuthRequired) {
		return errors.New("not signed in; run \"wavestream login <token>\" first")
	}
	if err != nil {
		return fmt.Errorf("load playlists: %w", err)
	}
	if len(lists) == 0 {
		fmt.Println("No playlists.")
		return nil
	}
	for _, p := range lists {
		fmt.Printf("%s  %s (%s, updated %s)\n",
			p.ID, p.Name,
			humanize.Comma(int64(len(p.Tracks)))+" tracks",
			humanize.Time(p.UpdatedAt))
	}
	return nil
}

// linkLastfm runs the desktop authorization flow: the user approves the
// token in a browser, Last.fm redirects to the local callback, and the
// token is exchanged for a session key. Pressing Enter continues without
// waiting for the callback.
func linkLastfm(ctx context.Context, cfg *config.Config, store *state.Manager) error {
	if !cfg.HasLastfmConfig() {
		return errors.New("set lastfm.api_key and lastfm.api_secret in the config file first")
	}
	client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)

	server, err := lastfm.StartAuthServer(lastfm.CallbackAddr)
	if err != nil {
		return err
	}
	defer func() { _ = server.Close() }()

	token, err := client.GetToken()
	if err != nil {
		return fmt.Errorf("request token: %w", err)
	}
	authURL := client.GetAuthURL(token, server.URL())
	fmt.Println("Authorize Wavestream in your browser:")
	fmt.Println(" ", authURL)
	if err := lastfm.OpenBrowser(authURL); err != nil {
		fmt.Println("Could not open a browser; open the link above manually.")
	}
	fmt.Println("Press Enter once you have authorized.")

	entered := make(chan string, 1)
	go func() {
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
		entered <- token
	}()
	approved, err := lastfm.WaitForToken(ctx, mergeTokens(server.Tokens(), entered), authTimeout)
	if err != nil {
		return err
	}

	username, sessionKey, err := client.GetSession(approved)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if err := store.SaveLastfmSession(username, sessionKey); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Printf("Linked Last.fm account %s.\n", username)
	return nil
}

func mergeTokens(a, b <-chan string) <-chan string {
	out := make(chan string, 1)
	go func() {
		select {
		case t := <-a:
			out <- t
		case t := <-b:
			out <- t
		}
	}()
	return out
}

func unlinkLastfm(store *state.Manager) error {
	if err := store.DeleteLastfmSession(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	fmt.Println("Last.fm account unlinked.")
	return nil
}
