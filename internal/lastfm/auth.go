package lastfm

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"
)

// CallbackAddr is where the browser lands after the user approves the
// token. Last.fm appends ?token= to the cb URL.
const CallbackAddr = "127.0.0.1:9847"

// ErrAuthTimeout is returned by WaitForToken when nobody approved in time.
var ErrAuthTimeout = errors.New("lastfm: authorization timed out")

var callbackPage = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html>
<head><title>Wavestream - Last.fm</title></head>
<body style="font-family: sans-serif; text-align: center; padding: 50px;">
{{if .}}<h1>Account linked</h1>
<p>You can close this tab and go back to the terminal.</p>
{{else}}<h1>Authorization failed</h1>
<p>Last.fm did not send a token. Run the link command again.</p>
{{end}}</body>
</html>
`))

// AuthServer receives the desktop-auth redirect on a local port.
type AuthServer struct {
	srv    *http.Server
	ln     net.Listener
	tokens chan string
	done   chan struct{}
}

// StartAuthServer listens on addr ("127.0.0.1:0" picks a free port) and
// serves the callback until Close.
func StartAuthServer(addr string) (*AuthServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen for Last.fm callback on %s: %w", addr, err)
	}

	s := &AuthServer{
		ln:     ln,
		tokens: make(chan string, 1),
		done:   make(chan struct{}),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /callback", s.callback)
	s.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		defer close(s.done)
		_ = s.srv.Serve(ln)
	}()
	return s, nil
}

func (s *AuthServer) callback(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if token == "" {
		w.WriteHeader(http.StatusBadRequest)
	}
	_ = callbackPage.Execute(w, token != "")

	if token == "" {
		return
	}
	// First token wins; reloads of the page are ignored.
	select {
	case s.tokens <- token:
	default:
	}
}

// URL is the callback URL to hand to Last.fm.
func (s *AuthServer) URL() string {
	return "http://" + s.ln.Addr().String() + "/callback"
}

// Tokens delivers the approved token once.
func (s *AuthServer) Tokens() <-chan string {
	return s.tokens
}

// Close stops the server and waits for it to exit.
func (s *AuthServer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := s.srv.Shutdown(ctx)
	<-s.done
	return err
}

// WaitForToken returns the first token from tokens.
func WaitForToken(ctx context.Context, tokens <-chan string, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case token := <-tokens:
		return token, nil
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
		return "", ErrAuthTimeout
	}
}

// OpenBrowser opens url with the desktop's default handler.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
