package auth

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// CallbackPath is where the loopback server receives the authorization code.
const CallbackPath = "/"

type callback struct {
	code string
	err  error
}

// LocalServerFlow returns an AuthorizeFunc for installed applications. It
// listens on a random loopback port, hands the consent URL to open and waits
// for the browser to be redirected back with an authorization code.
func LocalServerFlow(open func(authURL string) error) AuthorizeFunc {
	return func(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return nil, errors.Wrap(err, "starting loopback listener")
		}

		flowCfg := *cfg
		flowCfg.RedirectURL = "http://" + ln.Addr().String() + CallbackPath
		state := uuid.NewString()
		results := make(chan callback, 1)

		srv := serveCallback(ln, state, results)
		defer func() { _ = srv.Shutdown(context.Background()) }()

		authURL := flowCfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
		if err := open(authURL); err != nil {
			return nil, errors.Wrap(err, "opening consent page")
		}

		select {
		case res := <-results:
			if res.err != nil {
				return nil, res.err
			}
			tok, err := flowCfg.Exchange(ctx, res.code)
			if err != nil {
				return nil, errors.Wrap(err, "exchanging authorization code")
			}
			return tok, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// serveCallback serves the callback router on ln. A serve failure is
// delivered on results so the flow does not wait for ctx.
func serveCallback(ln net.Listener, state string, results chan<- callback) *http.Server {
	srv := &http.Server{Handler: callbackRouter(state, results)}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			deliver(results, callback{err: errors.Wrap(err, "serving loopback callback")})
		}
	}()
	return srv
}

func deliver(results chan<- callback, res callback) {
	select {
	case results <- res:
	default:
	}
}

func callbackRouter(state string, results chan<- callback) http.Handler {
	r := chi.NewRouter()
	r.Get(CallbackPath, func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		var res callback
		switch {
		case q.Get("state") != state:
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		case q.Get("error") != "":
			res.err = errors.Errorf("authorization denied: %s", q.Get("error"))
			http.Error(w, "authorization denied", http.StatusForbidden)
		case q.Get("code") == "":
			res.err = errors.New("authorization code missing from redirect")
			http.Error(w, "missing code", http.StatusBadRequest)
		default:
			res.code = q.Get("code")
			fmt.Fprintln(w, "Authentication complete. You may close this window.")
		}
		deliver(results, res)
	})
	return r
}

// PrintURL returns an opener that asks the user to visit the consent URL.
func PrintURL(w io.Writer) func(string) error {
	return func(authURL string) error {
		_, err := fmt.Fprintf(w, "Open this link in your browser to authorize access:\n\n%s\n\n", authURL)
		return err
	}
}
