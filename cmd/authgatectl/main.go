// Command authgatectl calls the authgate API with the client wrappers.
//
// Usage:
//
//	authgatectl [-settings file.yaml | -page index.html] [-token jwt] tokens
//	authgatectl ... revoke <token-id>
//	authgatectl ... me
//
// Without -settings or -page the client settings are read from the
// environment (API_SERVICE_BASE_URI, CLIENT_ID, ...).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/authgate/pkg/apiclient"
	"github.com/dmitrymomot/authgate/pkg/settings"
)

var errUsage = errors.New("usage: authgatectl [flags] tokens | revoke <token-id> | me")

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute parses args, runs one command and returns the exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	var (
		settingsPath string
		pagePath     string
		token        string
		timeout      time.Duration
	)
	fs := flag.NewFlagSet("authgatectl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&settingsPath, "settings", "", "YAML settings file")
	fs.StringVar(&pagePath, "page", "", "host page HTML to read settings from")
	fs.StringVar(&token, "token", os.Getenv("AUTHGATE_TOKEN"), "bearer token (default: AUTHGATE_TOKEN)")
	fs.DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := run(ctx, settingsPath, pagePath, token, fs.Args(), stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, settingsPath, pagePath, token string, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	boot, err := loadSettings(settingsPath, pagePath)
	if err != nil {
		return err
	}

	var opts []apiclient.Option
	if token != "" {
		opts = append(opts, apiclient.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})))
	}
	opts = append(opts, apiclient.WithUserAgent("authgatectl/"+boot.Settings.Version))

	var resp *http.Response
	switch args[0] {
	case "tokens":
		resp, err = apiclient.NewTokensManager(&boot.Settings, opts...).GetRefreshTokens(ctx)
	case "revoke":
		if len(args) != 2 {
			return errUsage
		}
		resp, err = apiclient.NewTokensManager(&boot.Settings, opts...).DeleteRefreshTokens(ctx, args[1])
	case "me":
		resp, err = apiclient.NewUsers(&boot.Settings, opts...).GetUserDetails(ctx)
	default:
		return errUsage
	}
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	fmt.Fprintln(out, resp.Status)
	if _, err := io.Copy(out, resp.Body); err != nil {
		return err
	}
	fmt.Fprintln(out)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("request failed: %s", resp.Status)
	}
	return nil
}

func loadSettings(settingsPath, pagePath string) (*settings.Bootstrap, error) {
	switch {
	case settingsPath != "":
		f, err := os.Open(filepath.Clean(settingsPath))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return settings.FromYAML(f)
	case pagePath != "":
		f, err := os.Open(filepath.Clean(pagePath))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return settings.FromHTML(f)
	default:
		return settings.FromEnv()
	}
}
