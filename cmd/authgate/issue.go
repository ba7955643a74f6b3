package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"time"

	"github.com/dmitrymomot/authgate/pkg/db"
	"github.com/dmitrymomot/authgate/pkg/dbctx"
	"github.com/dmitrymomot/authgate/pkg/jwt"
	"github.com/dmitrymomot/authgate/pkg/security"
)

var errMissingUser = errors.New("issue: -user is required")

type issueRequest struct {
	UserID     string
	ClientID   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type issuedTokens struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresUtc   time.Time `json:"expiresUtc"`
}

// issueTokens stores a refresh token for an existing user and signs a
// matching access token.
func issueTokens(ctx context.Context, cmd security.Command, svc *jwt.Service, req issueRequest, now time.Time) (issuedTokens, error) {
	if req.UserID == "" {
		return issuedTokens{}, errMissingUser
	}
	if _, err := cmd.UserDetails(ctx, req.UserID); err != nil {
		return issuedTokens{}, err
	}

	saved, err := cmd.SaveRefreshToken(ctx, security.RefreshToken{
		Subject:   req.UserID,
		ClientID:  req.ClientID,
		IssuedAt:  now.UTC(),
		ExpiresAt: now.UTC().Add(req.RefreshTTL),
	})
	if err != nil {
		return issuedTokens{}, err
	}

	access, err := svc.Issue(req.UserID, req.ClientID, req.AccessTTL)
	if err != nil {
		return issuedTokens{}, err
	}
	return issuedTokens{
		AccessToken:  access,
		RefreshToken: saved.ID,
		ExpiresUtc:   saved.ExpiresAt,
	}, nil
}

// runIssue handles "authgate issue", used to seed tokens for operators and
// test clients without an authorization server.
func runIssue(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("issue", flag.ContinueOnError)
	var req issueRequest
	fs.StringVar(&req.UserID, "user", "", "user id")
	fs.StringVar(&req.ClientID, "client", "", "client id")
	fs.DurationVar(&req.AccessTTL, "access-ttl", 15*time.Minute, "access token lifetime")
	fs.DurationVar(&req.RefreshTTL, "refresh-ttl", 30*24*time.Hour, "refresh token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tokens, err := newJWT(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	registry := dbctx.NewRegistry[db.Querier]()
	if err := registry.RegisterInstance(dbctx.DefaultName, db.Querier(pool)); err != nil {
		return err
	}
	store := security.NewStore(dbctx.NewResolver(registry))

	issued, err := issueTokens(ctx, store, tokens, req, time.Now())
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(issued)
}
