// Package apiclient wraps the authgate REST endpoints used by front-end code.
//
// Each wrapper captures the API base URI from [settings.Settings] when it is
// constructed and issues exactly one HTTP request per call to
// {base}api/..., with the base used verbatim. Responses are
// returned unmodified, including non-2xx ones; the caller owns the body.
// Nothing is retried, cached or translated, and cancellation is whatever the
// caller's context carries.
//
//	tokens := apiclient.NewTokensManager(cfg,
//		apiclient.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: jwt})),
//	)
//	resp, err := tokens.GetRefreshTokens(ctx)
//	if err != nil {
//		return err
//	}
//	defer resp.Body.Close()
package apiclient
