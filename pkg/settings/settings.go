// Package settings holds the client-facing configuration of an authgate
// deployment: where the API and chat services live, the app version and the
// OAuth client ID. Settings are loaded once at startup and then only read.
package settings

import (
	"fmt"
	"net/url"
	"strings"
)

// Element IDs of the host page inputs the values are read from.
const (
	ElementChatBaseURI       = "CHATBASEURI"
	ElementAPIServiceBaseURI = "APISERVICEBASEURI"
	ElementChatBasePath      = "CHATBASEPATH"
	ElementVersion           = "VERSION"
	ElementClientID          = "CLIENTID"
	ElementBaseURI           = "BASEURI"
)

// Settings is the application-wide client configuration.
type Settings struct {
	ChatBaseURI       string `env:"CHAT_BASE_URI"        yaml:"chatBaseUri"       json:"chatBaseUri"`
	APIServiceBaseURI string `env:"API_SERVICE_BASE_URI" yaml:"apiServiceBaseUri" json:"apiServiceBaseUri"`
	ChatBasePath      string `env:"CHAT_BASE_PATH"       yaml:"chatBasePath"      json:"chatBasePath"`
	Version           string `env:"APP_VERSION"          yaml:"version"           json:"version"`
	ClientID          string `env:"CLIENT_ID"            yaml:"clientId"          json:"clientId"`
}

// Bootstrap is everything a host page provides: the shared Settings plus the
// page's own base URI, which is scoped to the page and not part of Settings.
type Bootstrap struct {
	Settings Settings `yaml:",inline"`
	BaseURI  string   `env:"BASE_URI" yaml:"baseUri"`
}

// Validate reports the first missing or malformed value.
func (s Settings) Validate() error {
	fields := []struct {
		id, value string
		isURI     bool
	}{
		{ElementChatBaseURI, s.ChatBaseURI, true},
		{ElementAPIServiceBaseURI, s.APIServiceBaseURI, true},
		{ElementChatBasePath, s.ChatBasePath, false},
		{ElementVersion, s.Version, false},
		{ElementClientID, s.ClientID, false},
	}
	for _, f := range fields {
		if err := checkValue(f.id, f.value, f.isURI); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the settings and the page base URI.
func (b Bootstrap) Validate() error {
	if err := b.Settings.Validate(); err != nil {
		return err
	}
	return checkValue(ElementBaseURI, b.BaseURI, true)
}

func checkValue(id, value string, isURI bool) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", ErrMissingValue, id)
	}
	if !isURI {
		return nil
	}
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %s=%q", ErrInvalidURI, id, value)
	}
	return nil
}
