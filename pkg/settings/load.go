package settings

import (
	"errors"
	"io"

	"github.com/caarlos0/env/v11"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

// FromEnv loads the bootstrap values from environment variables.
// Presence is checked by Validate so every source reports ErrMissingValue alike.
func FromEnv() (*Bootstrap, error) {
	var b Bootstrap
	if err := env.Parse(&b); err != nil {
		return nil, errors.Join(ErrParse, err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// FromYAML decodes the bootstrap values from a YAML document.
func FromYAML(r io.Reader) (*Bootstrap, error) {
	var b Bootstrap
	if err := yaml.NewDecoder(r).Decode(&b); err != nil {
		return nil, errors.Join(ErrParse, err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// FromHTML reads the bootstrap values from the value attributes of the host
// page elements whose id matches the Element* constants.
// A missing element fails the whole load.
func FromHTML(r io.Reader) (*Bootstrap, error) {
	values, err := scanElementValues(r)
	if err != nil {
		return nil, err
	}

	lookup := func(id string) string { return values[id] }
	b := Bootstrap{
		Settings: Settings{
			ChatBaseURI:       lookup(ElementChatBaseURI),
			APIServiceBaseURI: lookup(ElementAPIServiceBaseURI),
			ChatBasePath:      lookup(ElementChatBasePath),
			Version:           lookup(ElementVersion),
			ClientID:          lookup(ElementClientID),
		},
		BaseURI: lookup(ElementBaseURI),
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// scanElementValues collects id -> value for every element carrying both attributes.
func scanElementValues(r io.Reader) (map[string]string, error) {
	values := make(map[string]string)
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return values, nil
			}
			return nil, errors.Join(ErrParse, z.Err())
		case html.StartTagToken, html.SelfClosingTagToken:
			if _, hasAttr := z.TagName(); !hasAttr {
				continue
			}
			var id, value string
			var hasValue bool
			for {
				key, val, more := z.TagAttr()
				switch string(key) {
				case "id":
					id = string(val)
				case "value":
					value, hasValue = string(val), true
				}
				if !more {
					break
				}
			}
			if id != "" && hasValue {
				values[id] = value
			}
		}
	}
}
