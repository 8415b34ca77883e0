// SPDX-License-Identifier: AGPL-3.0-or-later

// Package presets loads named payment presets from a YAML file. A preset
// bundles a currency, a receiving address and badge styling, and expands to
// a badge URL plus embed snippets.
package presets

import (
	"fmt"
	"net/url"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/paybadge/paybadge/internal/domain"
	"github.com/paybadge/paybadge/internal/services/embedcode"
)

// Preset describes one configured payment target.
type Preset struct {
	Name       string `yaml:"name" json:"name"`
	Currency   string `yaml:"currency" json:"currency"`
	Address    string `yaml:"address" json:"address"`
	LeftText   string `yaml:"leftText" json:"leftText,omitempty"`
	RightText  string `yaml:"rightText" json:"rightText,omitempty"`
	LeftColor  string `yaml:"leftColor" json:"leftColor,omitempty"`
	RightColor string `yaml:"rightColor" json:"rightColor,omitempty"`
	Icon       string `yaml:"icon" json:"icon,omitempty"`
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// Service holds loaded presets keyed by name.
type Service struct {
	presets map[string]Preset
}

// Load reads and validates a preset file. A missing path yields an empty
// service rather than an error so deployments without presets stay zero-config.
func Load(path string) (*Service, error) {
	svc := &Service{presets: make(map[string]Preset)}
	if path == "" {
		return svc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return svc, nil
		}
		return nil, fmt.Errorf("read preset file: %w", err)
	}

	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse preset file: %w", err)
	}

	for _, p := range file.Presets {
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
		svc.presets[p.Name] = p
	}

	return svc, nil
}

func validate(p Preset) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidPreset)
	}
	if p.Address == "" {
		return fmt.Errorf("%w: address is required", domain.ErrInvalidPreset)
	}
	if _, err := domain.NewCurrencyCode(p.Currency); err != nil {
		return err
	}
	for _, c := range []string{p.LeftColor, p.RightColor} {
		if c != "" && !domain.IsHexColor(c) {
			return fmt.Errorf("%w: %q is not a hex color", domain.ErrInvalidPreset, c)
		}
	}
	return nil
}

// Get returns a preset by name.
func (s *Service) Get(name string) (Preset, error) {
	p, ok := s.presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", domain.ErrPresetNotFound, name)
	}
	return p, nil
}

// List returns all presets sorted by name.
func (s *Service) List() []Preset {
	out := make([]Preset, 0, len(s.presets))
	for _, p := range s.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// BadgeQuery expands a preset into badge query parameters. Zero-valued
// fields are omitted so pipeline defaults apply downstream.
func (p Preset) BadgeQuery() url.Values {
	q := url.Values{}
	for key, val := range map[string]string{
		"leftText":   p.LeftText,
		"rightText":  p.RightText,
		"leftColor":  p.LeftColor,
		"rightColor": p.RightColor,
		"icon":       p.Icon,
	} {
		if val != "" {
			q.Set(key, val)
		}
	}
	return q
}

// BadgeURL builds the badge image URL for this preset against a base URL.
func (p Preset) BadgeURL(baseURL string) string {
	u := baseURL + "/badge.svg"
	if q := p.BadgeQuery().Encode(); q != "" {
		u += "?" + q
	}
	return u
}

// Embed returns Markdown/HTML snippets for the preset badge, linking to the
// preset's section on the service landing page.
func (p Preset) Embed(baseURL string) embedcode.EmbedCode {
	alt := p.LeftText
	if alt == "" {
		alt = "donate"
	}
	return embedcode.For(p.BadgeURL(baseURL), baseURL+"/#"+url.PathEscape(p.Name), alt)
}
