// Package config holds the YAML-backed settings for timelanes chart
// generation. The settings mirror what an embedding host's property pane
// would supply: layout mode, chart title, banner image and glyph background,
// plus canvas dimensions and the column role mapping used by the CSV loader.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout mode values. Any other value behaves as LayoutDefault.
const (
	LayoutHeader  = "header"
	LayoutFooter  = "footer"
	LayoutDefault = "default"
)

// Chart controls the drawing surface.
type Chart struct {
	Width     int    `yaml:"width"`      // total SVG width in pixels
	Height    int    `yaml:"height"`     // total SVG height in pixels
	MarginTop int    `yaml:"margin_top"` // top margin in pixels
	FontSize  int    `yaml:"font_size"`  // base font size for tick and label text
	Layout    string `yaml:"layout"`     // "header", "footer", or anything else for the bordered default
	Title     string `yaml:"title"`      // chart caption text
	ImgURL    string `yaml:"img_url"`    // banner image URL for header/footer layouts

	// CircleBackground selects the fill of the inner glyph ring:
	// "opaque" gives a solid white core, any other value leaves it
	// transparent.
	CircleBackground string `yaml:"circle_background"`
}

// Roles maps the semantic column roles onto CSV header names. Header
// matching is case-insensitive.
type Roles struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	StartDate   string `yaml:"start_date"`
	EndDate     string `yaml:"end_date"`
	CompanyLink string `yaml:"company_link"`
	HeaderImage string `yaml:"header_image"`
	FooterImage string `yaml:"footer_image"`
}

// Links controls hyperlink handling inside label boxes.
type Links struct {
	// BaseURL is the fixed base used to resolve relative paths found in
	// CompanyLink cells before they are handed to the host.
	BaseURL string `yaml:"base_url"`
}

// Serve controls the built-in HTTP host used by `timelanes serve`.
type Serve struct {
	Listen string `yaml:"listen"`
}

// Config is the complete configuration for chart generation.
type Config struct {
	Chart Chart `yaml:"chart"`
	Roles Roles `yaml:"roles"`
	Links Links `yaml:"links"`
	Serve Serve `yaml:"serve"`
}

// Default returns the built-in configuration used when no config file is
// supplied.
func Default() Config {
	return Config{
		Chart: Chart{
			Width:            1200,
			Height:           500,
			MarginTop:        20,
			FontSize:         12,
			Layout:           LayoutDefault,
			CircleBackground: "opaque",
		},
		Roles: Roles{
			Title:       "title",
			Description: "description",
			StartDate:   "start",
			EndDate:     "end",
			CompanyLink: "link",
			HeaderImage: "header_image",
			FooterImage: "footer_image",
		},
		Links: Links{
			BaseURL: "https://app.example.com",
		},
		Serve: Serve{
			Listen: "127.0.0.1:8080",
		},
	}
}

// Load loads configuration from a YAML file, or returns the defaults if no
// file is specified.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	var conf Config
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}
	conf.Normalize()

	return conf, nil
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	def := Default()

	if c.Chart.Width <= 0 {
		c.Chart.Width = def.Chart.Width
	}
	if c.Chart.Height <= 0 {
		c.Chart.Height = def.Chart.Height
	}
	if c.Chart.MarginTop <= 0 {
		c.Chart.MarginTop = def.Chart.MarginTop
	}
	if c.Chart.FontSize <= 0 {
		c.Chart.FontSize = def.Chart.FontSize
	}
	if c.Chart.Layout == "" {
		c.Chart.Layout = LayoutDefault
	}
	if c.Roles.Title == "" {
		c.Roles.Title = def.Roles.Title
	}
	if c.Roles.Description == "" {
		c.Roles.Description = def.Roles.Description
	}
	if c.Roles.StartDate == "" {
		c.Roles.StartDate = def.Roles.StartDate
	}
	if c.Roles.EndDate == "" {
		c.Roles.EndDate = def.Roles.EndDate
	}
	if c.Roles.CompanyLink == "" {
		c.Roles.CompanyLink = def.Roles.CompanyLink
	}
	if c.Roles.HeaderImage == "" {
		c.Roles.HeaderImage = def.Roles.HeaderImage
	}
	if c.Roles.FooterImage == "" {
		c.Roles.FooterImage = def.Roles.FooterImage
	}
	if c.Links.BaseURL == "" {
		c.Links.BaseURL = def.Links.BaseURL
	}
	if c.Serve.Listen == "" {
		c.Serve.Listen = def.Serve.Listen
	}
}

// BannerActive reports whether the configured layout replaces part of the
// plot area with a header or footer image.
func (c *Config) BannerActive() bool {
	return c.Chart.Layout == LayoutHeader || c.Chart.Layout == LayoutFooter
}
