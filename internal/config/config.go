// Package config loads and validates YAML configuration for document
// generation. A config file has three recognized top-level sections:
//
//	pdf_options: renderer options (page size, margins, encoding, ...)
//	metadata:    PDF document information (title, creator, producer)
//	css_styles:  named CSS blocks injected into the composed document
//
// All sections and keys are optional; missing values fall back to built-in
// defaults. Unknown top-level keys are ignored. Unknown pdf_options keys are
// collected in declaration order and passed through to the renderer verbatim.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mdpress/mdpress/internal/fileutil"
	"github.com/mdpress/mdpress/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidOption   = errors.New("invalid option value")
)

// Recognized page sizes and their dimensions in inches (portrait).
var pageSizes = map[string][2]float64{
	"a3":     {11.69, 16.54},
	"a4":     {8.27, 11.69},
	"a5":     {5.83, 8.27},
	"letter": {8.5, 11},
	"legal":  {8.5, 14},
}

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Config holds all configuration for document generation.
// Immutable after Load; shared safely across conversions.
type Config struct {
	PDF      PDFOptions `yaml:"pdf_options"`
	Metadata Metadata   `yaml:"metadata"`
	Styles   Stylesheet `yaml:"css_styles"`
}

// Metadata holds PDF document information dictionary fields.
type Metadata struct {
	Title    string `yaml:"title"`
	Creator  string `yaml:"creator"`
	Producer string `yaml:"producer"`
}

// Flag is a pass-through renderer option preserved in declaration order.
type Flag struct {
	Name  string
	Value string
}

// PDFOptions holds renderer options. Recognized keys are typed and validated
// at load time; everything else lands in Extra for verbatim pass-through.
type PDFOptions struct {
	PageSize       string
	Orientation    string
	MarginTop      Length
	MarginBottom   Length
	MarginLeft     Length
	MarginRight    Length
	Encoding       string
	PageNumbers    bool
	FooterText     string
	FooterPosition string
	Timeout        time.Duration
	Extra          []Flag
}

// PaperSize returns the page dimensions in inches, honoring orientation.
func (p *PDFOptions) PaperSize() (width, height float64) {
	dims := pageSizes[strings.ToLower(p.PageSize)]
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		return dims[1], dims[0]
	}
	return dims[0], dims[1]
}

// UnmarshalYAML decodes the pdf_options mapping, preserving declaration
// order for pass-through keys. Recognized keys with values of the wrong
// type or shape fail the load.
func (p *PDFOptions) UnmarshalYAML(data []byte) error {
	items, err := yamlutil.UnmarshalOrdered(data)
	if err != nil {
		return err
	}

	for _, item := range items {
		key, ok := item.Key.(string)
		if !ok {
			return fmt.Errorf("%w: pdf_options key %v is not a string", ErrInvalidOption, item.Key)
		}

		switch strings.ToLower(key) {
		case "page-size":
			s, err := scalarString(key, item.Value)
			if err != nil {
				return err
			}
			if _, known := pageSizes[strings.ToLower(s)]; !known {
				return fmt.Errorf("%w: page-size %q (known: a3, a4, a5, letter, legal)", ErrInvalidOption, s)
			}
			p.PageSize = s
		case "orientation":
			s, err := scalarString(key, item.Value)
			if err != nil {
				return err
			}
			switch strings.ToLower(s) {
			case OrientationPortrait, OrientationLandscape:
				p.Orientation = s
			default:
				return fmt.Errorf("%w: orientation %q (use portrait or landscape)", ErrInvalidOption, s)
			}
		case "margin-top":
			if p.MarginTop, err = lengthValue(key, item.Value); err != nil {
				return err
			}
		case "margin-bottom":
			if p.MarginBottom, err = lengthValue(key, item.Value); err != nil {
				return err
			}
		case "margin-left":
			if p.MarginLeft, err = lengthValue(key, item.Value); err != nil {
				return err
			}
		case "margin-right":
			if p.MarginRight, err = lengthValue(key, item.Value); err != nil {
				return err
			}
		case "encoding":
			if p.Encoding, err = scalarString(key, item.Value); err != nil {
				return err
			}
		case "page-numbers":
			b, ok := item.Value.(bool)
			if !ok {
				return fmt.Errorf("%w: page-numbers must be a boolean, got %v", ErrInvalidOption, item.Value)
			}
			p.PageNumbers = b
		case "footer-text":
			if p.FooterText, err = scalarString(key, item.Value); err != nil {
				return err
			}
		case "footer-position":
			s, err := scalarString(key, item.Value)
			if err != nil {
				return err
			}
			switch strings.ToLower(s) {
			case "left", "center", "right":
				p.FooterPosition = s
			default:
				return fmt.Errorf("%w: footer-position %q (use left, center, or right)", ErrInvalidOption, s)
			}
		case "timeout":
			s, err := scalarString(key, item.Value)
			if err != nil {
				return err
			}
			d, err := time.ParseDuration(s)
			if err != nil || d <= 0 {
				return fmt.Errorf("%w: timeout %q (use a positive Go duration like 30s)", ErrInvalidOption, s)
			}
			p.Timeout = d
		default:
			// Escape hatch: pass the flag through to the renderer verbatim.
			s, err := scalarString(key, item.Value)
			if err != nil {
				return err
			}
			p.Extra = append(p.Extra, Flag{Name: key, Value: s})
		}
	}

	return nil
}

// StyleBlock is a named CSS block.
type StyleBlock struct {
	Name string
	CSS  string
}

// Stylesheet is an ordered collection of named CSS blocks.
// The "base" block is emitted first by Blocks; later blocks override
// earlier ones through the normal CSS cascade.
type Stylesheet struct {
	blocks []StyleBlock
}

// UnmarshalYAML decodes css_styles, replacing same-named defaults in place
// and appending new blocks in declaration order.
func (s *Stylesheet) UnmarshalYAML(data []byte) error {
	items, err := yamlutil.UnmarshalOrdered(data)
	if err != nil {
		return err
	}

	for _, item := range items {
		name, ok := item.Key.(string)
		if !ok {
			return fmt.Errorf("%w: css_styles key %v is not a string", ErrInvalidOption, item.Key)
		}
		css, ok := item.Value.(string)
		if !ok {
			return fmt.Errorf("%w: css_styles.%s must be CSS text", ErrInvalidOption, name)
		}
		s.Set(name, css)
	}

	return nil
}

// Set replaces the named block if present, otherwise appends it.
func (s *Stylesheet) Set(name, css string) {
	for i := range s.blocks {
		if s.blocks[i].Name == name {
			s.blocks[i].CSS = css
			return
		}
	}
	s.blocks = append(s.blocks, StyleBlock{Name: name, CSS: css})
}

// Blocks returns the CSS blocks, base first, then declaration order.
func (s *Stylesheet) Blocks() []StyleBlock {
	out := make([]StyleBlock, 0, len(s.blocks))
	for _, b := range s.blocks {
		if b.Name == "base" {
			out = append(out, b)
		}
	}
	for _, b := range s.blocks {
		if b.Name != "base" {
			out = append(out, b)
		}
	}
	return out
}

// Len returns the number of blocks.
func (s *Stylesheet) Len() int { return len(s.blocks) }

// scalarString coerces a YAML scalar to its string form.
// Mappings and sequences are type errors for string-valued keys.
func scalarString(key string, v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return fmt.Sprintf("%t", t), nil
	case int64:
		return fmt.Sprintf("%d", t), nil
	case uint64:
		return fmt.Sprintf("%d", t), nil
	case float64:
		return fmt.Sprintf("%g", t), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("%w: pdf_options.%s must be a scalar, got %T", ErrInvalidOption, key, v)
	}
}

// lengthValue coerces a YAML scalar to a Length. Bare numbers are millimeters.
func lengthValue(key string, v any) (Length, error) {
	switch t := v.(type) {
	case string:
		l, err := ParseLength(t)
		if err != nil {
			return Length{}, fmt.Errorf("%w: pdf_options.%s: %v", ErrInvalidOption, key, err)
		}
		return l, nil
	case int64:
		return Millimeters(float64(t)), nil
	case uint64:
		return Millimeters(float64(t)), nil
	case float64:
		return Millimeters(t), nil
	default:
		return Length{}, fmt.Errorf("%w: pdf_options.%s must be a length like \"20mm\", got %T", ErrInvalidOption, key, v)
	}
}

// Default returns the built-in configuration: A4 portrait, 20mm margins,
// UTF-8 encoding, and the stock typography stylesheet.
func Default() *Config {
	cfg := &Config{
		PDF: PDFOptions{
			PageSize:       "a4",
			Orientation:    OrientationPortrait,
			MarginTop:      Millimeters(20),
			MarginBottom:   Millimeters(20),
			MarginLeft:     Millimeters(20),
			MarginRight:    Millimeters(20),
			Encoding:       "UTF-8",
			FooterPosition: "center",
			Timeout:        30 * time.Second,
		},
		Metadata: Metadata{
			Creator:  "mdpress Markdown to PDF converter",
			Producer: "mdpress (goldmark/chromium)",
		},
	}
	cfg.Styles.Set("base", baseCSS)
	cfg.Styles.Set("header", headerCSS)
	cfg.Styles.Set("footer", footerCSS)
	return cfg
}

// Load reads configuration from a file path or config name, merged over the
// built-in defaults. If nameOrPath contains a path separator it is treated
// as a file path; otherwise it is searched in standard locations.
// Returns an error if the file is not found (no silent fallback).
func Load(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolvePath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML config bytes merged over the built-in defaults.
// Either the whole document parses or the load fails; there is no
// partial application.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yamlutil.Unmarshal(data, cfg); err != nil {
		if errors.Is(err, ErrInvalidOption) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return cfg, nil
}

// resolvePath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/mdpress/
func resolvePath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "mdpress", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
