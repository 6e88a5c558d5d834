package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/folha-dev/folha/internal/export"
	"github.com/folha-dev/folha/internal/extract"
)

// FileName is the default config file name inside a project directory.
const FileName = "folha.yaml"

// Config represents the top-level folha.yaml configuration.
type Config struct {
	Extraction ExtractionConfig `yaml:"extraction"`
	Totals     TotalsConfig     `yaml:"totals"`
	Export     ExportConfig     `yaml:"export"`
}

// ExtractionConfig locates and bounds the payroll summary table.
type ExtractionConfig struct {
	SectionMarker     string   `yaml:"section_marker"`
	LineTolerance     float64  `yaml:"line_tolerance"`
	TableWindow       int      `yaml:"table_window"`
	FurniturePatterns []string `yaml:"furniture_patterns"`
}

// TotalsConfig places the net salary search box around its label.
type TotalsConfig struct {
	Window      int     `yaml:"window"`
	AnchorSlack float64 `yaml:"anchor_slack"`
	MarginLeft  float64 `yaml:"margin_left"`
	MarginRight float64 `yaml:"margin_right"`
	NearOffset  float64 `yaml:"near_offset"`
	FarOffset   float64 `yaml:"far_offset"`
}

// ExportConfig controls the spreadsheet layout.
type ExportConfig struct {
	SheetName    string    `yaml:"sheet_name"`
	ColumnWidths []float64 `yaml:"column_widths"` // Rubrica, Descrição, Rendimentos, Descontos
}

// Load reads a folha.yaml file from disk. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, falling back to Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration for the Nasajon payroll report.
func Default() *Config {
	opts := extract.DefaultOptions()
	exp := export.DefaultOptions()
	return &Config{
		Extraction: ExtractionConfig{
			SectionMarker:     opts.SectionMarker,
			LineTolerance:     opts.LineTolerance,
			TableWindow:       opts.TableWindow,
			FurniturePatterns: append([]string(nil), extract.DefaultFurniturePatterns...),
		},
		Totals: TotalsConfig{
			Window:      opts.Totals.Window,
			AnchorSlack: opts.Totals.AnchorSlack,
			MarginLeft:  opts.Totals.MarginLeft,
			MarginRight: opts.Totals.MarginRight,
			NearOffset:  opts.Totals.NearOffset,
			FarOffset:   opts.Totals.FarOffset,
		},
		Export: ExportConfig{
			SheetName:    exp.SheetName,
			ColumnWidths: append([]float64(nil), exp.ColumnWidths...),
		},
	}
}

// Validate checks values that would make extraction meaningless.
func (c *Config) Validate() error {
	switch {
	case c.Extraction.SectionMarker == "":
		return errors.New("extraction.section_marker is empty")
	case c.Extraction.LineTolerance < 0:
		return fmt.Errorf("extraction.line_tolerance %v is negative", c.Extraction.LineTolerance)
	case c.Extraction.TableWindow < 1:
		return fmt.Errorf("extraction.table_window %d must be at least 1", c.Extraction.TableWindow)
	case c.Totals.Window < 1:
		return fmt.Errorf("totals.window %d must be at least 1", c.Totals.Window)
	case c.Totals.NearOffset > c.Totals.FarOffset:
		return fmt.Errorf("totals.near_offset %v exceeds far_offset %v", c.Totals.NearOffset, c.Totals.FarOffset)
	case c.Export.SheetName == "":
		return errors.New("export.sheet_name is empty")
	}
	return nil
}

// Extractor builds extraction options from the config.
func (c *Config) Extractor() (extract.Options, error) {
	furniture, err := extract.NewFurnitureFilter(c.Extraction.FurniturePatterns)
	if err != nil {
		return extract.Options{}, err
	}
	return extract.Options{
		SectionMarker: c.Extraction.SectionMarker,
		LineTolerance: c.Extraction.LineTolerance,
		TableWindow:   c.Extraction.TableWindow,
		Furniture:     furniture,
		Totals: extract.TotalsOptions{
			Window:      c.Totals.Window,
			AnchorSlack: c.Totals.AnchorSlack,
			MarginLeft:  c.Totals.MarginLeft,
			MarginRight: c.Totals.MarginRight,
			NearOffset:  c.Totals.NearOffset,
			FarOffset:   c.Totals.FarOffset,
		},
	}, nil
}

// Exporter builds spreadsheet options from the config.
func (c *Config) Exporter() export.Options {
	return export.Options{
		SheetName:    c.Export.SheetName,
		ColumnWidths: c.Export.ColumnWidths,
	}
}
