// Package dataset loads location/route datasets and builds route graphs
// from them. Two datasets are embedded; others can be loaded from YAML files.
package dataset

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dd0wney/realm-atlas/pkg/storage"
	"github.com/dd0wney/realm-atlas/pkg/validation"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var files embed.FS

// DefaultName is the dataset used when none is configured
const DefaultName = "middle-earth"

// ClassicName is the smaller, earlier version of the map
const ClassicName = "middle-earth-classic"

var builtins = map[string]string{
	DefaultName: "data/middle_earth.yaml",
	ClassicName: "data/middle_earth_classic.yaml",
}

// ErrUnknownDataset is returned for a name that is neither built in nor a file
var ErrUnknownDataset = errors.New("unknown dataset")

// Extent is the coordinate space the dataset's positions are authored in
type Extent struct {
	Width  float64
	Height float64
}

// Dataset is a parsed and validated dataset
type Dataset struct {
	Name   string
	Title  string
	Extent Extent
	Source string // "embedded" or the file path

	record validation.DatasetRecord
}

// Names lists the embedded datasets
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load returns an embedded dataset by name
func Load(name string) (*Dataset, error) {
	path, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownDataset, name, Names())
	}

	data, err := files.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded dataset %s: %w", name, err)
	}

	ds, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("embedded dataset %s: %w", name, err)
	}
	ds.Source = "embedded"
	return ds, nil
}

// LoadFile reads a dataset from a YAML file
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	ds.Source = path
	return ds, nil
}

// Open resolves nameOrPath as an embedded dataset name first, then as a file
func Open(nameOrPath string) (*Dataset, error) {
	if nameOrPath == "" {
		nameOrPath = DefaultName
	}
	if _, ok := builtins[nameOrPath]; ok {
		return Load(nameOrPath)
	}
	if _, err := os.Stat(nameOrPath); err != nil {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownDataset, nameOrPath, Names())
	}
	return LoadFile(nameOrPath)
}

// Parse decodes and validates a YAML dataset. Unknown keys are rejected.
func Parse(r io.Reader) (*Dataset, error) {
	var record validation.DatasetRecord

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validation.ValidateDataset(&record); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}

	return &Dataset{
		Name:   record.Name,
		Title:  validation.DefaultOr(record.Title, record.Name),
		Extent: Extent{Width: record.Extent.Width, Height: record.Extent.Height},
		record: record,
	}, nil
}

// LocationCount returns the number of authored locations
func (d *Dataset) LocationCount() int {
	return len(d.record.Locations)
}

// RouteCount returns the number of authored routes
func (d *Dataset) RouteCount() int {
	return len(d.record.Routes)
}

// Graph builds the immutable route graph for the dataset. Locations keep
// their file order, which is the insertion order used for tie-breaking.
func (d *Dataset) Graph() (*storage.Graph, error) {
	b := storage.NewBuilder()

	for _, loc := range d.record.Locations {
		if err := b.AddLocation(storage.Location{
			Name:     loc.Name,
			Position: storage.Position{X: loc.X, Y: loc.Y},
			Kind:     storage.LocationKind(loc.Kind),
		}); err != nil {
			return nil, err
		}
	}

	for _, r := range d.record.Routes {
		if err := b.AddRoute(storage.Route{
			From:   r.From,
			To:     r.To,
			Danger: r.Danger,
			Type:   storage.RouteType(r.Type),
		}); err != nil {
			return nil, err
		}
	}

	return b.Build()
}

// BuildGraph builds the graph for the default embedded dataset
func BuildGraph() (*storage.Graph, error) {
	ds, err := Load(DefaultName)
	if err != nil {
		return nil, err
	}
	return ds.Graph()
}
