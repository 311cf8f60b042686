package catalog

import (
	_ "embed"
	"encoding/json"
	"os"

	"github.com/go-faster/errors"
)

// defaultMenu contains the house menu shipped with the binary.
//
//go:embed menu.json
var defaultMenu []byte

// Load builds a Catalog from the embedded menu with the default policy.
func Load() (*Catalog, error) {
	return load(defaultMenu)
}

// LoadFile builds a Catalog from an external menu JSON file with the default
// policy. Used when a deployment overrides the embedded menu.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read menu file %s", path)
	}
	return load(data)
}

func load(data []byte) (*Catalog, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, errors.Wrap(err, "decode menu")
	}
	c, err := New(def, DefaultPolicy())
	if err != nil {
		return nil, errors.Wrap(err, "build catalog")
	}
	return c, nil
}
