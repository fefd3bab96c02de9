package catalog

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/osse101/FarmBot_Go/internal/validation"
)

//go:embed default.yaml
var defaultCatalog []byte

// file is the on-disk shape shared by every supported format
type file struct {
	Version  int              `yaml:"version" toml:"version" json:"version"`
	Economy  Economy          `yaml:"economy" toml:"economy" json:"economy"`
	Growth   Growth           `yaml:"growth" toml:"growth" json:"growth"`
	Theft    Theft            `yaml:"theft" toml:"theft" json:"theft"`
	Shop     Shop             `yaml:"shop" toml:"shop" json:"shop"`
	SignIn   SignInSchedule   `yaml:"signin" toml:"signin" json:"signin"`
	Crops    []CropDefinition `yaml:"crops" toml:"crops" json:"crops"`
	Upgrades []UpgradeLevel   `yaml:"upgrades" toml:"upgrades" json:"upgrades"`
	Reclaim  []ReclaimStep    `yaml:"reclaim" toml:"reclaim" json:"reclaim"`
}

// Default returns the catalog embedded in the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalog, FormatYAML)
}

// Load reads a catalog file; the format follows the file extension (.yaml, .yml, .toml, .json).
// An empty path loads the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrContextReadFile+": %w", path, err)
	}
	return Parse(raw, FormatFromPath(path))
}

// FormatFromPath maps a file extension to a catalog format
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

var schemaValidator = validation.NewSchemaValidator()

// CheckSchema validates the raw document against the catalog JSON schema
// without building it. Unknown keys and wrongly typed values are rejected here.
func CheckSchema(raw []byte, format string) error {
	var doc map[string]interface{}
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(raw, &doc)
	case FormatTOML:
		_, err = toml.Decode(string(raw), &doc)
	case FormatJSON:
		return schemaValidator.ValidateBytes(raw, validation.CatalogSchema)
	default:
		return fmt.Errorf(ErrMsgUnsupportedFmt, format)
	}
	if err != nil {
		return fmt.Errorf(ErrContextDecode+": %w", format, err)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return schemaValidator.ValidateDocument(doc, validation.CatalogSchema)
}

// Parse decodes, validates and indexes a catalog
func Parse(raw []byte, format string) (*Catalog, error) {
	if err := CheckSchema(raw, format); err != nil {
		return nil, err
	}

	var f file
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(raw, &f)
	case FormatTOML:
		_, err = toml.NewDecoder(bytes.NewReader(raw)).Decode(&f)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	default:
		return nil, fmt.Errorf(ErrMsgUnsupportedFmt, format)
	}
	if err != nil {
		return nil, fmt.Errorf(ErrContextDecode+": %w", format, err)
	}

	sum := sha256.Sum256(raw)
	return build(f, hex.EncodeToString(sum[:]))
}

// MustParse is like Parse but panics on error. Intended for tests and static fixtures.
func MustParse(raw []byte, format string) *Catalog {
	c, err := Parse(raw, format)
	if err != nil {
		panic(err)
	}
	return c
}
