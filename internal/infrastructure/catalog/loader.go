package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cooktimer/backend/internal/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// document is the on-disk shape of a catalog file
type document struct {
	Foods    []domain.Food                `yaml:"foods"`
	Textures map[string][]domain.Texture `yaml:"textures"`
	Methods  []domain.CookingMethod      `yaml:"methods"`
}

// Load reads the catalog at path, or the embedded default catalog when path
// is empty. The result is validated before it is returned.
func Load(path string) (*Repository, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded catalog.
func Default() (*Repository, error) {
	return Parse(defaultCatalog)
}

// Parse decodes and validates a YAML catalog document
func Parse(data []byte) (*Repository, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var doc document
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: catalog is empty", domain.ErrInvalidCatalog)
		}
		return nil, fmt.Errorf("%w: parse catalog yaml: %v", domain.ErrInvalidCatalog, err)
	}

	if err := validate(&doc); err != nil {
		return nil, err
	}

	return newRepository(doc), nil
}

// validate checks the whole document once so lookups never need to
func validate(doc *document) error {
	if len(doc.Foods) == 0 {
		return fmt.Errorf("%w: no foods defined", domain.ErrInvalidCatalog)
	}
	if len(doc.Methods) == 0 {
		return fmt.Errorf("%w: no cooking methods defined", domain.ErrInvalidCatalog)
	}

	foods := make(map[string]bool, len(doc.Foods))
	for i := range doc.Foods {
		food := &doc.Foods[i]
		if err := food.Validate(); err != nil {
			return err
		}
		if foods[food.ID] {
			return fmt.Errorf("%w: duplicate food id %q", domain.ErrInvalidCatalog, food.ID)
		}
		foods[food.ID] = true
	}

	for foodID, textures := range doc.Textures {
		if !foods[foodID] {
			return fmt.Errorf("%w: textures defined for unknown food %q", domain.ErrInvalidCatalog, foodID)
		}
		seen := make(map[string]bool, len(textures))
		for i := range textures {
			if err := textures[i].Validate(); err != nil {
				return err
			}
			if seen[textures[i].ID] {
				return fmt.Errorf("%w: duplicate texture id %q for food %q", domain.ErrInvalidCatalog, textures[i].ID, foodID)
			}
			seen[textures[i].ID] = true
		}
	}

	methods := make(map[string]bool, len(doc.Methods))
	for i := range doc.Methods {
		if err := doc.Methods[i].Validate(); err != nil {
			return err
		}
		if methods[doc.Methods[i].ID] {
			return fmt.Errorf("%w: duplicate cooking method id %q", domain.ErrInvalidCatalog, doc.Methods[i].ID)
		}
		methods[doc.Methods[i].ID] = true
	}

	return nil
}
