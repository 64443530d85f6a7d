package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yuzvak/herbal-storefront/internal/domain/storefront"
)

type fileDocument struct {
	Storefronts []storefront.Storefront `yaml:"storefronts"`
}

// LoadFile reads storefront definitions, including their products, from YAML.
func LoadFile(path string) ([]storefront.Storefront, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read storefronts file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) ([]storefront.Storefront, error) {
	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse storefronts file: %w", err)
	}

	if len(doc.Storefronts) == 0 {
		return nil, fmt.Errorf("no storefronts defined")
	}

	return doc.Storefronts, nil
}
