package seed

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed catalog.json catalog_schema.json
var catalogFS embed.FS

// Brand pairs a brand name with the models it sells.
type Brand struct {
	Name   string   `json:"name"`
	Models []string `json:"models"`
}

// Catalog is the pool of realistic values the generator draws from.
type Catalog struct {
	Brands        []Brand   `json:"brands"`
	FuelTypes     []string  `json:"fuel_types"`
	Transmissions []string  `json:"transmissions"`
	Colors        []string  `json:"colors"`
	Doors         []int     `json:"doors"`
	EngineSizes   []float64 `json:"engine_sizes"`
}

// LoadCatalog reads the embedded catalog after validating it against its
// JSON Schema, so a bad edit fails loudly at startup instead of producing
// records that violate storage constraints.
func LoadCatalog() (*Catalog, error) {
	schemaData, err := catalogFS.ReadFile("catalog_schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("catalog_schema.json", bytes.NewReader(schemaData)); err != nil {
		return nil, fmt.Errorf("failed to add catalog schema resource: %w", err)
	}
	schema, err := compiler.Compile("catalog_schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile catalog schema: %w", err)
	}

	catalogData, err := catalogFS.ReadFile("catalog.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog: %w", err)
	}

	var raw any
	if err := json.Unmarshal(catalogData, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("catalog does not match its schema: %w", err)
	}

	var catalog Catalog
	if err := json.Unmarshal(catalogData, &catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return &catalog, nil
}
