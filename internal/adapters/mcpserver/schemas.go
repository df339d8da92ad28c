package mcpserver

import "github.com/google/jsonschema-go/jsonschema"

// Hand-built input schemas. They describe the argument shapes to the
// caller; real validation happens in the gateway, which also guards callers
// arriving over other transports.

func stringOrList(description string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: description,
		AnyOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
	}
}

func integerField(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer", Description: description}
}

func numberField(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "number", Description: description}
}

func searchRecordsSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"free_text": {
				Type: "string",
				Description: "Free-text query over brand, model, color and fuel type. " +
					"Accent- and case-insensitive, Portuguese-aware.",
			},
			"brand":        stringOrList("Brand name or list of brand names to match exactly (accent/case-insensitive)."),
			"model":        stringOrList("Model name or list of model names to match exactly (accent/case-insensitive)."),
			"fuel_type":    stringOrList("Fuel type or list of fuel types, e.g. Flex, Gasolina, Diesel."),
			"color":        stringOrList("Color or list of colors, e.g. Preto, Branco, Prata."),
			"transmission": stringOrList("Transmission type or list, e.g. Manual, Automática, CVT."),
			"doors":        integerField("Exact door count."),
			"doors_min":    integerField("Minimum door count, inclusive."),
			"doors_max":    integerField("Maximum door count, inclusive."),
			"year_min":     integerField("Minimum manufacture year, inclusive."),
			"year_max":     integerField("Maximum manufacture year, inclusive."),
			"price_min":    numberField("Minimum price, inclusive."),
			"price_max":    numberField("Maximum price, inclusive."),
			"mileage_min":  integerField("Minimum mileage, inclusive."),
			"mileage_max":  integerField("Maximum mileage, inclusive."),
			"page_token": {
				Type:        "string",
				Description: "Opaque token from a previous response's next_page_token. Omit for the first page.",
			},
			"page_size": integerField("Records per page; defaults to 20, capped at 100."),
		},
	}
}

func listDistinctSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"field": {
				Type:        "string",
				Description: "Field to list distinct values for.",
				Enum:        []any{"brand", "model", "fuel_type", "color", "transmission", "doors"},
			},
			"brands": stringOrList("Optional brand filter; honored only when field is \"model\"."),
		},
		Required: []string{"field"},
	}
}

func getRangeSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"field": {
				Type:        "string",
				Description: "Numeric field to report the current min/max for.",
				Enum:        []any{"year", "price", "mileage"},
			},
		},
		Required: []string{"field"},
	}
}
