package gateway

import (
	"fmt"
	"math"

	"vehicle-search-service/internal/core/domain"
)

// splitPageArguments separates pagination arguments from filter criteria
// without mutating the caller's map. The remainder goes to
// domain.BuildVehicleFilter untouched.
func splitPageArguments(args map[string]any) (map[string]any, string, int, error) {
	filterArgs := make(map[string]any, len(args))
	var pageToken string
	var pageSize int

	for key, value := range args {
		switch key {
		case "page_token":
			if value == nil {
				continue
			}
			s, ok := value.(string)
			if !ok {
				return nil, "", 0, domain.NewValidationError("page_token",
					fmt.Sprintf("expected a string, got %T", value))
			}
			pageToken = s
		case "page_size":
			if value == nil {
				continue
			}
			n, err := integerArgument("page_size", value)
			if err != nil {
				return nil, "", 0, err
			}
			if n < 0 {
				return nil, "", 0, domain.NewValidationError("page_size", "must not be negative")
			}
			pageSize = n
		default:
			filterArgs[key] = value
		}
	}

	return filterArgs, pageToken, pageSize, nil
}

func requiredStringArgument(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", domain.NewValidationError(key, "is required")
	}
	s, ok := raw.(string)
	if !ok {
		return "", domain.NewValidationError(key, fmt.Sprintf("expected a string, got %T", raw))
	}
	if s == "" {
		return "", domain.NewValidationError(key, "is required")
	}
	return s, nil
}

func stringListArgument(args map[string]any, key string) ([]string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil, nil
		}
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		values := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, domain.NewValidationError(key,
					fmt.Sprintf("expected a list of strings, got element %T", item))
			}
			if s != "" {
				values = append(values, s)
			}
		}
		if len(values) == 0 {
			return nil, nil
		}
		return values, nil
	default:
		return nil, domain.NewValidationError(key,
			fmt.Sprintf("expected a string or list of strings, got %T", raw))
	}
}

func integerArgument(key string, raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, domain.NewValidationError(key, fmt.Sprintf("expected an integer, got %v", v))
		}
		return int(v), nil
	default:
		return 0, domain.NewValidationError(key, fmt.Sprintf("expected an integer, got %T", raw))
	}
}
