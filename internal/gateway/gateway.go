package gateway

import (
	"context"
	"errors"
	"fmt"

	"vehicle-search-service/internal/contextkeys"
	"vehicle-search-service/internal/core/domain"
	"vehicle-search-service/internal/core/port"
	"vehicle-search-service/internal/core/usecase"
)

// Error codes surfaced to callers. Internal fault strings never cross this
// boundary.
const (
	CodeUnknownOperation   = "UNKNOWN_OPERATION"
	CodeInvalidArgument    = "INVALID_ARGUMENT"
	CodeInvalidPageToken   = "INVALID_PAGE_TOKEN"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeTimeout            = "TIMEOUT"
)

// Recognized operation names.
const (
	OpSearchRecords = "search_records"
	OpListDistinct  = "list_distinct"
	OpGetRange      = "get_range"
)

// CallRequest is the boundary envelope of one inbound tool call.
type CallRequest struct {
	Operation string         `json:"operation"`
	Arguments map[string]any `json:"arguments"`
}

// ToolError is the typed error half of the response envelope.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CallResponse carries either a result payload or a typed error, never both.
type CallResponse struct {
	Result any        `json:"result,omitempty"`
	Error  *ToolError `json:"error,omitempty"`
}

// SearchRecordsResult is the search_records payload.
type SearchRecordsResult struct {
	Records       []domain.Vehicle `json:"records"`
	NextPageToken string           `json:"next_page_token,omitempty"`
}

// ListDistinctResult is the list_distinct payload.
type ListDistinctResult struct {
	Values []any `json:"values"`
}

// RangeResult is the get_range payload for a non-empty store.
type RangeResult struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// EmptyRangeResult marks a range query against an empty store.
type EmptyRangeResult struct {
	Empty bool `json:"empty"`
}

type operationHandler func(ctx context.Context, args map[string]any) (any, error)

// Gateway validates untrusted structured requests and dispatches them to the
// search and facet use cases. It holds no per-call state and is safe for
// concurrent use; it never retries on behalf of the caller.
type Gateway struct {
	operations map[string]operationHandler
}

func NewGateway(
	search *usecase.SearchVehiclesUseCase,
	distinct *usecase.ListDistinctUseCase,
	ranges *usecase.GetRangeUseCase,
) *Gateway {
	g := &Gateway{operations: make(map[string]operationHandler)}
	g.operations[OpSearchRecords] = func(ctx context.Context, args map[string]any) (any, error) {
		return handleSearchRecords(ctx, search, args)
	}
	g.operations[OpListDistinct] = func(ctx context.Context, args map[string]any) (any, error) {
		return handleListDistinct(ctx, distinct, args)
	}
	g.operations[OpGetRange] = func(ctx context.Context, args map[string]any) (any, error) {
		return handleGetRange(ctx, ranges, args)
	}
	return g
}

// Operations lists the recognized operation names.
func (g *Gateway) Operations() []string {
	names := make([]string, 0, len(g.operations))
	for name := range g.operations {
		names = append(names, name)
	}
	return names
}

// Dispatch runs one call through the Received -> Validating -> Dispatching
// lifecycle and always produces a well-formed response envelope.
func (g *Gateway) Dispatch(ctx context.Context, req CallRequest) CallResponse {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "Gateway",
		"operation": req.Operation,
	})

	handler, ok := g.operations[req.Operation]
	if !ok {
		logger.Warn("Unknown operation requested", nil)
		return CallResponse{Error: &ToolError{
			Code:    CodeUnknownOperation,
			Message: fmt.Sprintf("operation %q is not recognized", req.Operation),
		}}
	}

	result, err := handler(ctx, req.Arguments)
	if err != nil {
		toolErr := mapError(err)
		logger.Warn("Call failed", port.Fields{"code": toolErr.Code, "error": err.Error()})
		return CallResponse{Error: toolErr}
	}

	return CallResponse{Result: result}
}

func handleSearchRecords(ctx context.Context, search *usecase.SearchVehiclesUseCase, args map[string]any) (any, error) {
	filterArgs, pageToken, pageSize, err := splitPageArguments(args)
	if err != nil {
		return nil, err
	}

	filter, err := domain.BuildVehicleFilter(filterArgs)
	if err != nil {
		return nil, err
	}

	result, err := search.Execute(ctx, filter, pageToken, pageSize)
	if err != nil {
		return nil, err
	}
	return SearchRecordsResult{
		Records:       result.Vehicles,
		NextPageToken: result.NextPageToken,
	}, nil
}

func handleListDistinct(ctx context.Context, distinct *usecase.ListDistinctUseCase, args map[string]any) (any, error) {
	for key := range args {
		if key != "field" && key != "brands" {
			return nil, domain.NewValidationError(key, "unknown argument")
		}
	}

	fieldName, err := requiredStringArgument(args, "field")
	if err != nil {
		return nil, err
	}
	field, err := domain.ParseDistinctField(fieldName)
	if err != nil {
		return nil, err
	}

	brands, err := stringListArgument(args, "brands")
	if err != nil {
		return nil, err
	}
	if len(brands) > 0 && field != domain.DistinctModel {
		return nil, domain.NewValidationError("brands", "only applies to field \"model\"")
	}

	values, err := distinct.Execute(ctx, field, brands)
	if err != nil {
		return nil, err
	}
	return ListDistinctResult{Values: values}, nil
}

func handleGetRange(ctx context.Context, ranges *usecase.GetRangeUseCase, args map[string]any) (any, error) {
	for key := range args {
		if key != "field" {
			return nil, domain.NewValidationError(key, "unknown argument")
		}
	}

	fieldName, err := requiredStringArgument(args, "field")
	if err != nil {
		return nil, err
	}
	field, err := domain.ParseRangeField(fieldName)
	if err != nil {
		return nil, err
	}

	result, err := ranges.Execute(ctx, field)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return EmptyRangeResult{Empty: true}, nil
	}
	return RangeResult{Min: result.Min, Max: result.Max}, nil
}

// mapError folds the domain error taxonomy into caller-visible codes.
// Validation messages are caller-fixable and pass through verbatim; storage
// faults are replaced with fixed messages.
func mapError(err error) *ToolError {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return &ToolError{Code: CodeInvalidArgument, Message: validationErr.Error()}
	}
	if errors.Is(err, domain.ErrInvalidPageToken) {
		return &ToolError{
			Code:    CodeInvalidPageToken,
			Message: "page token is malformed or no longer valid; restart pagination without a token",
		}
	}
	var storageErr *domain.StorageError
	if errors.As(err, &storageErr) {
		if storageErr.Timeout {
			return &ToolError{Code: CodeTimeout, Message: "storage did not answer within the deadline"}
		}
		return &ToolError{Code: CodeStorageUnavailable, Message: "storage is temporarily unavailable"}
	}
	// Anything unclassified is treated as a transient storage fault, never
	// leaked verbatim.
	return &ToolError{Code: CodeStorageUnavailable, Message: "storage is temporarily unavailable"}
}
