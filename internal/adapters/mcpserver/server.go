package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"vehicle-search-service/internal/contextkeys"
	"vehicle-search-service/internal/core/port"
	"vehicle-search-service/internal/gateway"
)

// Server exposes the gateway's operations as MCP tools. The transport layer
// stays dumb: tool arguments are handed to the gateway as the raw mapping so
// validation lives in exactly one place.
type Server struct {
	server  *mcp.Server
	gateway *gateway.Gateway
	logger  port.LoggerPort
}

func NewServer(name, version string, gw *gateway.Gateway, logger port.LoggerPort) *Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    name,
			Version: version,
		},
		nil,
	)

	s := &Server{server: server, gateway: gw, logger: logger}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: gateway.OpSearchRecords,
		Description: "Search the vehicle inventory with composable filters: free text (brand, " +
			"model, color, fuel type; accent- and case-insensitive), brand/model equality or " +
			"membership, year/price/mileage/doors ranges. Returns a ranked page of vehicles " +
			"and an opaque next_page_token when more results exist.",
		InputSchema: searchRecordsSchema(),
	}, s.operationHandler(gateway.OpSearchRecords))

	mcp.AddTool(s.server, &mcp.Tool{
		Name: gateway.OpListDistinct,
		Description: "List the distinct values currently present for one field (brand, model, " +
			"fuel_type, color, transmission, doors). For field=model an optional brands list " +
			"narrows the result. Use this before proposing filters so they match real data.",
		InputSchema: listDistinctSchema(),
	}, s.operationHandler(gateway.OpListDistinct))

	mcp.AddTool(s.server, &mcp.Tool{
		Name: gateway.OpGetRange,
		Description: "Report the min/max currently present for a numeric field (year, price, " +
			"mileage). Returns {empty: true} when the inventory has no records.",
		InputSchema: getRangeSchema(),
	}, s.operationHandler(gateway.OpGetRange))

	s.logger.Info("Registered MCP tools", port.Fields{"tools": len(s.gateway.Operations())})
}

// operationHandler adapts one gateway operation to the MCP tool contract.
// Gateway errors become tool-level errors (IsError), never protocol faults.
func (s *Server) operationHandler(operation string) func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
		ctx = contextkeys.ContextWithLogger(ctx, s.logger)

		resp := s.gateway.Dispatch(ctx, gateway.CallRequest{
			Operation: operation,
			Arguments: args,
		})

		if resp.Error != nil {
			errJSON, _ := json.Marshal(resp.Error)
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{
					&mcp.TextContent{Text: string(errJSON)},
				},
			}, nil, nil
		}

		resultJSON, err := json.Marshal(resp.Result)
		if err != nil {
			s.logger.Error("Failed to marshal tool result", err, port.Fields{"operation": operation})
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{
					&mcp.TextContent{Text: `{"code":"STORAGE_UNAVAILABLE","message":"storage is temporarily unavailable"}`},
				},
			}, nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: string(resultJSON)},
			},
		}, resp.Result, nil
	}
}

// Run serves MCP over the given transport until ctx is done.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

// HTTPHandler returns a streamable HTTP handler for mounting under a router.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}
