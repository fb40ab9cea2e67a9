package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/yifangd/check-json/internal/adapters/outbound/docparse"
	"github.com/yifangd/check-json/internal/adapters/outbound/httpfetch"
	"github.com/yifangd/check-json/internal/application"
	"github.com/yifangd/check-json/internal/domain"
	"github.com/yifangd/check-json/internal/domain/probe"
	"github.com/yifangd/check-json/internal/domain/report"
)

// registerTools registers all check_json MCP tools on the given server.
func registerTools(s *server.MCPServer) {
	// 1. check_json_run
	s.AddTool(
		mcplib.NewTool("check_json_run",
			mcplib.WithDescription("Fetch a JSON document over HTTP(S), evaluate attributes against warning/critical thresholds, and return the full check report"),
			mcplib.WithString("url",
				mcplib.Required(),
				mcplib.Description("URL of the document to check"),
			),
			mcplib.WithString("attributes",
				mcplib.Required(),
				mcplib.Description("Comma-separated path expressions, e.g. {shares}->{dead},{clients}->{connected}"),
			),
			mcplib.WithString("warning", mcplib.Description("Comma-separated warning ranges, paired with attributes")),
			mcplib.WithString("critical", mcplib.Description("Comma-separated critical ranges, paired with attributes")),
			mcplib.WithString("divisor", mcplib.Description("Comma-separated divisors, paired with attributes")),
			mcplib.WithString("perfvars", mcplib.Description("Comma-separated perfdata paths, or * for all top-level fields")),
			mcplib.WithString("outputvars", mcplib.Description("Comma-separated message-only paths, or *")),
			mcplib.WithNumber("timeout", mcplib.Description("Fetch timeout in seconds (default 15)")),
			mcplib.WithString("metadata", mcplib.Description("Request body; sent as POST when set")),
			mcplib.WithString("contenttype", mcplib.Description("Expected response content type (default application/json)")),
			mcplib.WithBoolean("ignoressl", mcplib.Description("Skip TLS certificate verification")),
		),
		handleRun(),
	)

	// 2. check_json_eval
	s.AddTool(
		mcplib.NewTool("check_json_eval",
			mcplib.WithDescription("Evaluate attributes against a document supplied inline, without any network access"),
			mcplib.WithString("document",
				mcplib.Required(),
				mcplib.Description("The JSON (or YAML) document to evaluate"),
			),
			mcplib.WithString("attributes",
				mcplib.Required(),
				mcplib.Description("Comma-separated path expressions to evaluate"),
			),
			mcplib.WithString("warning", mcplib.Description("Comma-separated warning ranges, paired with attributes")),
			mcplib.WithString("critical", mcplib.Description("Comma-separated critical ranges, paired with attributes")),
			mcplib.WithString("divisor", mcplib.Description("Comma-separated divisors, paired with attributes")),
			mcplib.WithString("perfvars", mcplib.Description("Comma-separated perfdata paths, or *")),
			mcplib.WithString("outputvars", mcplib.Description("Comma-separated message-only paths, or *")),
		),
		handleEval(),
	)
}

func handleRun() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, errResult := configFromRequest(request, true)
		if errResult != nil {
			return errResult, nil
		}

		svc := application.NewProbeService(httpfetch.New(), docparse.New(), nil)
		rep := svc.Run(ctx, cfg)

		return reportResult(rep)
	}
}

func handleEval() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		document, err := request.RequireString("document")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		cfg, errResult := configFromRequest(request, false)
		if errResult != nil {
			return errResult, nil
		}
		// Compile requires a URL even though no fetch happens here.
		cfg.URL = "inline:document"

		compiled, cerr := cfg.Compile()
		if cerr != nil {
			return errorResult(cerr.Error()), nil
		}

		root, perr := docparse.New().Parse([]byte(document))
		if perr != nil {
			return errorResult(perr.Error()), nil
		}

		results := probe.EvaluateAll(root, compiled.Specs)
		message, perfdata := report.Format(root, results, compiled.Perf, compiled.Output)

		return reportResult(&domain.CheckReport{
			Status:   probe.Aggregate(results),
			Message:  message,
			Perfdata: perfdata,
			Results:  results,
		})
	}
}

// configFromRequest builds a ProbeConfig from the shared tool arguments.
func configFromRequest(request mcplib.CallToolRequest, needURL bool) (domain.ProbeConfig, *mcplib.CallToolResult) {
	var cfg domain.ProbeConfig

	if needURL {
		url, err := request.RequireString("url")
		if err != nil {
			return cfg, errorResult(err.Error())
		}
		cfg.URL = url
	}

	attributes, err := request.RequireString("attributes")
	if err != nil {
		return cfg, errorResult(err.Error())
	}

	args := request.GetArguments()
	seconds, _ := args["timeout"].(float64)
	ignoreSSL, _ := args["ignoressl"].(bool)

	cfg.Attributes = splitList(attributes)
	cfg.Warning = splitList(stringArg(args, "warning"))
	cfg.Critical = splitList(stringArg(args, "critical"))
	cfg.Divisor = splitList(stringArg(args, "divisor"))
	cfg.Perfvars = splitList(stringArg(args, "perfvars"))
	cfg.Outputvars = splitList(stringArg(args, "outputvars"))
	cfg.Timeout = time.Duration(seconds) * time.Second
	cfg.Metadata = stringArg(args, "metadata")
	cfg.ContentType = stringArg(args, "contenttype")
	cfg.IgnoreSSL = ignoreSSL

	return cfg, nil
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// reportResult renders a check report as a JSON tool result, including the
// plugin line and exit code a scheduler would see.
func reportResult(rep *domain.CheckReport) (*mcplib.CallToolResult, error) {
	payload := struct {
		Line     string `json:"line"`
		ExitCode int    `json:"exit_code"`
		*domain.CheckReport
	}{
		Line:        rep.Line(),
		ExitCode:    rep.Status.ExitCode(),
		CheckReport: rep,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
