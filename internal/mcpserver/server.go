package mcpserver

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nextgen-2026/futureforged"
	"github.com/nextgen-2026/futureforged/render"
	"go.uber.org/zap"
)

const ToolName = "generate_roadmap"

// RoadmapGenerator is satisfied by *futureforged.Generator.
type RoadmapGenerator interface {
	GenerateRoadmap(ctx context.Context, category futureforged.StudentCategory, profile futureforged.StudentProfile) (*futureforged.Roadmap, error)
}

type GenerateRoadmapArgs struct {
	Category    string `json:"category" jsonschema:"Student category: school or college"`
	Name        string `json:"name" jsonschema:"The student's name"`
	YearOrGrade string `json:"yearOrGrade" jsonschema:"Current school grade or college year"`
	Goals       string `json:"goals" jsonschema:"Ambitions and goals in the student's own words"`
}

// New returns an MCP server exposing the roadmap pipeline as a single tool.
func New(generator RoadmapGenerator, version string, log *zap.Logger) *mcp.Server {
	if log == nil {
		log = zap.NewNop()
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "futureforged", Version: version}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolName,
		Description: "Generate a personalized study roadmap, with steps, resources and a weekly schedule, for a school or college student.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args GenerateRoadmapArgs) (*mcp.CallToolResult, any, error) {
		category, err := futureforged.ParseStudentCategory(args.Category)
		if err != nil {
			return toolError(err), nil, nil
		}
		profile := futureforged.StudentProfile{
			Name:        args.Name,
			YearOrGrade: args.YearOrGrade,
			Goals:       args.Goals,
			Category:    category,
		}

		roadmap, err := generator.GenerateRoadmap(ctx, category, profile)
		if err != nil {
			log.Warn("mcp roadmap generation failed",
				zap.String("kind", string(futureforged.KindOf(err))),
				zap.String("reason", string(futureforged.ReasonOf(err))),
			)
			return toolError(err), nil, nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: render.Text(profile, roadmap)},
			},
			StructuredContent: roadmap,
		}, nil, nil
	})

	return server
}

// Run serves the MCP server over stdio until ctx is done or the client disconnects.
func Run(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// Handler serves the MCP server over streamable HTTP.
func Handler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{Stateless: true, JSONResponse: true})
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
