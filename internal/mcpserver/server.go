// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Mauvelian calendar tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/mauvelian/internal/dateparse"
	"github.com/starford/mauvelian/internal/dateservice"
)

// Server wraps the MCP server with calendar tools.
type Server struct {
	mcp *server.MCPServer
	svc *dateservice.Service
}

// New creates a new MCP server with all calendar tools registered.
func New(svc *dateservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Mauvelian",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("convert_to_mauvelian",
		mcp.WithDescription("Convert a real calendar day to its Mauvelian date. "+
			"Requires a stored reference pair; read the mauvelian://calendar-primer "+
			"resource for the date forms."),
		mcp.WithString("real", mcp.Required(), mcp.Description("Real calendar day as YYYY-MM-DD")),
	), s.convertToMauvelian)

	s.mcp.AddTool(mcp.NewTool("convert_to_real",
		mcp.WithDescription("Convert a Mauvelian date to its real calendar day. "+
			"Requires a stored reference pair."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Mauvelian date, e.g. '1306 256' or '1306 76 Scion'")),
	), s.convertToReal)

	s.mcp.AddTool(mcp.NewTool("mauvelian_today",
		mcp.WithDescription("Today's date on the Mauvelian calendar."),
	), s.today)

	s.mcp.AddTool(mcp.NewTool("days_between",
		mcp.WithDescription("Absolute distance in days between two Mauvelian dates. "+
			"Works without a reference pair."),
		mcp.WithString("a", mcp.Required(), mcp.Description("First Mauvelian date")),
		mcp.WithString("b", mcp.Required(), mcp.Description("Second Mauvelian date")),
	), s.daysBetween)

	s.mcp.AddTool(mcp.NewTool("describe_date",
		mcp.WithDescription("Expand a Mauvelian date into year, day of year, season and "+
			"display form. Includes the real calendar day when a reference pair is stored."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Mauvelian date, e.g. '1306 256' or '1306 76 Scion'")),
	), s.describeDate)

	s.mcp.AddTool(mcp.NewTool("list_events",
		mcp.WithDescription("List almanac events in calendar order."),
		mcp.WithString("query", mcp.Description("Optional search in event names and notes")),
	), s.listEvents)

	s.mcp.AddTool(mcp.NewTool("save_event",
		mcp.WithDescription("Save a named event in the almanac."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Event name, unique in the almanac")),
		mcp.WithString("date", mcp.Required(), mcp.Description("Mauvelian date the event falls on")),
		mcp.WithString("note", mcp.Description("Optional free-form note")),
		mcp.WithBoolean("replace", mcp.Description("Overwrite an existing event with the same name")),
	), s.saveEvent)

	s.mcp.AddTool(mcp.NewTool("delete_event",
		mcp.WithDescription("Delete an almanac event by name."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Event name")),
	), s.deleteEvent)

	// Resource: calendar primer.
	s.mcp.AddResource(
		mcp.NewResource("mauvelian://calendar-primer", "Calendar Primer",
			mcp.WithResourceDescription("Structure of the Mauvelian calendar and the date forms the tools accept."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readCalendarPrimer,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) convertToMauvelian(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("real")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	day, err := dateparse.Real(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	detail, err := s.svc.ToMauvelian(ctx, day)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(detail, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) convertToReal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := dateparse.Mauvelian(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	detail, err := s.svc.ToReal(ctx, d)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(detail, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) today(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	detail, err := s.svc.Today(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(detail, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) daysBetween(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawA, err := req.RequireString("a")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rawB, err := req.RequireString("b")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a, err := dateparse.Mauvelian(rawA)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := dateparse.Mauvelian(rawB)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strconv.Itoa(s.svc.Between(ctx, a, b))), nil
}

func (s *Server) describeDate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := dateparse.Mauvelian(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(s.svc.DescribeDate(ctx, d), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")

	var (
		events []dateservice.EventDetail
		err    error
	)
	if query != "" {
		events, err = s.svc.SearchEvents(ctx, query, 20)
	} else {
		events, err = s.svc.ListEvents(ctx)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(events) == 0 {
		return mcp.NewToolResultText("no events found"), nil
	}
	out, _ := json.MarshalIndent(events, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) saveEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := dateparse.Mauvelian(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note := req.GetString("note", "")
	replace := req.GetBool("replace", false)

	if _, err := s.svc.SaveEvent(ctx, name, d, note, replace); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("saved: %s", name)), nil
}

func (s *Server) deleteEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.DeleteEvent(ctx, name); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", name)), nil
}

func (s *Server) readCalendarPrimer(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "mauvelian://calendar-primer",
			MIMEType: "text/markdown",
			Text:     CalendarPrimer,
		},
	}, nil
}
