package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/starford/mauvelian/internal/dateservice"
	"github.com/starford/mauvelian/internal/mcpserver"
)

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:   "mcp",
		Usage:  "Run the MCP server on stdin/stdout",
		Action: runMCP,
	}
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	return withService(ctx, cmd, func(svc *dateservice.Service) error {
		return mcpserver.New(svc).ServeStdio()
	})
}
