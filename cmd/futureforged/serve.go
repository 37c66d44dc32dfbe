package main

import (
	"context"
	"fmt"

	"github.com/nextgen-2026/futureforged"
	"github.com/nextgen-2026/futureforged/internal/httpapi"
	"github.com/nextgen-2026/futureforged/internal/mcpserver"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	var withMCP bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the roadmap HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initLogger(); err != nil {
				return err
			}
			ctx := cmd.Context()
			shutdown, err := a.initTracing(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					a.logger.Warn("tracer shutdown failed", zap.Error(err))
				}
			}()

			generator, err := a.newGenerator()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.HTTP.Addr
			}

			routerCfg := httpapi.RouterConfig{
				Generator:      generator,
				Logger:         a.logger,
				AllowedOrigins: a.cfg.HTTP.AllowedOrigins,
				RequestTimeout: a.cfg.GetTimeout(),
			}
			if withMCP {
				routerCfg.MCPHandler = mcpserver.Handler(mcpserver.New(generator, version, a.logger))
			}
			return httpapi.NewServer(addr, routerCfg).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&withMCP, "mcp", false, "also serve the MCP tool over streamable HTTP at /mcp")
	return cmd
}

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the generate_roadmap tool over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol; logs stay on stderr.
			if err := a.initLogger(); err != nil {
				return err
			}
			generator, err := a.newGenerator()
			if err != nil {
				return err
			}
			return mcpserver.Run(cmd.Context(), mcpserver.New(generator, version, a.logger))
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the roadmap JSON schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := futureforged.RoadmapSchemaJSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}
