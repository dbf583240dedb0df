// Package mcp exposes the solver over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call is translated into a
// request against the REST API, so MCP agents and HTTP clients always
// observe the same puzzles and solve records.
package mcp
