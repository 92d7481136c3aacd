// Package server implements the MCP (Model Context Protocol) server for
// foreground segmentation and background replacement.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load an image and report its metadata
//   - image_segment: Classify, mask and optionally composite onto a new background
//   - image_extract_mask: Turn a label map into a binary mask
//   - image_resize: Stretch an image to exact dimensions
//   - image_composite: Blend a source over a background through a supplied mask
//
// Every tool call loads its inputs from disk. Nothing is cached between calls,
// so a replaced file is picked up by the next request.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "model unavailable: label map ..."
//
// # Usage
//
//	srv := server.New(server.Config{Logger: logger})
//	if err := srv.Run(ctx); err != nil {
//	    logger.Fatal("server error", zap.Error(err))
//	}
package server
