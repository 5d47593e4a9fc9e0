package server

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/mark3labs/mcp-go/mcp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	statusURI       = "dawctl://status"
	capabilitiesURI = "dawctl://capabilities"
)

// registerResources exposes read-only state as MCP resources, so clients
// can inspect the target application without spending a tool call.
func (s *Server) registerResources() {
	s.mcp.AddResource(mcp.NewResource(statusURI, "status",
		mcp.WithResourceDescription("Target application liveness and window state"),
		mcp.WithMIMEType("application/json"),
	), s.readStatus)

	s.mcp.AddResource(mcp.NewResource(capabilitiesURI, "capabilities",
		mcp.WithResourceDescription("Registered tools and their input schemas"),
		mcp.WithMIMEType("application/json"),
	), s.readCapabilities)
}

func (s *Server) readStatus(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	status := map[string]interface{}{
		"running":      false,
		"window_found": false,
	}
	if running, err := s.wf.ProcessRunning(); err == nil {
		status["running"] = running
	}
	if w, err := s.eng.Locator().Current(); err == nil {
		status["window_found"] = true
		status["window"] = w.Title
		status["bounds"] = fmt.Sprintf("%d,%d,%d,%d", w.Bounds.X, w.Bounds.Y, w.Bounds.Width, w.Bounds.Height)
	}
	return jsonResource(statusURI, status)
}

func (s *Server) readCapabilities(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	tools := make([]map[string]interface{}, 0, len(s.descriptors))
	for _, d := range s.descriptors {
		tools = append(tools, map[string]interface{}{
			"name":        d.Name,
			"description": d.Description,
			"schema":      d.Schema,
		})
	}
	return jsonResource(capabilitiesURI, map[string]interface{}{"tools": tools})
}

func jsonResource(uri string, v interface{}) ([]mcp.ResourceContents, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{mcp.TextResourceContents{
		URI:      uri,
		MIMEType: "application/json",
		Text:     string(b),
	}}, nil
}
