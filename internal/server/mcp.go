package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wethinkt/go-lightbox/internal/media"
	"github.com/wethinkt/go-lightbox/internal/tuilog"
	"github.com/wethinkt/go-lightbox/internal/version"
	"github.com/wethinkt/go-lightbox/internal/viewer"
)

// MCPServer exposes a viewer session as MCP tools.
type MCPServer struct {
	server  *mcp.Server
	session *Session
}

// NewMCPServer creates an MCP server with the viewer tools registered.
func NewMCPServer(session *Session) *MCPServer {
	tuilog.Log.Info("NewMCPServer: creating MCP server")
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "lightbox",
		Version: version.Get(),
	}, nil)

	ms := &MCPServer{
		server:  server,
		session: session,
	}
	ms.registerTools()
	return ms
}

// registerTools adds the viewer tools to the MCP server.
func (ms *MCPServer) registerTools() {
	mcp.AddTool(ms.server, &mcp.Tool{
		Name:        "list_items",
		Description: "List the items of the collection in viewer order",
	}, ms.handleListItems)

	mcp.AddTool(ms.server, &mcp.Tool{
		Name:        "get_viewer",
		Description: "Get the viewer state: open flag, index, zoom, rotation, load error and current item",
	}, ms.handleGetViewer)

	mcp.AddTool(ms.server, &mcp.Tool{
		Name:        "open_item",
		Description: "Open the viewer on the item at index, resetting zoom and rotation",
	}, ms.handleOpenItem)

	mcp.AddTool(ms.server, &mcp.Tool{
		Name:        "close_viewer",
		Description: "Close the viewer",
	}, ms.handleCloseViewer)

	mcp.AddTool(ms.server, &mcp.Tool{
		Name:        "navigate",
		Description: "Move circularly to the previous or next item",
	}, ms.handleNavigate)

	mcp.AddTool(ms.server, &mcp.Tool{
		Name:        "zoom",
		Description: "Zoom in or out by one step (0.25) within 0.5 to 3",
	}, ms.handleZoom)

	mcp.AddTool(ms.server, &mcp.Tool{
		Name:        "rotate",
		Description: "Rotate the view a quarter turn clockwise",
	}, ms.handleRotate)

	mcp.AddTool(ms.server, &mcp.Tool{
		Name:        "press_key",
		Description: "Deliver a key (Escape, ArrowLeft, ArrowRight, +, =, -, r, R) to the viewer as if typed",
	}, ms.handlePressKey)
}

// Tool input/output types

type emptyInput struct{}

type indexInput struct {
	Index int `json:"index" jsonschema:"zero-based item index"`
}

type directionInput struct {
	Direction string `json:"direction" jsonschema:"previous/next for navigate, in/out for zoom"`
}

type keyInput struct {
	Key string `json:"key" jsonschema:"standard key name"`
}

type itemInfo struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Source    string `json:"source"`
	Type      string `json:"type"`
	MediaType string `json:"media_type,omitempty"`
	Size      int64  `json:"size"`
}

type listItemsOutput struct {
	Items []itemInfo `json:"items"`
}

type viewerOutput struct {
	Open      bool      `json:"open"`
	Index     int       `json:"index"`
	Zoom      float64   `json:"zoom"`
	Rotation  int       `json:"rotation"`
	LoadError bool      `json:"load_error"`
	Count     int       `json:"count"`
	Item      *itemInfo `json:"item,omitempty"`
}

type pressKeyOutput struct {
	Handled bool         `json:"handled"`
	Viewer  viewerOutput `json:"viewer"`
}

func toItemInfo(index int, item media.Item) itemInfo {
	return itemInfo{
		Index:     index,
		Name:      item.Name,
		Source:    item.Source,
		Type:      string(item.FileType),
		MediaType: item.MediaType,
		Size:      item.Size,
	}
}

func toViewerOutput(snap viewer.Snapshot) viewerOutput {
	out := viewerOutput{
		Open:      snap.Open,
		Index:     snap.Index,
		Zoom:      snap.Zoom,
		Rotation:  snap.Rotation,
		LoadError: snap.LoadError,
		Count:     snap.Count,
	}
	if snap.Item != nil {
		info := toItemInfo(snap.Index, *snap.Item)
		out.Item = &info
	}
	return out
}

func textResult(v any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: formatJSON(v)}},
	}
}

func (ms *MCPServer) handleListItems(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, listItemsOutput, error) {
	items := ms.session.Items()
	out := listItemsOutput{Items: make([]itemInfo, len(items))}
	for i, item := range items {
		out.Items[i] = toItemInfo(i, item)
	}
	return textResult(out), out, nil
}

func (ms *MCPServer) handleGetViewer(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, viewerOutput, error) {
	out := toViewerOutput(ms.session.Snapshot())
	return textResult(out), out, nil
}

func (ms *MCPServer) handleOpenItem(ctx context.Context, req *mcp.CallToolRequest, input indexInput) (*mcp.CallToolResult, viewerOutput, error) {
	snap, err := ms.session.Open(input.Index)
	if err != nil {
		return nil, viewerOutput{}, err
	}
	out := toViewerOutput(snap)
	return textResult(out), out, nil
}

func (ms *MCPServer) handleCloseViewer(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, viewerOutput, error) {
	out := toViewerOutput(ms.session.Close())
	return textResult(out), out, nil
}

func (ms *MCPServer) handleNavigate(ctx context.Context, req *mcp.CallToolRequest, input directionInput) (*mcp.CallToolResult, viewerOutput, error) {
	snap, err := ms.session.Navigate(input.Direction)
	if err != nil {
		return nil, viewerOutput{}, err
	}
	out := toViewerOutput(snap)
	return textResult(out), out, nil
}

func (ms *MCPServer) handleZoom(ctx context.Context, req *mcp.CallToolRequest, input directionInput) (*mcp.CallToolResult, viewerOutput, error) {
	snap, err := ms.session.Zoom(input.Direction)
	if err != nil {
		return nil, viewerOutput{}, err
	}
	out := toViewerOutput(snap)
	return textResult(out), out, nil
}

func (ms *MCPServer) handleRotate(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, viewerOutput, error) {
	out := toViewerOutput(ms.session.Rotate())
	return textResult(out), out, nil
}

func (ms *MCPServer) handlePressKey(ctx context.Context, req *mcp.CallToolRequest, input keyInput) (*mcp.CallToolResult, pressKeyOutput, error) {
	snap, handled := ms.session.PressKey(input.Key)
	out := pressKeyOutput{Handled: handled, Viewer: toViewerOutput(snap)}
	return textResult(out), out, nil
}

// RunStdio serves MCP over stdin/stdout, logging protocol traffic to stderr.
func (ms *MCPServer) RunStdio(ctx context.Context) error {
	return ms.server.Run(ctx, &mcp.LoggingTransport{Transport: &mcp.StdioTransport{}, Writer: os.Stderr})
}

// SSEHandler serves MCP over the SSE transport.
func (ms *MCPServer) SSEHandler() http.Handler {
	return mcp.NewSSEHandler(func(req *http.Request) *mcp.Server { return ms.server }, nil)
}

// Server returns the underlying MCP server.
func (ms *MCPServer) Server() *mcp.Server { return ms.server }

func formatJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
