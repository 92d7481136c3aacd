package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/ironsheep/image-segment-mcp/internal/classifier"
	"github.com/ironsheep/image-segment-mcp/internal/imaging"
	"github.com/ironsheep/image-segment-mcp/internal/pipeline"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_segment").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", zap.String("tool", params.Name), zap.Error(err))
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads the images it needs, fresh for this call
//  4. Calls the imaging or pipeline function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_segment":
		return s.handleImageSegment(ctx, args)
	case "image_extract_mask":
		return s.handleImageExtractMask(args)
	case "image_resize":
		return s.handleImageResize(args)
	case "image_composite":
		return s.handleImageComposite(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return fmt.Errorf("missing arguments")
	}
	return json.Unmarshal(args, v)
}

// === Image Information ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(a.Path)
}

// === Segmentation ===

type imageSegmentArgs struct {
	Path            string  `json:"path"`
	BackgroundPath  string  `json:"background_path"`
	BackgroundColor string  `json:"background_color"`
	LabelMapPath    string  `json:"label_map_path"`
	Threshold       int     `json:"threshold"`
	Invert          bool    `json:"invert"`
	Feather         float64 `json:"feather"`
	InputSize       int     `json:"input_size"`
}

// SegmentResult holds the display artifacts of one segmentation. Composite is
// omitted in mask-only mode.
type SegmentResult struct {
	Mode       string                   `json:"mode"`
	Classifier string                   `json:"classifier"`
	GridWidth  int                      `json:"grid_width"`
	GridHeight int                      `json:"grid_height"`
	Stats      *imaging.MaskStatsResult `json:"stats"`
	Source     *imaging.EncodedImage    `json:"source"`
	Mask       *imaging.EncodedImage    `json:"mask"`
	Composite  *imaging.EncodedImage    `json:"composite,omitempty"`
}

func (s *Server) handleImageSegment(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageSegmentArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Threshold < 0 || a.Threshold > 255 {
		return nil, fmt.Errorf("threshold %d outside 0-255", a.Threshold)
	}
	if a.InputSize == 0 {
		a.InputSize = s.inputSize
	}

	source, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}

	c, kind, err := newClassifier(a)
	if err != nil {
		return nil, err
	}

	background, err := loadBackground(a.BackgroundPath, a.BackgroundColor, source.Bounds())
	if err != nil {
		return nil, err
	}

	p := &pipeline.Pipeline{
		Classifier: c,
		InputSize:  a.InputSize,
		Feather:    a.Feather,
		Logger:     s.logger.With(zap.String("path", a.Path), zap.String("classifier", kind)),
	}
	resp, err := p.Run(ctx, pipeline.Request{Source: source, Background: background})
	if err != nil {
		return nil, err
	}

	result := &SegmentResult{
		Mode:       string(resp.Mode),
		Classifier: kind,
		GridWidth:  resp.GridWidth,
		GridHeight: resp.GridHeight,
		Stats:      resp.Stats,
	}
	if result.Source, err = imaging.EncodePNG(resp.Source); err != nil {
		return nil, err
	}
	if result.Mask, err = imaging.EncodePNG(resp.Mask.Gray); err != nil {
		return nil, err
	}
	if resp.Composite != nil {
		if result.Composite, err = imaging.EncodePNG(resp.Composite); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// newClassifier picks the label-map classifier when a label map is given and
// the threshold classifier otherwise.
func newClassifier(a imageSegmentArgs) (classifier.Classifier, string, error) {
	if a.LabelMapPath != "" {
		c, err := classifier.NewLabelMapClassifier(a.LabelMapPath)
		if err != nil {
			return nil, "", err
		}
		return c, "label_map", nil
	}
	return classifier.NewThresholdClassifier(uint8(a.Threshold), a.Invert), "threshold", nil
}

// loadBackground returns the background image, a solid color of the given
// size, or nil when neither is requested.
func loadBackground(path, hex string, bounds image.Rectangle) (image.Image, error) {
	switch {
	case path != "":
		return imaging.Load(path)
	case hex != "":
		return imaging.SolidBackground(bounds.Dx(), bounds.Dy(), hex)
	}
	return nil, nil
}

type imageExtractMaskArgs struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ExtractMaskResult is a mask derived from a label map.
type ExtractMaskResult struct {
	GridWidth  int                      `json:"grid_width"`
	GridHeight int                      `json:"grid_height"`
	Stats      *imaging.MaskStatsResult `json:"stats"`
	Mask       *imaging.EncodedImage    `json:"mask"`
}

func (s *Server) handleImageExtractMask(args json.RawMessage) (interface{}, error) {
	var a imageExtractMaskArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	labels, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	grid, err := imaging.GridFromLabelImage(labels)
	if err != nil {
		return nil, err
	}
	mask, err := imaging.ExtractMask(grid)
	if err != nil {
		return nil, err
	}

	if a.Width > 0 || a.Height > 0 {
		w, h := a.Width, a.Height
		if w == 0 {
			w = grid.Width
		}
		if h == 0 {
			h = grid.Height
		}
		if mask, err = imaging.ResizeMask(mask, w, h); err != nil {
			return nil, err
		}
	}

	enc, err := imaging.EncodePNG(mask.Gray)
	if err != nil {
		return nil, err
	}
	return &ExtractMaskResult{
		GridWidth:  grid.Width,
		GridHeight: grid.Height,
		Stats:      imaging.MaskStats(mask),
		Mask:       enc,
	}, nil
}

// === Raster Operations ===

type imageResizeArgs struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Filter string `json:"filter"`
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	filter, err := imaging.ParseFilter(a.Filter)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	resized, err := imaging.Resize(img, a.Width, a.Height, filter)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(resized)
}

type imageCompositeArgs struct {
	Path            string  `json:"path"`
	MaskPath        string  `json:"mask_path"`
	BackgroundPath  string  `json:"background_path"`
	BackgroundColor string  `json:"background_color"`
	Feather         float64 `json:"feather"`
}

func (s *Server) handleImageComposite(args json.RawMessage) (interface{}, error) {
	var a imageCompositeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	source, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	w, h := source.Bounds().Dx(), source.Bounds().Dy()

	background, err := loadBackground(a.BackgroundPath, a.BackgroundColor, source.Bounds())
	if err != nil {
		return nil, err
	}
	if background == nil {
		return nil, fmt.Errorf("image_composite needs background_path or background_color")
	}
	if background, err = imaging.Resize(background, w, h, imaging.FilterLinear); err != nil {
		return nil, err
	}

	maskImg, err := imaging.Load(a.MaskPath)
	if err != nil {
		return nil, err
	}
	mask, err := imaging.MaskFromImage(maskImg)
	if err != nil {
		return nil, err
	}
	if mask, err = imaging.ResizeMask(mask, w, h); err != nil {
		return nil, err
	}
	if mask, err = imaging.FeatherMask(mask, a.Feather); err != nil {
		return nil, err
	}

	out, err := imaging.Composite(source, mask, background)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(out)
}
