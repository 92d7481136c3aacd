package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func stringProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and color model. Use it to inspect source images, backgrounds and label maps.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": stringProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},

		// Segmentation
		{
			Name: "image_segment",
			Description: "Segment an image into subject and background. Returns the source, the binary mask (white = subject) and, " +
				"when a background image or color is given, the subject composited over that background. All images are base64 PNG " +
				"at the source's resolution.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":             stringProperty("Absolute path to the source image"),
					"background_path":  stringProperty("Optional replacement background image. Stretched to the source size."),
					"background_color": stringProperty("Optional solid background color as #RRGGBB, or #RRGGBBAA (e.g. #00000000 for a transparent cutout). Ignored when background_path is set."),
					"label_map_path":   stringProperty("Optional label-map PNG exported by the segmentation model (one class index per pixel). Without it a luminance threshold is used."),
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Luminance level (1-255) for the threshold classifier. Default 128",
						"default":     128,
					},
					"invert": map[string]interface{}{
						"type":        "boolean",
						"description": "Treat dark pixels as the subject in the threshold classifier. Default false",
						"default":     false,
					},
					"feather": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian radius used to soften mask edges before compositing. Default 0 (hard edges)",
						"default":     0,
					},
					"input_size": map[string]interface{}{
						"type":        "integer",
						"description": "Square resolution the classifier receives. Default 513",
						"default":     513,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_extract_mask",
			Description: "Convert a label-map PNG (class index per pixel) into a binary mask: white where the class is non-zero, black for background.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": stringProperty("Absolute path to the label-map image"),
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Optional output width. Mask is stretched with nearest-neighbour sampling",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Optional output height. Mask is stretched with nearest-neighbour sampling",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_resize",
			Description: "Stretch an image to exactly width x height. Aspect ratio is not preserved.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": stringProperty("Absolute path to the image file"),
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Target width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Target height in pixels",
					},
					"filter": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"nearest", "linear", "lanczos"},
						"description": "Resampling filter. Default linear",
						"default":     "linear",
					},
				},
				"required": []string{"path", "width", "height"},
			},
		},
		{
			Name:        "image_composite",
			Description: "Composite an image over a background using a mask image (white = keep source, black = show background, gray = blend).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":             stringProperty("Absolute path to the source image"),
					"mask_path":        stringProperty("Absolute path to the mask image. Stretched to the source size"),
					"background_path":  stringProperty("Background image. Stretched to the source size"),
					"background_color": stringProperty("Solid background color as #RRGGBB or #RRGGBBAA, used when background_path is not set"),
					"feather": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian radius used to soften mask edges. Default 0",
						"default":     0,
					},
				},
				"required": []string{"path", "mask_path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
