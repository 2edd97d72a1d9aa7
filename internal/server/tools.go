package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

// withThresholds adds the optional stripper threshold overrides to props.
func withThresholds(props map[string]interface{}) map[string]interface{} {
	props["white_min"] = map[string]interface{}{
		"type":        "integer",
		"minimum":     0,
		"maximum":     255,
		"description": "Every channel must exceed this for a pixel to count as near-white background. Default 240",
	}
	props["grey_max_diff"] = map[string]interface{}{
		"type":        "integer",
		"minimum":     0,
		"maximum":     255,
		"description": "Pairwise channel differences must be below this for a pixel to count as grey. Default 20",
	}
	props["grey_min"] = map[string]interface{}{
		"type":        "integer",
		"minimum":     0,
		"maximum":     255,
		"description": "Red must exceed this for a grey pixel to count as checkerboard background. Default 180",
	}
	props["light_min"] = map[string]interface{}{
		"type":        "integer",
		"minimum":     0,
		"maximum":     255,
		"description": "Every channel must exceed this for an edge pixel to be shaved as halo. Default 100",
	}
	props["iterations"] = map[string]interface{}{
		"type":        "integer",
		"minimum":     0,
		"maximum":     64,
		"description": "Maximum halo shaving passes. Default 4",
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Inspection
		{
			Name:        "icon_load",
			Description: "Load an image and return its dimensions, format and alpha coverage (how many pixels are transparent, partial or opaque).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "icon_sample_color",
			Description: "Get the color at a pixel and whether it classifies as background or shaveable halo.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x":    map[string]interface{}{"type": "integer", "description": "X coordinate (0-based, from left)"},
					"y":    map[string]interface{}{"type": "integer", "description": "Y coordinate (0-based, from top)"},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "icon_sample_colors_multi",
			Description: "Sample colors at several pixels in one call, e.g. corners and suspected halo.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string", "description": "Optional label for this point"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Array of points to sample",
					},
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "icon_alpha_coverage",
			Description: "Count transparent, partially transparent and opaque pixels, and report whether the border is already transparent.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "icon_crop",
			Description: "Crop a region and return it as base64 PNG. Enlargement uses nearest-neighbor so individual fringe pixels stay visible.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x1":   map[string]interface{}{"type": "integer", "description": "Left edge X coordinate (0-based)"},
					"y1":   map[string]interface{}{"type": "integer", "description": "Top edge Y coordinate (0-based)"},
					"x2":   map[string]interface{}{"type": "integer", "description": "Right edge X coordinate (exclusive)"},
					"y2":   map[string]interface{}{"type": "integer", "description": "Bottom edge Y coordinate (exclusive)"},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 4.0 to magnify). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "icon_preview",
			Description: "Render a thumbnail over a checkerboard or solid backdrop so transparency and leftover halo are visible.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"max_size": map[string]interface{}{
						"type":        "integer",
						"description": "Longest side of the thumbnail. Default 256",
						"default":     256,
					},
					"backdrop": map[string]interface{}{
						"type":        "string",
						"description": "\"checker\" or a #RRGGBB color. A dark color makes white halo obvious. Default checker",
						"default":     "checker",
					},
				},
				"required": []string{"path"},
			},
		},

		// Background removal
		{
			Name:        "icon_strip_background",
			Description: "Make a white or checkerboard background transparent and shave the light halo around the icon. Writes a new PNG and leaves the source untouched.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withThresholds(map[string]interface{}{
					"path": pathProperty,
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Where to write the PNG result. Defaults to a unique file in the server's output directory",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "icon_fix",
			Description: "Strip the background of a PNG in place. The original is kept next to it with a .backup suffix; the call fails if that backup already exists.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withThresholds(map[string]interface{}{
					"path": pathProperty,
				}),
				"required": []string{"path"},
			},
		},
	}
}
