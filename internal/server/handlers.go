package server

import (
	"encoding/json"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/segmentio/ksuid"

	"github.com/ironsheep/icon-tools-mcp/internal/imaging"
	"github.com/ironsheep/icon-tools-mcp/internal/transparency"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "icon_load", "icon_fix").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall executes a tool and wraps its result in MCP's content
// format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.debugf("tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return s.result(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": mustMarshalJSON(result)},
		},
	})
}

// executeTool dispatches a tool call to its handler.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "icon_load":
		return s.handleIconLoad(args)
	case "icon_sample_color":
		return s.handleIconSampleColor(args)
	case "icon_sample_colors_multi":
		return s.handleIconSampleColorsMulti(args)
	case "icon_alpha_coverage":
		return s.handleIconAlphaCoverage(args)
	case "icon_crop":
		return s.handleIconCrop(args)
	case "icon_preview":
		return s.handleIconPreview(args)
	case "icon_strip_background":
		return s.handleIconStripBackground(args)
	case "icon_fix":
		return s.handleIconFix(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments and checks the path is present.
func decodeArgs(args json.RawMessage, v interface{ path() string }) error {
	if len(args) == 0 {
		return fmt.Errorf("missing arguments")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return err
	}
	if v.path() == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

type pathArgs struct {
	Path string `json:"path"`
}

func (a *pathArgs) path() string { return a.Path }

// thresholdArgs holds optional overrides of the server's default options.
type thresholdArgs struct {
	WhiteMin    *uint8 `json:"white_min,omitempty"`
	GreyMaxDiff *uint8 `json:"grey_max_diff,omitempty"`
	GreyMin     *uint8 `json:"grey_min,omitempty"`
	LightMin    *uint8 `json:"light_min,omitempty"`
	Iterations  *int   `json:"iterations,omitempty"`
}

func (t thresholdArgs) apply(base transparency.Options) (transparency.Options, error) {
	if t.WhiteMin != nil {
		base.WhiteMin = *t.WhiteMin
	}
	if t.GreyMaxDiff != nil {
		base.GreyMaxDiff = *t.GreyMaxDiff
	}
	if t.GreyMin != nil {
		base.GreyMin = *t.GreyMin
	}
	if t.LightMin != nil {
		base.LightMin = *t.LightMin
	}
	if t.Iterations != nil {
		base.ShaveIterations = *t.Iterations
	}
	if err := base.Validate(); err != nil {
		return base, err
	}
	return base, nil
}

// === Inspection Handlers ===

func (s *Server) handleIconLoad(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type sampleColorArgs struct {
	pathArgs
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleIconSampleColor(args json.RawMessage) (interface{}, error) {
	var a sampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type sampleColorsMultiArgs struct {
	pathArgs
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleIconSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a sampleColorsMultiArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(img, points)
}

func (s *Server) handleIconAlphaCoverage(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	stats := imaging.AlphaCoverage(img)
	return &stats, nil
}

type cropArgs struct {
	pathArgs
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleIconCrop(args json.RawMessage) (interface{}, error) {
	var a cropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

type previewArgs struct {
	pathArgs
	MaxSize  int    `json:"max_size"`
	Backdrop string `json:"backdrop"`
}

func (s *Server) handleIconPreview(args json.RawMessage) (interface{}, error) {
	var a previewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Preview(img, a.MaxSize, a.Backdrop)
}

// === Background Removal Handlers ===

// StripResult is returned by icon_strip_background and icon_fix.
type StripResult struct {
	// Path is the file that now holds the stripped image.
	Path string `json:"path"`

	// BackupPath is where icon_fix moved the original. Empty for
	// icon_strip_background.
	BackupPath string `json:"backup_path,omitempty"`

	Options transparency.Options `json:"options"`
	Report  transparency.Report  `json:"report"`
	Alpha   imaging.AlphaStats   `json:"alpha"`
}

type stripArgs struct {
	pathArgs
	thresholdArgs
	OutputPath string `json:"output_path"`
}

func (s *Server) handleIconStripBackground(args json.RawMessage) (interface{}, error) {
	var a stripArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	opts, err := a.apply(s.cfg.Defaults)
	if err != nil {
		return nil, err
	}

	out := a.OutputPath
	if out == "" {
		out = filepath.Join(s.cfg.OutputDir, ksuid.New().String()+"_stripped.png")
	} else if !strings.EqualFold(filepath.Ext(out), ".png") {
		return nil, fmt.Errorf("%w: %s", imaging.ErrNotPNG, out)
	}

	result, err := s.strip(a.Path, opts)
	if err != nil {
		return nil, err
	}
	if err := imaging.SavePNG(out, result.img); err != nil {
		return nil, err
	}
	s.cache.Evict(out)

	s.debugf("stripped %s -> %s (filled %d, shaved %d)", a.Path, out, result.report.Filled, result.report.Shaved)
	return &StripResult{
		Path:    out,
		Options: opts,
		Report:  result.report,
		Alpha:   imaging.AlphaCoverage(result.img),
	}, nil
}

type fixArgs struct {
	pathArgs
	thresholdArgs
}

func (s *Server) handleIconFix(args json.RawMessage) (interface{}, error) {
	var a fixArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	opts, err := a.apply(s.cfg.Defaults)
	if err != nil {
		return nil, err
	}

	result, err := s.strip(a.Path, opts)
	if err != nil {
		return nil, err
	}
	backup, err := imaging.ReplaceWithBackup(a.Path, result.img)
	if err != nil {
		return nil, err
	}
	s.cache.Evict(a.Path)

	s.debugf("fixed %s in place, original kept at %s", a.Path, backup)
	return &StripResult{
		Path:       a.Path,
		BackupPath: backup,
		Options:    opts,
		Report:     result.report,
		Alpha:      imaging.AlphaCoverage(result.img),
	}, nil
}

type stripped struct {
	img    *image.NRGBA
	report transparency.Report
}

// strip runs the transform on a private copy of the cached image.
func (s *Server) strip(path string, opts transparency.Options) (*stripped, error) {
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	out, report := transparency.New(opts).ProcessReport(imaging.CloneNRGBA(img))
	return &stripped{img: out, report: report}, nil
}
