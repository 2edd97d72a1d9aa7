// Package httpapi exposes the background stripper as an HTTP service.
package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ironsheep/icon-tools-mcp/internal/imaging"
	"github.com/ironsheep/icon-tools-mcp/internal/transparency"
)

// MaxUploadBytes caps the size of a request body.
const MaxUploadBytes = 16 << 20

// Response headers carrying the transform report.
const (
	HeaderFilled = "X-Icon-Filled"
	HeaderShaved = "X-Icon-Shaved"
	HeaderPasses = "X-Icon-Passes"
)

type handler struct {
	logger   *slog.Logger
	defaults transparency.Options
}

// NewRouter builds the gin engine serving GET /healthz and POST /v1/strip.
// Form fields on a strip request override defaults for that request only.
// gin's global mode is left to the caller.
func NewRouter(logger *slog.Logger, defaults transparency.Options) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.MaxMultipartMemory = MaxUploadBytes
	r.Use(gin.Recovery(), requestLogger(logger))

	h := &handler{logger: logger, defaults: defaults}
	r.GET("/healthz", h.health)

	v1 := r.Group("/v1")
	v1.POST("/strip", h.strip)

	return r
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"duration", time.Since(start),
		)
	}
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) strip(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes)

	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds upload limit"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing multipart field \"image\""})
		return
	}

	opts, err := h.options(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	src, format, err := imaging.DecodeReader(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, report := transparency.New(opts).ProcessReport(src)

	var buf bytes.Buffer
	if err := imaging.EncodePNG(&buf, out); err != nil {
		h.logger.Error("encode failed", "file", fh.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Debug("stripped",
		"file", fh.Filename,
		"format", format,
		"filled", report.Filled,
		"shaved", report.Shaved,
		"passes", report.Passes,
	)

	c.Header(HeaderFilled, strconv.Itoa(report.Filled))
	c.Header(HeaderShaved, strconv.Itoa(report.Shaved))
	c.Header(HeaderPasses, strconv.Itoa(report.Passes))
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// options applies the optional threshold form fields to the defaults.
func (h *handler) options(c *gin.Context) (transparency.Options, error) {
	opts := h.defaults

	bytesFields := []struct {
		name string
		dst  *uint8
	}{
		{"white_min", &opts.WhiteMin},
		{"grey_max_diff", &opts.GreyMaxDiff},
		{"grey_min", &opts.GreyMin},
		{"light_min", &opts.LightMin},
	}
	for _, f := range bytesFields {
		v, ok := c.GetPostForm(f.name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return opts, fmt.Errorf("invalid %s: %q", f.name, v)
		}
		*f.dst = uint8(n)
	}

	if v, ok := c.GetPostForm("iterations"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid iterations: %q", v)
		}
		opts.ShaveIterations = n
	}

	return opts, opts.Validate()
}
