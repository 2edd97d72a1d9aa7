package httpapi

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/icon-tools-mcp/internal/transparency"
)

func newTestRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(logger, transparency.DefaultOptions())
}

// iconPNG is a 6x6 white icon with a dark 2x2 center.
func iconPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 6, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	for y := 2; y < 4; y++ {
		for x := 2; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{20, 20, 20, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func stripRequest(t *testing.T, file []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if file != nil {
		fw, err := mw.CreateFormFile("image", "icon.png")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/strip", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestNewRouter_LeavesGinModeAlone(t *testing.T) {
	newTestRouter()
	assert.Equal(t, gin.TestMode, gin.Mode())
}

func TestHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestStrip(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, stripRequest(t, iconPNG(t), nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "32", w.Header().Get(HeaderFilled))
	assert.Equal(t, "0", w.Header().Get(HeaderShaved))
	assert.Equal(t, "1", w.Header().Get(HeaderPasses))

	out, err := png.Decode(w.Body)
	require.NoError(t, err)
	_, _, _, a := out.At(0, 0).RGBA()
	assert.Zero(t, a, "border pixel should be transparent")
	_, _, _, a = out.At(2, 2).RGBA()
	assert.NotZero(t, a, "foreground should stay opaque")
}

func TestStrip_ThresholdOverrides(t *testing.T) {
	w := httptest.NewRecorder()
	// Nothing in the icon qualifies as background with these thresholds.
	fields := map[string]string{"white_min": "255", "grey_min": "255", "iterations": "0"}
	newTestRouter().ServeHTTP(w, stripRequest(t, iconPNG(t), fields))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "0", w.Header().Get(HeaderFilled))
	assert.Equal(t, "0", w.Header().Get(HeaderPasses))
}

func TestStrip_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		file   []byte
		fields map[string]string
	}{
		{"missing image", nil, nil},
		{"not an image", []byte("plain text"), nil},
		{"threshold out of range", iconPNG(t), map[string]string{"white_min": "256"}},
		{"threshold not a number", iconPNG(t), map[string]string{"light_min": "bright"}},
		{"iterations out of range", iconPNG(t), map[string]string{"iterations": "-1"}},
	}

	router := newTestRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, stripRequest(t, tt.file, tt.fields))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
