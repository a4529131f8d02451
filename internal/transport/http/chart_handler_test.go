package http

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "fundingpulse/internal/errors"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestChartHandler_RendersPNG(t *testing.T) {
	router := newTestRouter(t, sampleService(t))

	targets := []string{
		"/api/charts/overall/top-startups.png",
		"/api/charts/overall/verticals.png",
		"/api/charts/overall/cities.png",
		"/api/charts/overall/trend.png?trend=amount",
		"/api/charts/startups/Flipkart/yearly.png",
		"/api/charts/investors/Tiger%20Global/biggest.png",
		"/api/charts/investors/Tiger%20Global/verticals.png",
		"/api/charts/investors/Tiger%20Global/yearly.png",
	}

	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			w := doGet(t, router, target)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
			assert.True(t, bytes.HasPrefix(w.Body.Bytes(), pngMagic))
		})
	}
}

func TestChartHandler_EmptySelectionStillRenders(t *testing.T) {
	router := newTestRouter(t, sampleService(t))

	w := doGet(t, router, "/api/charts/investors/Nobody/yearly.png")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), pngMagic))
}

func TestChartHandler_UnknownChart(t *testing.T) {
	router := newTestRouter(t, sampleService(t))

	tests := []struct {
		target string
		view   string
	}{
		{"/api/charts/overall/pie.png", "overall"},
		{"/api/charts/startups/Flipkart/trend.png", "startup"},
		{"/api/charts/investors/Alibaba/cities.png", "investor"},
	}

	for _, tt := range tests {
		t.Run(tt.view, func(t *testing.T) {
			w := doGet(t, router, tt.target)

			assert.Equal(t, http.StatusNotFound, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, apierrors.TypeChartNotFound, body["type"])
			assert.Contains(t, body["detail"], tt.view)
			assert.Contains(t, body, "details")
		})
	}
}

func TestChartHandler_InvalidTrend(t *testing.T) {
	router := newTestRouter(t, sampleService(t))

	w := doGet(t, router, "/api/charts/overall/trend.png?trend=daily")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apierrors.TypeValidation, decodeBody(t, w)["type"])
}
