package gateway_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bistro-booking/api-gateway/internal/gateway"
	"bistro-booking/api-gateway/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonResponse(code int, body string) *http.Response {
	resp := &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_RouteHandler_Upstreams(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		path    string
		wantURL string
	}{
		{name: "menu", method: http.MethodGet, path: "/api/menu/getAll", wantURL: "http://api-svc/api/menu/getAll"},
		{name: "checkout success keeps query", method: http.MethodGet, path: "/api/checkout/success?session_id=cs_1", wantURL: "http://api-svc/api/checkout/success?session_id=cs_1"},
		{name: "reservations", method: http.MethodPost, path: "/api/reservations/create", wantURL: "http://api-svc/api/reservations/create"},
		{name: "notifications", method: http.MethodPost, path: "/api/notifications/subscribe", wantURL: "http://notify-svc/api/notifications/subscribe"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(gateway.Config{
				APISvcURL:    "http://api-svc/",
				NotifySvcURL: "http://notify-svc",
			}, mockClient)

			mockClient.On("Do", mock.MatchedBy(func(r *http.Request) bool {
				return r.URL.String() == testCase.wantURL && r.Header.Get("x-auth-token") == "tok"
			})).Return(jsonResponse(http.StatusCreated, `{"ok":true}`), nil).Once()

			req := httptest.NewRequest(testCase.method, testCase.path, strings.NewReader(`{}`))
			req.Header.Set("x-auth-token", "tok")
			rr := httptest.NewRecorder()

			gw.RouteHandler(rr, req)

			assert.Equal(t, http.StatusCreated, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
		})
	}
}

func TestGateway_RouteHandler_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{APISvcURL: "http://invalid"}, mockClient)

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/order/all", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestGateway_ServesSPA(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	router := gateway.NewGateway(gateway.Config{StaticDir: dir}, nil).SetupRoutes()

	tests := []struct {
		path     string
		wantBody string
	}{
		{path: "/", wantBody: "<html>app</html>"},
		{path: "/checkout/success", wantBody: "<html>app</html>"},
		{path: "/app.js", wantBody: "console.log(1)"},
		{path: "/static/app.js", wantBody: "console.log(1)"},
	}

	for _, testCase := range tests {
		t.Run(testCase.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, testCase.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), testCase.wantBody)
		})
	}
}
