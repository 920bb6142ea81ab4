package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"usersync/config"
	httpdelivery "usersync/internal/delivery/http"
	"usersync/internal/delivery/middleware"
	"usersync/internal/infra/routecfg"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedProbability float64

func (p fixedProbability) Probability() float64 {
	return float64(p)
}

// seenRequest is what an upstream observed.
type seenRequest struct {
	Method string `json:"method"`
	URI    string `json:"uri"`
	Host   string `json:"host"`
	Body   string `json:"body"`
}

type upstream struct {
	*httptest.Server
	mu   sync.Mutex
	hits int
}

func newUpstream(t *testing.T, name string) *upstream {
	t.Helper()

	u := &upstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.hits++
		u.mu.Unlock()

		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Served-By", name)
		_ = json.NewEncoder(w).Encode(seenRequest{
			Method: r.Method,
			URI:    r.URL.RequestURI(),
			Host:   r.Host,
			Body:   string(body),
		})
	}))
	t.Cleanup(u.Close)

	return u
}

func (u *upstream) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.hits
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	echo    *echo.Echo
	gateway *Gateway
	v1      *upstream
	v2      *upstream
	order   *upstream
}

func newFixture(t *testing.T, source interface{ Probability() float64 }) *fixture {
	t.Helper()

	f := &fixture{
		v1:    newUpstream(t, TargetUserV1),
		v2:    newUpstream(t, TargetUserV2),
		order: newUpstream(t, TargetOrder),
	}

	cfg := &config.Config{
		Gateway: &config.GatewayConfig{
			UserV1URL: f.v1.URL,
			UserV2URL: f.v2.URL,
			OrderURL:  f.order.URL,
		},
	}
	cfg.ApplyDefaults()

	gw, err := New(Params{Config: cfg, Source: source, Logger: discardLogger()})
	require.NoError(t, err)

	f.gateway = gw
	f.echo = httpdelivery.NewEcho(cfg, discardLogger())
	gw.RegisterRoutes(f.echo)

	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Host = "gateway.example:5000"
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	f.echo.ServeHTTP(rec, req)

	return rec
}

func decodeSeen(t *testing.T, rec *httptest.ResponseRecorder) seenRequest {
	t.Helper()

	var seen seenRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &seen))

	return seen
}

func TestGateway_Health(t *testing.T) {
	f := newFixture(t, fixedProbability(0.5))

	rec := f.do(http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","component":"api_gateway"}`, rec.Body.String())
	assert.Zero(t, f.v1.count()+f.v2.count()+f.order.count())
}

func TestGateway_UserRoutingExtremes(t *testing.T) {
	tests := []struct {
		name   string
		p      float64
		target string
	}{
		{name: "P=1 always legacy", p: 1, target: TargetUserV1},
		{name: "P=0 always modern", p: 0, target: TargetUserV2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, fixedProbability(tt.p))

			for range 50 {
				rec := f.do(http.MethodGet, "/user/u1", "")
				require.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, tt.target, rec.Header().Get(middleware.HeaderUpstreamTarget))
				assert.Equal(t, tt.target, rec.Header().Get("X-Served-By"))
			}
		})
	}
}

func TestGateway_UserRoutingFraction(t *testing.T) {
	f := newFixture(t, fixedProbability(0.3))
	f.gateway.Users().WithDraw(rand.New(rand.NewPCG(7, 11)).Float64)

	const n = 2000
	for range n {
		rec := f.do(http.MethodGet, "/user/u1", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	fraction := float64(f.v1.count()) / n
	assert.InDelta(t, 0.3, fraction, 0.05)
	assert.Equal(t, n, f.v1.count()+f.v2.count())
}

func TestGateway_DecisionUsesDrawAgainstP(t *testing.T) {
	f := newFixture(t, fixedProbability(0.5))

	f.gateway.Users().WithDraw(func() float64 { return 0.49 })
	assert.Equal(t, TargetUserV1, f.gateway.Users().Pick().Name)

	f.gateway.Users().WithDraw(func() float64 { return 0.5 })
	assert.Equal(t, TargetUserV2, f.gateway.Users().Pick().Name)
}

func TestGateway_ReadsRoutingFileOnEveryDecision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"P": 1}`), 0o600))

	f := newFixture(t, routecfg.NewFileSourceAt(path, discardLogger()))

	rec := f.do(http.MethodGet, "/user/u1", "")
	assert.Equal(t, TargetUserV1, rec.Header().Get(middleware.HeaderUpstreamTarget))

	require.NoError(t, os.WriteFile(path, []byte(`{"P": 0}`), 0o600))

	rec = f.do(http.MethodGet, "/user/u1", "")
	assert.Equal(t, TargetUserV2, rec.Header().Get(middleware.HeaderUpstreamTarget))
}

func TestGateway_ForwardingPreservesRequest(t *testing.T) {
	f := newFixture(t, fixedProbability(1))

	rec := f.do(http.MethodPut, "/user/u1?trace=yes", `{"email":"b@x.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	seen := decodeSeen(t, rec)
	assert.Equal(t, http.MethodPut, seen.Method)
	assert.Equal(t, "/user/u1?trace=yes", seen.URI)
	assert.JSONEq(t, `{"email":"b@x.com"}`, seen.Body)

	upstreamURL, err := url.Parse(f.v1.URL)
	require.NoError(t, err)
	assert.Equal(t, upstreamURL.Host, seen.Host)
	assert.NotEqual(t, "gateway.example:5000", seen.Host)
}

func TestGateway_OrderRoutesSkipRandomness(t *testing.T) {
	f := newFixture(t, fixedProbability(1))

	requests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/order", `{"order_id":"o1"}`},
		{http.MethodGet, "/order/o1", ""},
		{http.MethodPut, "/order/o1", `{"status":"paid"}`},
		{http.MethodGet, "/orders/paid", ""},
	}

	for _, r := range requests {
		rec := f.do(r.method, r.path, r.body)
		require.Equal(t, http.StatusOK, rec.Code, r.path)
		assert.Equal(t, TargetOrder, rec.Header().Get(middleware.HeaderUpstreamTarget))

		seen := decodeSeen(t, rec)
		assert.Equal(t, r.method, seen.Method)
		assert.Equal(t, r.path, seen.URI)
	}

	assert.Equal(t, len(requests), f.order.count())
	assert.Zero(t, f.v1.count()+f.v2.count())
}

func TestGateway_UnreachableUpstream(t *testing.T) {
	f := newFixture(t, fixedProbability(0))
	f.v2.Close()

	rec := f.do(http.MethodPost, "/user", `{"user_id":"u1"}`)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Details string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "SERVICE_UNREACHABLE", body.Error.Code)
	assert.NotEmpty(t, body.Error.Details)
	assert.Zero(t, f.v1.count())
}

func TestGateway_UpstreamTimeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(slow.Close)

	cfg := &config.Config{
		Gateway: &config.GatewayConfig{
			UserV1URL:       slow.URL,
			UserV2URL:       slow.URL,
			OrderURL:        slow.URL,
			UpstreamTimeout: 50 * time.Millisecond,
		},
	}
	cfg.ApplyDefaults()

	gw, err := New(Params{Config: cfg, Source: fixedProbability(0.5), Logger: discardLogger()})
	require.NoError(t, err)
	e := httpdelivery.NewEcho(cfg, discardLogger())
	gw.RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, "/orders/paid", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestNew_RejectsBadUpstreamURL(t *testing.T) {
	cfg := &config.Config{
		Gateway: &config.GatewayConfig{UserV1URL: "not a url"},
	}
	cfg.ApplyDefaults()

	_, err := New(Params{Config: cfg, Source: fixedProbability(0.5), Logger: discardLogger()})

	assert.Error(t, err)
}
