package dpsserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/arkdps/internal/calculator"
	"github.com/udisondev/arkdps/internal/config"
	"github.com/udisondev/arkdps/internal/model"
	"github.com/udisondev/arkdps/internal/testutil"
)

func newTestServer(t *testing.T, mutate func(*config.DPSServer)) *httptest.Server {
	t.Helper()
	cfg := config.DefaultDPSServer()
	if mutate != nil {
		mutate(&cfg)
	}
	ops, enemies := testutil.Registries(t)
	svc := calculator.New(ops, enemies, calculator.Options{MaxGridPoints: cfg.Sweep.MaxGridPoints})
	ts := httptest.NewServer(NewServer(cfg, svc).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func get(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestCalculate(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := post(t, ts, "/api/v1/dps/calculate", `{
		"operatorId": "char_103_angel",
		"config": {"phase": 2, "trust": 100},
		"enemyId": "enemy_1007_slime"
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	body := decodeBody[calculator.CalculateResponse](t, resp)
	assert.InDelta(t, 617.2, body.Result.DPS, 1e-9)
	assert.Equal(t, "Exusiai vs Acid Originium Slug", body.Result.Label)
	assert.Equal(t, "Exusiai", body.Operator.Name)
	atk, ok := body.Operator.Stats.Attack()
	require.True(t, ok)
	assert.InDelta(t, 590.0, atk, 1e-9)
}

func TestCalculate_CustomEnemyStats(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := post(t, ts, "/api/v1/dps/calculate", `{
		"operatorId": "char_134_ifrit",
		"config": {"phase": 2, "trust": 100},
		"skillId": "basic",
		"enemy": {"name": "Wall", "def": 0, "res": 30}
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[calculator.CalculateResponse](t, resp)
	assert.Equal(t, 30.0, body.Result.Res)
	assert.Equal(t, "Ifrit vs Wall", body.Result.Label)
}

func TestSweep(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := post(t, ts, "/api/v1/dps/sweep", `{
		"operatorId": "char_2013_cerber",
		"config": {"phase": 2, "trust": 100},
		"skillId": "skchr_cerber_2",
		"levelIndex": 5,
		"enemyId": "enemy_1005_yokai",
		"defRange": {"min": 0, "max": 2000, "step": 250},
		"resRange": {"min": 0, "max": 100, "step": 10}
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[model.SweepResponse](t, resp)
	assert.Len(t, body.ByDef, 9)
	assert.Len(t, body.ByRes, 11)
	testutil.AssertSweepSorted(t, body)
	testutil.AssertSweepAggregates(t, body)

	// Arts damage falls as res grows, so ascending dps means descending res.
	assert.Equal(t, 100.0, body.ByRes[0].Res)
	assert.Equal(t, 0.0, body.ByRes[len(body.ByRes)-1].Res)
}

func TestErrorMapping(t *testing.T) {
	ts := newTestServer(t, func(c *config.DPSServer) {
		c.Sweep.MaxGridPoints = 50
		c.MaxBodyBytes = 512
	})

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"malformed json", "/api/v1/dps/calculate", `{"operatorId":`, http.StatusBadRequest, "bad_request"},
		{"unknown field", "/api/v1/dps/calculate", `{"operator": "x"}`, http.StatusBadRequest, "bad_request"},
		{"trailing data", "/api/v1/dps/calculate", `{"operatorId":"char_103_angel","enemyId":"enemy_1007_slime"} {}`, http.StatusBadRequest, "bad_request"},
		{"unknown operator", "/api/v1/dps/calculate", `{"operatorId":"char_999","enemyId":"enemy_1007_slime"}`, http.StatusNotFound, "not_found"},
		{"unknown enemy", "/api/v1/dps/calculate", `{"operatorId":"char_103_angel","enemyId":"enemy_9999"}`, http.StatusNotFound, "not_found"},
		{"level index", "/api/v1/dps/calculate", `{"operatorId":"char_103_angel","skillId":"skchr_angel_1","levelIndex":9,"enemyId":"enemy_1007_slime"}`, http.StatusUnprocessableEntity, "level_index_out_of_range"},
		{"bad attack type", "/api/v1/dps/calculate", `{"operatorId":"char_103_angel","enemy":{"name":"x","def":0,"res":0,"attackType":"psychic"}}`, http.StatusUnprocessableEntity, "invalid_attack_type"},
		{"negative trust", "/api/v1/dps/calculate", `{"operatorId":"char_103_angel","config":{"trust":-5},"enemyId":"enemy_1007_slime"}`, http.StatusUnprocessableEntity, "invalid_configuration"},
		{"grid too large", "/api/v1/dps/sweep", `{"operatorId":"char_103_angel","enemyId":"enemy_1007_slime"}`, http.StatusUnprocessableEntity, "grid_too_large"},
		{"bad range", "/api/v1/dps/sweep", `{"operatorId":"char_103_angel","enemyId":"enemy_1007_slime","defRange":{"min":10,"max":0,"step":1}}`, http.StatusUnprocessableEntity, "invalid_configuration"},
		{"body too large", "/api/v1/dps/calculate", `{"operatorId":"` + strings.Repeat("a", 1024) + `"}`, http.StatusRequestEntityTooLarge, "body_too_large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			body := decodeBody[errorBody](t, resp)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestListings(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := get(t, ts, "/api/v1/operators")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ops := decodeBody[[]calculator.OperatorListing](t, resp)
	assert.Len(t, ops, 17)

	resp = get(t, ts, "/api/v1/enemies")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	enemies := decodeBody[[]calculator.EnemyListing](t, resp)
	assert.Len(t, enemies, 40)

	resp = get(t, ts, "/api/v1/enemies/enemy_1009_lurker")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lurker := decodeBody[calculator.EnemyListing](t, resp)
	assert.Equal(t, 100.0, lurker.Def)
	assert.Equal(t, 70.0, lurker.Res)

	resp = get(t, ts, "/api/v1/enemies/enemy_9999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := get(t, ts, "/api/v1/dps/sweep")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestStatusOf_Internal(t *testing.T) {
	status, code := statusOf(testutil.ErrSimulated)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal", code)
}

func TestStatusOf_ContextErrors(t *testing.T) {
	status, code := statusOf(fmt.Errorf("sweep: %w", context.Canceled))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "canceled", code)

	status, code = statusOf(fmt.Errorf("sweep: %w", context.DeadlineExceeded))
	assert.Equal(t, http.StatusGatewayTimeout, status)
	assert.Equal(t, "deadline_exceeded", code)
}

func TestSweep_CancelledRequestIsNotInternal(t *testing.T) {
	cfg := config.DefaultDPSServer()
	ops, enemies := testutil.Registries(t)
	handler := NewServer(cfg, calculator.New(ops, enemies, calculator.Options{})).Handler()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dps/sweep",
		strings.NewReader(`{"operatorId":"char_103_angel","enemyId":"enemy_1007_slime"}`)).WithContext(ctx)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "canceled", body.Code)
}

func TestServe_Lifecycle(t *testing.T) {
	cfg := config.DefaultDPSServer()
	ops, enemies := testutil.Registries(t)
	srv := NewServer(cfg, calculator.New(ops, enemies, calculator.Options{}))
	assert.Nil(t, srv.Addr())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	base := "http://" + ln.Addr().String()
	require.NoError(t, testutil.WaitForHTTPReady(base+"/healthz", 5*time.Second))
	assert.Equal(t, ln.Addr().String(), srv.Addr().String())

	resp, err := http.Post(base+"/api/v1/dps/calculate", "application/json",
		bytes.NewBufferString(`{"operatorId":"char_285_medic2","enemyId":"enemy_1000_gopro"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
