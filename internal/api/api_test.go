package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/roguebingo/internal/api/apierr"
	"github.com/mcoot/roguebingo/internal/api/response"
	"github.com/mcoot/roguebingo/internal/config"
	"github.com/mcoot/roguebingo/internal/factory"
	"github.com/mcoot/roguebingo/internal/model"
)

// testServer wraps the API handler around a mocked app
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithRules(t, config.DefaultRules())
}

func newTestServerWithRules(t *testing.T, rules config.Rules) *testServer {
	t.Helper()
	app := factory.NewTestAppWithRules(rules)
	return &testServer{handler: app.Handler(), app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	reqBody := bytes.NewBuffer(nil)
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	// A client request ID keeps the mock random queue free for run IDs
	req.Header.Set("X-Request-ID", "test-request")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[apierr.ErrorResponse](t, rr).Error.Code
}

func (ts *testServer) startRun(t *testing.T, id string, seed uint64) response.Run {
	t.Helper()
	ts.app.MockRandom.QueueString(id)
	rr := ts.request(http.MethodPost, "/api/v1/runs", map[string]any{"seed": seed})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[response.Run](t, rr)
}

func (ts *testServer) draw(t *testing.T, id string) response.DrawResponse {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/runs/"+id+"/draw", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[response.DrawResponse](t, rr)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decode[response.Health](t, rr).Status)
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeNotFound, errorCode(t, rr))
}

func TestRequestIDEchoed(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, "test-request", rr.Header().Get("X-Request-ID"))
}

func TestRejectsNonJSONBody(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", strings.NewReader("seed=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
}

func TestListPerks(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/perks", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	list := decode[response.PerkList](t, rr)
	assert.Len(t, list.Perks, 16)
	assert.Equal(t, string(model.PerkColumnUp), list.Perks[0].ID)
	for _, p := range list.Perks {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Description)
	}
}

func TestStartRun(t *testing.T) {
	ts := newTestServer(t)

	run := ts.startRun(t, "RUN1", 42)

	assert.Equal(t, "RUN1", run.ID)
	assert.Equal(t, string(model.PhaseReady), run.Phase)
	assert.Equal(t, uint64(42), run.Seed)
	assert.Equal(t, 5, run.Board.Size)
	assert.Len(t, run.Board.Cells, 5)
	assert.Len(t, run.Board.Flat(), 25)
	assert.Equal(t, 20, run.TurnsLeft)
	assert.Equal(t, "E", run.Rank)
	assert.Nil(t, run.EndReason)
	assert.Empty(t, run.PerkOffer)
}

func TestStartRunWithoutBody(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueString("RUN1")

	rr := ts.request(http.MethodPost, "/api/v1/runs", nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "RUN1", decode[response.Run](t, rr).ID)
}

func TestStartRunRejectsUnknownFields(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/runs", map[string]any{"sede": 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))
}

func TestGetRun(t *testing.T) {
	ts := newTestServer(t)
	started := ts.startRun(t, "RUN1", 7)

	rr := ts.request(http.MethodGet, "/api/v1/runs/RUN1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, started, decode[response.Run](t, rr))
}

func TestGetMissingRun(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/runs/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeRunNotFound, errorCode(t, rr))
}

func TestDraw(t *testing.T) {
	ts := newTestServer(t)
	ts.startRun(t, "RUN1", 7)

	resp := ts.draw(t, "RUN1")

	assert.Len(t, resp.Result.Rolls, 1)
	assert.Empty(t, resp.Result.Skipped)
	assert.Equal(t, len(resp.Result.Rolls), len(resp.Result.Hits)+len(resp.Result.Misses))
	assert.Equal(t, 1, resp.Run.DrawCount)
	assert.Equal(t, resp.Result.Rolls, resp.Run.LastRolls)
	assert.Equal(t, 20+resp.Result.TurnsDelta, resp.Run.TurnsLeft)
	assert.Equal(t, resp.Result.ScoreDelta, resp.Run.Score)
}

func TestSameSeedSameDraws(t *testing.T) {
	ts := newTestServer(t)
	ts.startRun(t, "RUN1", 99)
	ts.startRun(t, "RUN2", 99)

	for range 4 {
		a := ts.draw(t, "RUN1")
		b := ts.draw(t, "RUN2")
		assert.Equal(t, a.Result, b.Result)
		assert.Equal(t, a.Run.Board, b.Run.Board)
	}
}

func TestPerkFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.startRun(t, "RUN1", 3)

	var last response.DrawResponse
	for range 5 {
		last = ts.draw(t, "RUN1")
	}
	require.Len(t, last.Result.PerkOffer, 3)
	assert.Equal(t, string(model.PhaseAwaitingPerkChoice), last.Run.Phase)
	offer := last.Run.PerkOffer

	// Draws are ignored until a perk is chosen
	skipped := ts.draw(t, "RUN1")
	assert.Equal(t, string(model.SkipAwaitingPerk), skipped.Result.Skipped)
	assert.Equal(t, 5, skipped.Run.DrawCount)

	// Validation
	rr := ts.request(http.MethodPost, "/api/v1/runs/RUN1/perk", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))

	rr = ts.request(http.MethodPost, "/api/v1/runs/RUN1/perk", map[string]string{"perk_id": "bogus"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeUnknownPerk, errorCode(t, rr))

	for _, p := range ts.app.Registry.All() {
		if slices.Contains(offer, string(p.ID)) {
			continue
		}
		rr = ts.request(http.MethodPost, "/api/v1/runs/RUN1/perk", map[string]string{"perk_id": string(p.ID)})
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, apierr.CodePerkNotOffered, errorCode(t, rr))
		break
	}

	// Choose the first offered perk
	rr = ts.request(http.MethodPost, "/api/v1/runs/RUN1/perk", map[string]string{"perk_id": offer[0]})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	run := decode[response.Run](t, rr)
	assert.Empty(t, run.PerkOffer)
	require.Len(t, run.ActivePerks, 1)
	assert.Equal(t, offer[0], run.ActivePerks[0].ID)
	assert.Equal(t, 1, run.ActivePerks[0].Count)

	// A second choice has no pending offer
	rr = ts.request(http.MethodPost, "/api/v1/runs/RUN1/perk", map[string]string{"perk_id": offer[0]})
	if run.Phase != string(model.PhaseGameOver) {
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, apierr.CodeNoPerkOffer, errorCode(t, rr))
	}
}

func TestFinishedRunOnLeaderboard(t *testing.T) {
	rules := config.DefaultRules()
	rules.InitialTurns = 1
	rules.PerkInterval = 1000
	ts := newTestServerWithRules(t, rules)
	ts.startRun(t, "RUN1", 11)

	var last response.DrawResponse
	for i := 0; i < 500 && (i == 0 || last.Run.Phase != string(model.PhaseGameOver)); i++ {
		last = ts.draw(t, "RUN1")
	}
	require.Equal(t, string(model.PhaseGameOver), last.Run.Phase)
	require.NotNil(t, last.Run.EndReason)

	// Further draws are reported as skipped
	skipped := ts.draw(t, "RUN1")
	assert.Equal(t, string(model.SkipGameOver), skipped.Result.Skipped)

	rr := ts.request(http.MethodPost, "/api/v1/runs/RUN1/perk", map[string]string{"perk_id": string(model.PerkColumnUp)})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeRunOver, errorCode(t, rr))

	rr = ts.request(http.MethodGet, "/api/v1/leaderboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	board := decode[response.Leaderboard](t, rr)
	require.Len(t, board.Runs, 1)
	assert.Equal(t, "RUN1", board.Runs[0].ID)
	assert.Equal(t, last.Run.Score, board.Runs[0].Score)
	assert.Equal(t, *last.Run.EndReason, board.Runs[0].EndReason)

	rr = ts.request(http.MethodGet, "/api/v1/leaderboard/RUN1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, uint64(11), decode[response.RunSummary](t, rr).Seed)
}

func TestLeaderboardLimit(t *testing.T) {
	ts := newTestServer(t)

	for _, limit := range []string{"0", "abc", "101", "-3"} {
		rr := ts.request(http.MethodGet, fmt.Sprintf("/api/v1/leaderboard?limit=%s", limit), nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, limit)
	}

	rr := ts.request(http.MethodGet, "/api/v1/leaderboard?limit=5", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[response.Leaderboard](t, rr).Runs)
}

func TestLeaderboardMissingRun(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/leaderboard/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRestartRun(t *testing.T) {
	ts := newTestServer(t)
	started := ts.startRun(t, "RUN1", 5)
	ts.draw(t, "RUN1")
	ts.draw(t, "RUN1")

	rr := ts.request(http.MethodPost, "/api/v1/runs/RUN1/restart", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	run := decode[response.Run](t, rr)
	assert.Equal(t, 0, run.DrawCount)
	assert.Equal(t, 0, run.Score)
	assert.Equal(t, started.TurnsLeft, run.TurnsLeft)
	assert.Equal(t, started.Seed, run.Seed)
}

func TestAbandonRun(t *testing.T) {
	ts := newTestServer(t)
	ts.startRun(t, "RUN1", 5)

	rr := ts.request(http.MethodDelete, "/api/v1/runs/RUN1", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/runs/RUN1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/runs/RUN1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
