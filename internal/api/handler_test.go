package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yuuto7838/adsim/internal/constants"
	"github.com/yuuto7838/adsim/internal/game"
	"github.com/yuuto7838/adsim/internal/session"
	"github.com/yuuto7838/adsim/internal/storage"
)

type stubRepo struct {
	key      string
	archives []game.SessionArchive
	listErr  error
}

func (r *stubRepo) LoadCredential() (string, error) { return r.key, nil }
func (r *stubRepo) SaveCredential(key string) error { r.key = key; return nil }
func (r *stubRepo) ClearCredential() error          { r.key = ""; return nil }
func (r *stubRepo) AppendArchive(a *game.SessionArchive) error {
	r.archives = append(r.archives, *a)
	return nil
}
func (r *stubRepo) ListArchive(limit int) ([]game.SessionArchive, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := append([]game.SessionArchive(nil), r.archives...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ storage.Repository = (*stubRepo)(nil)

type stubProvider struct {
	briefErr error
}

func (p *stubProvider) GenerateBrief(context.Context) (*game.Brief, error) {
	if p.briefErr != nil {
		return nil, p.briefErr
	}
	return &game.Brief{
		ClientName:  "株式会社テスト",
		Product:     "テストアプリ",
		Objective:   "新規獲得",
		Budget:      1000000,
		Audience:    "20-30代",
		BestChannel: game.ChannelGoogle,
	}, nil
}

func (p *stubProvider) AskClient(context.Context, *game.Brief, string) (string, error) {
	return "承知しました。", nil
}

func (p *stubProvider) GenerateChallengeQuestion(context.Context, *game.Brief, *game.MonthResult) (string, error) {
	return "結果をどう見ていますか？", nil
}

func (p *stubProvider) ScoreChallenge(context.Context, *game.Brief, string, string, *game.MonthResult) (game.ScoreResult, error) {
	return game.ScoreResult{Score: 7, Feedback: "妥当です。", BudgetBonus: 0}, nil
}

type immediateClock struct{}

func (immediateClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func newTestRouter(p session.Provider) (*gin.Engine, *stubRepo) {
	gin.SetMode(gin.TestMode)
	repo := &stubRepo{}
	mgr := session.NewManager(session.Config{
		Repo:        repo,
		NewProvider: func(string) session.Provider { return p },
		RunDelay:    time.Millisecond,
		Clock:       immediateClock{},
	})
	handler := NewSessionHandler(mgr, repo)

	router := gin.New()
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteState, handler.GetState)
		apiRoutes.GET(constants.RouteHistory, handler.GetHistory)
		apiRoutes.GET(constants.RouteArchive, handler.GetArchive)
		apiRoutes.GET(constants.RouteHealthz, Healthz)
		apiRoutes.GET(constants.RouteVersion, Version)

		apiRoutes.POST(constants.RouteCredentials, handler.SubmitCredentials)
		apiRoutes.DELETE(constants.RouteCredentials, handler.ClearCredentials)
		apiRoutes.POST(constants.RouteBriefAccept, handler.AcceptBrief)
		apiRoutes.POST(constants.RouteBriefRegenerate, handler.RegenerateBrief)
		apiRoutes.PUT(constants.RouteAllocation, handler.SetAllocation)
		apiRoutes.POST(constants.RouteRun, handler.Run)
		apiRoutes.POST(constants.RouteNextMonth, handler.NextMonth)
		apiRoutes.POST(constants.RouteQA, handler.AskQuestion)
		apiRoutes.POST(constants.RouteChallengeAnswer, handler.AnswerChallenge)
		apiRoutes.POST(constants.RouteChallengeClose, handler.CloseChallenge)
		apiRoutes.POST(constants.RouteModal, handler.SetModal)
		apiRoutes.DELETE(constants.RouteModal, handler.ClearModal)
	}
	return router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func stateView(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		State struct {
			View string `json:"view"`
		} `json:"state"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v\n%s", err, w.Body.String())
	}
	return resp.State.View
}

func TestGetState_InitialView(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{})
	w := doJSON(t, router, http.MethodGet, "/api/state", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := stateView(t, w); got != string(game.ViewAwaitingCredentials) {
		t.Fatalf("expected AWAITING_CREDENTIALS, got %s", got)
	}
}

func TestSubmitCredentials_FullFlow(t *testing.T) {
	router, repo := newTestRouter(&stubProvider{})

	w := doJSON(t, router, http.MethodPost, "/api/credentials", gin.H{"api_key": "test-key"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := stateView(t, w); got != string(game.ViewBrief) {
		t.Fatalf("expected BRIEF, got %s", got)
	}
	if repo.key != "test-key" {
		t.Fatalf("credential not persisted")
	}
}

func TestSubmitCredentials_BadRequests(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{})

	w := doJSON(t, router, http.MethodPost, "/api/credentials", gin.H{"api_key": "  "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank key: expected 400, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/credentials", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: expected 400, got %d", rec.Code)
	}
}

func TestSubmitCredentials_ProviderFailureIs502(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{briefErr: errors.New("401 unauthorized")})
	w := doJSON(t, router, http.MethodPost, "/api/credentials", gin.H{"api_key": "bad"})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMonthFlow_OverHTTP(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{})

	if w := doJSON(t, router, http.MethodPost, "/api/credentials", gin.H{"api_key": "k"}); w.Code != http.StatusOK {
		t.Fatalf("credentials: %d %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, router, http.MethodPost, "/api/brief/accept", nil); w.Code != http.StatusOK {
		t.Fatalf("accept: %d %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, router, http.MethodPut, "/api/allocation", gin.H{"allocation": gin.H{"google": 300000}}); w.Code != http.StatusOK {
		t.Fatalf("allocation: %d %s", w.Code, w.Body.String())
	}

	w := doJSON(t, router, http.MethodPost, "/api/run", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("run: %d %s", w.Code, w.Body.String())
	}
	if got := stateView(t, w); got != string(game.ViewResult) {
		t.Fatalf("expected RESULT after run, got %s", got)
	}

	w = doJSON(t, router, http.MethodPost, "/api/next", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("next: %d %s", w.Code, w.Body.String())
	}
	if got := stateView(t, w); got != string(game.ViewPlanning) {
		t.Fatalf("expected PLANNING after next month, got %s", got)
	}

	w = doJSON(t, router, http.MethodGet, "/api/history", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("history: %d", w.Code)
	}
	var hist struct {
		History []game.MonthResult `json:"history"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &hist); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(hist.History) != 1 {
		t.Fatalf("expected 1 month of history, got %d", len(hist.History))
	}
}

func TestRun_ConflictStatuses(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{})

	// Running before PLANNING is a transition conflict.
	if w := doJSON(t, router, http.MethodPost, "/api/run", nil); w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}

	if w := doJSON(t, router, http.MethodPost, "/api/credentials", gin.H{"api_key": "k"}); w.Code != http.StatusOK {
		t.Fatalf("credentials: %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodPost, "/api/brief/accept", nil); w.Code != http.StatusOK {
		t.Fatalf("accept: %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodPut, "/api/allocation", gin.H{"allocation": gin.H{"google": 9000000}}); w.Code != http.StatusOK {
		t.Fatalf("allocation: %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodPost, "/api/run", nil); w.Code != http.StatusConflict {
		t.Fatalf("over budget: expected 409, got %d", w.Code)
	}
}

func TestSetAllocation_UnknownChannelIs400(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{})
	if w := doJSON(t, router, http.MethodPost, "/api/credentials", gin.H{"api_key": "k"}); w.Code != http.StatusOK {
		t.Fatalf("credentials: %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodPost, "/api/brief/accept", nil); w.Code != http.StatusOK {
		t.Fatalf("accept: %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodPut, "/api/allocation", gin.H{"allocation": gin.H{"radio": 100}}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAskQuestion_Accepted(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{})
	if w := doJSON(t, router, http.MethodPost, "/api/credentials", gin.H{"api_key": "k"}); w.Code != http.StatusOK {
		t.Fatalf("credentials: %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodPost, "/api/brief/accept", nil); w.Code != http.StatusOK {
		t.Fatalf("accept: %d", w.Code)
	}

	w := doJSON(t, router, http.MethodPost, "/api/qa", gin.H{"question": "ターゲットの詳細は？"})
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		QA game.QAExchange `json:"qa"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.QA.ID == "" || !resp.QA.Pending {
		t.Fatalf("expected a pending exchange, got %+v", resp.QA)
	}

	if w := doJSON(t, router, http.MethodPost, "/api/qa", gin.H{"question": "   "}); w.Code != http.StatusBadRequest {
		t.Fatalf("blank question: expected 400, got %d", w.Code)
	}
}

func TestModal_OverHTTP(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{})
	if w := doJSON(t, router, http.MethodPost, "/api/modal", gin.H{"modal": "HISTORY"}); w.Code != http.StatusConflict {
		t.Fatalf("modal before PLANNING: expected 409, got %d", w.Code)
	}

	if w := doJSON(t, router, http.MethodPost, "/api/credentials", gin.H{"api_key": "k"}); w.Code != http.StatusOK {
		t.Fatalf("credentials: %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodPost, "/api/brief/accept", nil); w.Code != http.StatusOK {
		t.Fatalf("accept: %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodPost, "/api/modal", gin.H{"modal": "HISTORY"}); w.Code != http.StatusOK {
		t.Fatalf("modal: %d %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, router, http.MethodDelete, "/api/modal", nil); w.Code != http.StatusOK {
		t.Fatalf("clear modal: %d", w.Code)
	}
}

func TestGetArchive(t *testing.T) {
	router, repo := newTestRouter(&stubProvider{})
	repo.archives = []game.SessionArchive{{ClientName: "A社", MonthsPlayed: 3}}

	w := doJSON(t, router, http.MethodGet, "/api/archive?limit=5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Archive []game.SessionArchive `json:"archive"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Archive) != 1 || resp.Archive[0].ClientName != "A社" {
		t.Fatalf("unexpected archive: %+v", resp.Archive)
	}

	repo.listErr = errors.New("disk gone")
	if w := doJSON(t, router, http.MethodGet, "/api/archive", nil); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{})
	if w := doJSON(t, router, http.MethodGet, "/api/healthz", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
