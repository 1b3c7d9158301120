package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/pbhuss/minesweeper/config"
	"github.com/pbhuss/minesweeper/game"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(cfg, log)
}

func doRequest(t *testing.T, s *Server, url string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	mux := http.NewServeMux()
	s.Routes(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	var resp Response
	if rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
	}
	return rec, resp
}

func TestHandleNewAndOpen(t *testing.T) {
	s := newTestServer(t)

	rec, resp := doRequest(t, s, "/api/new?difficulty=easy")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp.SessionID == "" {
		t.Fatal("session_id が空")
	}
	if len(resp.Game.Cells) != 9 || len(resp.Game.Cells[0]) != 9 {
		t.Fatalf("盤面サイズが違う: %dx%d", len(resp.Game.Cells[0]), len(resp.Game.Cells))
	}

	rec, resp = doRequest(t, s, "/api/open?session="+resp.SessionID+"&x=4&y=4")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp.Game.Cells[4][4].State != "opened" {
		t.Errorf("開けたマスの状態が %q", resp.Game.Cells[4][4].State)
	}
	// 初手は安全なので負けない
	if resp.Game.IsGameOver {
		t.Error("初手で負けた")
	}
}

func TestHandleNewUnknownDifficulty(t *testing.T) {
	rec, _ := doRequest(t, newTestServer(t), "/api/new?difficulty=nightmare")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleOpenBadRequests(t *testing.T) {
	s := newTestServer(t)
	rec, _ := doRequest(t, s, "/api/open?session=nope&x=0&y=0")
	if rec.Code != http.StatusNotFound {
		t.Errorf("未知のセッション: status = %d, want 404", rec.Code)
	}

	_, resp := doRequest(t, s, "/api/new")
	rec, _ = doRequest(t, s, "/api/open?session="+resp.SessionID+"&x=abc&y=0")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("座標が数値でない: status = %d, want 400", rec.Code)
	}
}

func TestHandleHint(t *testing.T) {
	s := newTestServer(t)
	// 0 の開封マスの隣は必ず安全、という盤面を直接差し込む
	board := &game.Board{
		Width:  3,
		Height: 1,
		Cells: [][]game.Cell{{
			{IsRevealed: true},
			{},
			{},
		}},
		State: game.StateInProgress,
	}
	s.sessions["fixed"] = &session{board: board}

	rec, resp := doRequest(t, s, "/api/hint?session=fixed")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp.Hint == nil {
		t.Fatal("確定手があるのにヒントが無い")
	}
	if resp.Hint.Action != "reveal" {
		t.Errorf("Action = %q, want reveal", resp.Hint.Action)
	}
	if len(resp.Hint.Cells) != 1 || resp.Hint.Cells[0] != [2]int{1, 0} {
		t.Errorf("Cells = %v", resp.Hint.Cells)
	}
	// ヒントは1マスだけ適用される
	if resp.Game.Cells[0][1].State != "opened" {
		t.Error("ヒントのマスが開いていない")
	}
}

func TestHandleHintNoDeduction(t *testing.T) {
	s := newTestServer(t)
	_, resp := doRequest(t, s, "/api/new")

	// 開始前の盤面には制約が無いのでヒントも無い。エラーではない
	rec, resp := doRequest(t, s, "/api/hint?session="+resp.SessionID)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp.Hint != nil {
		t.Errorf("ヒントは無いはず: %+v", resp.Hint)
	}
}

func TestHandleHintInconsistentBoard(t *testing.T) {
	s := newTestServer(t)
	// 数字 0 のマスの隣に旗。管理が壊れた盤面は 500 で弾かれる
	board := &game.Board{
		Width:  2,
		Height: 2,
		Cells: [][]game.Cell{
			{{IsRevealed: true}, {IsFlagged: true}},
			{{}, {}},
		},
		State: game.StateInProgress,
	}
	s.sessions["broken"] = &session{board: board}

	rec, _ := doRequest(t, s, "/api/hint?session=broken")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
