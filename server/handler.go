package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pbhuss/minesweeper/config"
	"github.com/pbhuss/minesweeper/game"
	"github.com/pbhuss/minesweeper/solver"
	"github.com/pbhuss/minesweeper/viewmodel"
)

// Server はセッションごとのゲーム状態とHTTPハンドラを管理します
type Server struct {
	mu       sync.Mutex
	sessions map[string]*session
	cfg      *config.Config
	log      *logrus.Logger
}

// session は1つの対局です
// 盤面の操作とソルバーの実行は mu で直列化します（ソルバー自身はロックを持たない）
type session struct {
	mu    sync.Mutex
	board *game.Board
}

// New はサーバーを初期化して返します
func New(cfg *config.Config, log *logrus.Logger) *Server {
	return &Server{
		sessions: make(map[string]*session),
		cfg:      cfg,
		log:      log,
	}
}

// Routes は API のルーティングを mux に登録します
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/new", s.handleNew)
	mux.HandleFunc("/api/open", s.handleOpen)
	mux.HandleFunc("/api/flag", s.handleFlag)
	mux.HandleFunc("/api/burst", s.handleBurst)
	mux.HandleFunc("/api/hint", s.handleHint)
	mux.HandleFunc("/api/step", s.handleStep)
}

// Response はクライアントへの応答です
type Response struct {
	SessionID string             `json:"session_id"`
	Game      viewmodel.GameView `json:"game"`
	Hint      *HintView          `json:"hint,omitempty"`
}

// HintView はソルバーが導いた確定手の内容です
type HintView struct {
	Action string   `json:"action"`
	Cells  [][2]int `json:"cells"`
}

// handleNew は新しい対局を作ります（?difficulty=easy など）
func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("difficulty")
	if name == "" {
		name = "easy"
	}
	d, ok := s.cfg.Difficulties[name]
	if !ok {
		http.Error(w, "unknown difficulty", http.StatusBadRequest)
		return
	}

	board, err := game.NewBoard(d.Width, d.Height, d.Mines)
	if err != nil {
		s.log.WithError(err).Error("盤面の作成に失敗しました")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{board: board}
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"session":    id,
		"difficulty": name,
	}).Info("new game")

	writeJSON(w, Response{SessionID: id, Game: viewmodel.New(board)})
}

// handleOpen はマスを開けるAPIです
func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	s.handleCellOp(w, r, func(b *game.Board, x, y int) {
		b.Reveal(x, y)
	})
}

// handleFlag は旗を切り替えるAPIです
func (s *Server) handleFlag(w http.ResponseWriter, r *http.Request) {
	s.handleCellOp(w, r, func(b *game.Board, x, y int) {
		b.ToggleFlag(x, y)
	})
}

// handleBurst は数字マスの周囲をまとめて開けるAPIです
func (s *Server) handleBurst(w http.ResponseWriter, r *http.Request) {
	s.handleCellOp(w, r, func(b *game.Board, x, y int) {
		b.BurstReveal(x, y)
	})
}

func (s *Server) handleCellOp(w http.ResponseWriter, r *http.Request, op func(b *game.Board, x, y int)) {
	id, sess, ok := s.getSession(w, r)
	if !ok {
		return
	}
	x, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		http.Error(w, "bad x", http.StatusBadRequest)
		return
	}
	y, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		http.Error(w, "bad y", http.StatusBadRequest)
		return
	}

	sess.mu.Lock()
	op(sess.board, x, y)
	view := viewmodel.New(sess.board)
	sess.mu.Unlock()

	writeJSON(w, Response{SessionID: id, Game: view})
}

// handleHint はソルバーの確定手を1マスだけ盤面に適用します
// 確定手が無いときは何もせず現在の盤面を返します（正常な結果）
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	s.handleSolver(w, r, 1)
}

// handleStep はソルバーの確定手を丸ごと適用します
func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	s.handleSolver(w, r, 0)
}

func (s *Server) handleSolver(w http.ResponseWriter, r *http.Request, limit int) {
	id, sess, ok := s.getSession(w, r)
	if !ok {
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	act, err := solver.New(sess.board).SolveOne()
	if err != nil {
		// 正しい盤面では起きないはず。ゲームの結果ではなく欠陥として記録する
		if errors.Is(err, solver.ErrInconsistentBoard) {
			s.log.WithError(err).WithField("session", id).Error("盤面の整合性が壊れています")
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := Response{SessionID: id}
	if act != nil {
		sess.board.Apply(act, limit)
		hint := &HintView{Action: act.Kind.String()}
		for _, c := range act.Cells.Cells() {
			hint.Cells = append(hint.Cells, [2]int{c.X, c.Y})
		}
		resp.Hint = hint
	}
	resp.Game = viewmodel.New(sess.board)
	writeJSON(w, resp)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) (string, *session, bool) {
	id := r.URL.Query().Get("session")
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return "", nil, false
	}
	return id, sess, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
