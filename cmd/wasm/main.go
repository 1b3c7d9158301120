//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/pbhuss/minesweeper/game"
	"github.com/pbhuss/minesweeper/solver"
	"github.com/pbhuss/minesweeper/viewmodel"
)

// GameSession はゲームの状態を保持・管理します
type GameSession struct {
	board *game.Board
}

var session = &GameSession{}

func (s *GameSession) view() string {
	bytes, _ := json.Marshal(viewmodel.New(s.board))
	return string(bytes)
}

// NewGame は新しいゲームを開始します
func (s *GameSession) NewGame(width, height, mineCount int) string {
	board, err := game.NewBoard(width, height, mineCount)
	if err != nil {
		return "{}"
	}
	s.board = board
	return s.view()
}

// Open は指定されたセルを開きます
func (s *GameSession) Open(x, y int) string {
	if s.board == nil {
		return ""
	}
	s.board.Reveal(x, y)
	return s.view()
}

// ToggleFlag は旗を切り替えます
func (s *GameSession) ToggleFlag(x, y int) string {
	if s.board == nil {
		return ""
	}
	s.board.ToggleFlag(x, y)
	return s.view()
}

// BurstReveal は数字マスの周囲をまとめて開けます
func (s *GameSession) BurstReveal(x, y int) string {
	if s.board == nil {
		return ""
	}
	s.board.BurstReveal(x, y)
	return s.view()
}

// Hint は確定手を1マスだけ適用します
func (s *GameSession) Hint() string {
	return s.step(1)
}

// BotStep は確定手を丸ごと適用して1手進めます
func (s *GameSession) BotStep() string {
	return s.step(0)
}

func (s *GameSession) step(limit int) string {
	if s.board == nil || s.board.State.Finished() {
		return s.view()
	}
	act, err := solver.New(s.board).SolveOne()
	if err != nil || act == nil {
		return s.view() // 打つ手なし
	}
	s.board.Apply(act, limit)
	return s.view()
}

func newGameWrapper(this js.Value, args []js.Value) interface{} {
	// デフォルト値
	w, h, m := 10, 10, 10
	if len(args) >= 3 {
		w = args[0].Int()
		h = args[1].Int()
		m = args[2].Int()
	}
	return session.NewGame(w, h, m)
}

func openCellWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	return session.Open(args[0].Int(), args[1].Int())
}

func toggleFlagWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	return session.ToggleFlag(args[0].Int(), args[1].Int())
}

func burstRevealWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	return session.BurstReveal(args[0].Int(), args[1].Int())
}

func hintWrapper(this js.Value, args []js.Value) interface{} {
	return session.Hint()
}

func botStepWrapper(this js.Value, args []js.Value) interface{} {
	return session.BotStep()
}

func main() {
	c := make(chan struct{})

	js.Global().Set("goNewGame", js.FuncOf(newGameWrapper))
	js.Global().Set("goOpenCell", js.FuncOf(openCellWrapper))
	js.Global().Set("goToggleFlag", js.FuncOf(toggleFlagWrapper))
	js.Global().Set("goBurstReveal", js.FuncOf(burstRevealWrapper))
	js.Global().Set("goHint", js.FuncOf(hintWrapper))
	js.Global().Set("goBotStep", js.FuncOf(botStepWrapper))

	println("Go WebAssembly Initialized")
	<-c
}
