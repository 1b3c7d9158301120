package game

import "math/rand"

// State はゲームの進行状態です
type State int

const (
	StatePregame    State = iota // 最初のマスを開ける前（地雷もまだ置かれていない）
	StateInProgress              // プレイ中
	StateWon                     // クリア
	StateLost                    // 地雷を踏んだ
)

func (s State) String() string {
	switch s {
	case StatePregame:
		return "pregame"
	case StateInProgress:
		return "in_progress"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	}
	return "unknown"
}

// Finished は勝敗が決まった状態かどうかを返します
func (s State) Finished() bool {
	return s == StateWon || s == StateLost
}

// Cell は1つのマスの情報を持ちます
type Cell struct {
	IsMine        bool // 地雷かどうか
	IsRevealed    bool // すでに開けられたか
	IsFlagged     bool // 旗が立てられているか
	IsHit         bool // 踏んでしまった地雷かどうか
	NeighborCount int  // 周囲8マスにある地雷の数
}

// Board はゲーム盤面全体を持ちます
type Board struct {
	Width     int      // 横のマス数
	Height    int      // 縦のマス数
	MineCount int      // 地雷の総数
	Cells     [][]Cell // 2次元配列でマスを管理
	State     State

	remaining     int // 未開封の安全マスの数（0になったら勝ち）
	flagRemaining int // 残り旗数（地雷数 − 立てた旗数）
	rng           *rand.Rand
}
