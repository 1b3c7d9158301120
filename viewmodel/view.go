package viewmodel

import "github.com/pbhuss/minesweeper/game"

// CellView は1マスの表示用データです
type CellView struct {
	State  string `json:"state"`
	Count  int    `json:"count"`
	IsMine bool   `json:"is_mine"`
}

// GameView は盤面全体の表示用データです
type GameView struct {
	Cells          [][]CellView `json:"cells"`
	MinesRemaining int          `json:"mines_remaining"`
	IsGameOver     bool         `json:"is_game_over"`
	IsGameClear    bool         `json:"is_game_clear"`
}

// New は盤面から表示用データを作ります
func New(b *game.Board) GameView {
	if b == nil {
		return GameView{}
	}

	grid := make([][]CellView, b.Height)
	for y := 0; y < b.Height; y++ {
		grid[y] = make([]CellView, b.Width)
		for x := 0; x < b.Width; x++ {
			c := b.Cells[y][x]
			v := CellView{}

			switch {
			case c.IsRevealed:
				v.State = "opened"
				v.IsMine = c.IsMine
				if !c.IsMine {
					v.Count = c.NeighborCount
				}
			case c.IsFlagged:
				v.State = "flagged"
			default:
				v.State = "hidden"
			}

			// クリア時は地雷マスを旗扱いで見せる
			if b.State == game.StateWon && c.IsMine {
				v.State = "flagged"
				v.IsMine = false
			}
			grid[y][x] = v
		}
	}

	return GameView{
		Cells:          grid,
		MinesRemaining: b.FlagsRemaining(),
		IsGameOver:     b.State == game.StateLost,
		IsGameClear:    b.State == game.StateWon,
	}
}
