package game

import "github.com/pbhuss/minesweeper/solver"

// solver.Board の実装
// エンジンからは読み取り専用の問い合わせ口として見えます

// Size は盤面の幅と高さを返します
func (b *Board) Size() (int, int) {
	return b.Width, b.Height
}

// Neighbors は盤外を除いた周囲8マスを返します
func (b *Board) Neighbors(c solver.Cell) []solver.Cell {
	out := make([]solver.Cell, 0, 8)
	b.eachNeighbor(c.X, c.Y, func(nx, ny int) {
		out = append(out, solver.Cell{X: nx, Y: ny})
	})
	return out
}

// IsRevealed は開封済みかどうかを返します
func (b *Board) IsRevealed(c solver.Cell) bool {
	return b.Cells[c.Y][c.X].IsRevealed
}

// IsFlagged は旗が立っているかどうかを返します
func (b *Board) IsFlagged(c solver.Cell) bool {
	return b.Cells[c.Y][c.X].IsFlagged
}

// AdjacentMines は周囲8マスの地雷数を返します
func (b *Board) AdjacentMines(c solver.Cell) int {
	return b.Cells[c.Y][c.X].NeighborCount
}

// Apply はソルバーの確定手を盤面に適用します
// limit が正ならその数のマスだけ適用します（ヒント用に1マスだけ適用する等）
func (b *Board) Apply(act *solver.Action, limit int) {
	if act == nil {
		return
	}
	for i, c := range act.Cells.Cells() {
		if limit > 0 && i >= limit {
			return
		}
		switch act.Kind {
		case solver.ActionFlag:
			if !b.Cells[c.Y][c.X].IsFlagged {
				b.ToggleFlag(c.X, c.Y)
			}
		case solver.ActionReveal:
			b.Reveal(c.X, c.Y)
		}
	}
}
