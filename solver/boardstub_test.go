package solver

import (
	"math/rand"
	"testing"
)

// testBoard はテスト用の盤面です
// counts が nil のときは数字を mines から計算するので、必ず整合した盤面になります
type testBoard struct {
	w, h     int
	mines    map[Cell]bool
	revealed map[Cell]bool
	flagged  map[Cell]bool
	counts   map[Cell]int
}

func (b *testBoard) Size() (int, int) { return b.w, b.h }

func (b *testBoard) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := c.X+dx, c.Y+dy
			if nx >= 0 && nx < b.w && ny >= 0 && ny < b.h {
				out = append(out, Cell{X: nx, Y: ny})
			}
		}
	}
	return out
}

func (b *testBoard) IsRevealed(c Cell) bool { return b.revealed[c] }
func (b *testBoard) IsFlagged(c Cell) bool  { return b.flagged[c] }

func (b *testBoard) AdjacentMines(c Cell) int {
	if b.counts != nil {
		return b.counts[c]
	}
	n := 0
	for _, nb := range b.Neighbors(c) {
		if b.mines[nb] {
			n++
		}
	}
	return n
}

// parseBoard は文字の並びから盤面を組み立てます
//
//	'.'     未開封の安全マス
//	'x'     未開封の地雷
//	'F'     旗付きの地雷
//	'0'-'8' 開封済みの数字マス
//
// 数字が地雷配置と食い違っていたらテストを失敗させます
func parseBoard(t *testing.T, rows ...string) *testBoard {
	t.Helper()
	b := &testBoard{
		w:        len(rows[0]),
		h:        len(rows),
		mines:    make(map[Cell]bool),
		revealed: make(map[Cell]bool),
		flagged:  make(map[Cell]bool),
	}
	for y, row := range rows {
		if len(row) != b.w {
			t.Fatalf("行 %d の長さが揃っていない", y)
		}
		for x := 0; x < len(row); x++ {
			c := Cell{X: x, Y: y}
			switch ch := row[x]; {
			case ch == '.':
			case ch == 'x':
				b.mines[c] = true
			case ch == 'F':
				b.mines[c] = true
				b.flagged[c] = true
			case ch >= '0' && ch <= '8':
				b.revealed[c] = true
			default:
				t.Fatalf("不明な文字 %q", ch)
			}
		}
	}
	// 数字の検算。テストの盤面そのものが嘘をついていないか確かめる
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			ch := row[x]
			if ch < '0' || ch > '8' {
				continue
			}
			c := Cell{X: x, Y: y}
			if got := b.AdjacentMines(c); got != int(ch-'0') {
				t.Fatalf("(%d,%d) の数字 %c が地雷配置と矛盾（実際は %d）", x, y, ch, got)
			}
		}
	}
	return b
}

// randomBoard はプレイ途中を模したランダム盤面を作ります
// 開封されるのは安全マスだけ、旗が立つのは地雷だけなので必ず整合しています
func randomBoard(rng *rand.Rand, w, h, mineCount int) *testBoard {
	b := &testBoard{
		w:        w,
		h:        h,
		mines:    make(map[Cell]bool),
		revealed: make(map[Cell]bool),
		flagged:  make(map[Cell]bool),
	}
	cells := make([]Cell, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cells = append(cells, Cell{X: x, Y: y})
		}
	}
	rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
	for _, c := range cells[:mineCount] {
		b.mines[c] = true
		if rng.Float64() < 0.25 {
			b.flagged[c] = true
		}
	}
	for _, c := range cells[mineCount:] {
		if rng.Float64() < 0.5 {
			b.revealed[c] = true
		}
	}
	return b
}
