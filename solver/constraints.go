package solver

import (
	"fmt"

	"github.com/gammazero/deque"
)

// constraintTable はマス集合をキーにした制約の表です
// 挿入順を保持し、同じ集合への再登録は位置を変えずに値だけ更新します
type constraintTable struct {
	keys  []string
	cells map[string]CellSet
	count map[string]int
}

func newConstraintTable() *constraintTable {
	return &constraintTable{
		cells: make(map[string]CellSet),
		count: make(map[string]int),
	}
}

func (t *constraintTable) put(cs CellSet, n int) {
	k := cs.Key()
	if _, ok := t.cells[k]; !ok {
		t.keys = append(t.keys, k)
		t.cells[k] = cs
	}
	t.count[k] = n
}

func (t *constraintTable) has(cs CellSet) bool {
	_, ok := t.cells[cs.Key()]
	return ok
}

func (t *constraintTable) len() int {
	return len(t.keys)
}

// extractConstraints は盤面を走査して初期の正確制約の表を作ります
// 数字マスごとに「未開封かつ旗なしの隣接マス」の集合と
// 「旗の分を差し引いた残り地雷数」を対応付けます
func extractConstraints(b Board) (*constraintTable, error) {
	t := newConstraintTable()
	// 空集合の番人。差分演算の単位元として常に入れておく
	t.put(NewCellSet(), 0)

	width, height := b.Size()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := Cell{X: x, Y: y}
			if !b.IsRevealed(c) {
				continue
			}
			hidden := NewCellSet()
			flags := 0
			for _, n := range b.Neighbors(c) {
				switch {
				case b.IsRevealed(n):
					// 開封済みは無視
				case b.IsFlagged(n):
					flags++
				default:
					hidden.Add(n)
				}
			}
			if hidden.Len() == 0 {
				continue
			}
			mines := b.AdjacentMines(c) - flags
			if mines < 0 {
				// 旗が数字より多い。盤面の管理が壊れているので続行しない
				return nil, fmt.Errorf("%w: (%d,%d) の残り地雷数が %d", ErrInconsistentBoard, x, y, mines)
			}
			t.put(hidden, mines)
		}
	}
	return t, nil
}

type leastFact struct {
	cells CellSet
	n     int
}

// deriveLeasts は正確制約 (cells, n) から「少なくとも n 個」の弱い制約を導出します
// 1マスずつ取り除いた部分集合に n-1 を記録し、記録した集合についても同じことを繰り返す
// （1マス取り除いても地雷は高々1つしか減らないため）
// 打ち切り条件（n < 2、全部地雷、集合が3マス未満）は停止性と導出内容の要なので変えないこと
func deriveLeasts(t *constraintTable, cells CellSet, n int) {
	var work deque.Deque[leastFact]
	work.PushBack(leastFact{cells: cells, n: n})
	for work.Len() > 0 {
		f := work.PopBack()
		if f.n < 2 || f.cells.Len() == f.n || f.cells.Len() < 3 {
			continue
		}
		for _, c := range f.cells.Cells() {
			sub := f.cells.Without(c)
			t.put(sub, f.n-1)
			work.PushBack(leastFact{cells: sub, n: f.n - 1})
		}
	}
}
