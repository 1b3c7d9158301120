package solver

import (
	"sort"
	"strconv"
	"strings"
)

// Cell は盤面上の1マスの座標を表します
type Cell struct {
	X, Y int
}

// CellSet はマス座標の集合です
// 要素が同じなら Key も同じになるので、マップのキーとして使えます
type CellSet struct {
	m map[Cell]struct{}
}

// NewCellSet は指定されたマスから集合を作ります
func NewCellSet(cells ...Cell) CellSet {
	s := CellSet{m: make(map[Cell]struct{}, len(cells))}
	for _, c := range cells {
		s.m[c] = struct{}{}
	}
	return s
}

// Len は要素数を返します
func (s CellSet) Len() int {
	return len(s.m)
}

// Contains は c が含まれるかを返します
func (s CellSet) Contains(c Cell) bool {
	_, ok := s.m[c]
	return ok
}

// Add は c を追加します（NewCellSet で作った集合にのみ使うこと）
func (s CellSet) Add(c Cell) {
	s.m[c] = struct{}{}
}

// SupersetOf は s が o の上位集合（同一集合も含む）かどうかを返します
func (s CellSet) SupersetOf(o CellSet) bool {
	if o.Len() > s.Len() {
		return false
	}
	for c := range o.m {
		if !s.Contains(c) {
			return false
		}
	}
	return true
}

// Diff は s − o の差集合を新しく作って返します
func (s CellSet) Diff(o CellSet) CellSet {
	d := NewCellSet()
	for c := range s.m {
		if !o.Contains(c) {
			d.Add(c)
		}
	}
	return d
}

// Without は c だけを取り除いた集合を新しく作って返します
func (s CellSet) Without(c Cell) CellSet {
	d := NewCellSet()
	for e := range s.m {
		if e != c {
			d.Add(e)
		}
	}
	return d
}

// Equal は2つの集合が同じ要素を持つかを返します
func (s CellSet) Equal(o CellSet) bool {
	return s.Len() == o.Len() && s.SupersetOf(o)
}

// Cells は要素を行優先（Y, X の昇順）で並べて返します
// 反復順をここで固定することで、エンジン全体の決定性を保ちます
func (s CellSet) Cells() []Cell {
	cells := make([]Cell, 0, len(s.m))
	for c := range s.m {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

// Key は正規化した文字列表現を返します
// 同じ要素の集合は必ず同じキーになります（空集合は ""）
func (s CellSet) Key() string {
	var b strings.Builder
	for i, c := range s.Cells() {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.Itoa(c.X))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(c.Y))
	}
	return b.String()
}
