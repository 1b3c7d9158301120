// Package solver は開封済みの数字から論理的に確定する手を導くエンジンです
//
// 確率や当て推量は一切使いません。正確制約（この集合にちょうど n 個）と
// 「少なくとも n 個」の弱い制約を重ね合わせ、集合の差分から確定手を探します。
// 盤面は読み取り専用で、1回の SolveOne ごとに作業用の制約表を作り直します。
package solver

import "errors"

// Board はエンジンが盤面に問い合わせるための読み取り専用の窓口です
// エンジンは盤面を一切変更しません
type Board interface {
	// Size は盤面の幅と高さを返します
	Size() (width, height int)
	// Neighbors は盤外を除いた周囲8マスを返します
	Neighbors(c Cell) []Cell
	// IsRevealed は開封済みかどうかを返します
	IsRevealed(c Cell) bool
	// IsFlagged は旗が立っているかどうかを返します
	IsFlagged(c Cell) bool
	// AdjacentMines は開封済みの数字マスの周囲地雷数を返します
	// （開封済みの地雷マスに対する値は不定で構いません）
	AdjacentMines(c Cell) int
}

// ErrInconsistentBoard は旗や数字の帳尻が合わない盤面に対するエラーです
// 正しく管理された盤面では決して起きないため、呼び出し側は欠陥として扱うこと
var ErrInconsistentBoard = errors.New("solver: inconsistent board")

// ActionKind は確定手の種類です
type ActionKind int

const (
	ActionFlag   ActionKind = iota // Cells の全マスが地雷
	ActionReveal                   // Cells の全マスが安全
)

func (k ActionKind) String() string {
	switch k {
	case ActionFlag:
		return "flag"
	case ActionReveal:
		return "reveal"
	}
	return "unknown"
}

// Action は論理的に確定した1手です
// 呼び出し側が盤面へ適用します（複数マスのうち1マスだけ適用しても構いません）
type Action struct {
	Kind  ActionKind
	Cells CellSet
}

// Solver は盤面から確定手を1つ導きます
// 状態は持たないので、盤面が変わるたびに使い回して呼んで構いません
type Solver struct {
	Board Board
}

// New はソルバーを初期化して返します
func New(b Board) *Solver {
	return &Solver{Board: b}
}

// SolveOne は確定手を1つ返します
// 確定手が存在しない場合は (nil, nil) を返します（エラーではなく通常の結果）
func (s *Solver) SolveOne() (*Action, error) {
	exact, err := extractConstraints(s.Board)
	if err != nil {
		return nil, err
	}
	return newEngine(exact).run(), nil
}

// maxRounds は暴走防止の上限
// 制約表は単調にしか増えないので理論上は必ず停止するが、巨大盤面向けの保険として持つ
const maxRounds = 4096

// engine は1回分の推論の作業領域です
// 3つの制約表はこの engine が専有し、推論が終われば破棄されます
type engine struct {
	exact       *constraintTable // ちょうど n 個
	atLeastMine *constraintTable // 少なくとも n 個が地雷
	atLeastSafe *constraintTable // 少なくとも n 個が安全
}

func newEngine(exact *constraintTable) *engine {
	e := &engine{
		exact:       exact,
		atLeastMine: newConstraintTable(),
		atLeastSafe: newConstraintTable(),
	}
	// 初期の正確制約から両側の「少なくとも」制約を展開しておく
	for _, k := range exact.keys {
		cs := exact.cells[k]
		n := exact.count[k]
		deriveLeasts(e.atLeastMine, cs, n)
		deriveLeasts(e.atLeastSafe, cs, cs.Len()-n)
	}
	return e
}

func (e *engine) size() int {
	return e.exact.len() + e.atLeastMine.len() + e.atLeastSafe.len()
}

// run は制約表が増えなくなる（閉包に達する）まで round を繰り返します
func (e *engine) run() *Action {
	prev := -1
	for i := 0; i < maxRounds && e.size() != prev; i++ {
		prev = e.size()
		if act := e.round(); act != nil {
			return act
		}
	}
	return nil
}

// round は全ペアを1巡だけ走査します
// 走査中に見つかった新しい正確制約は pending に溜め、巡回が終わってから
// まとめて取り込みます。巡回の途中で表を書き換えると走査結果が揺れるため
func (e *engine) round() *Action {
	pending := newConstraintTable()
	keys := e.exact.keys
	for i, k1 := range keys {
		c1 := e.exact.cells[k1]
		m1 := e.exact.count[k1]
		for j, k2 := range keys {
			if i == j {
				continue
			}
			c2 := e.exact.cells[k2]
			m2 := e.exact.count[k2]
			// 包含関係は対称ではないので両方向を試す
			if act := e.diffExact(c1, m1, c2, m2, pending); act != nil {
				return act
			}
			if act := e.diffExact(c2, m2, c1, m1, pending); act != nil {
				return act
			}
		}
		if act := e.diffLeasts(c1, m1, e.atLeastMine, e.atLeastSafe, ActionReveal); act != nil {
			return act
		}
		if act := e.diffLeasts(c1, c1.Len()-m1, e.atLeastSafe, e.atLeastMine, ActionFlag); act != nil {
			return act
		}
	}
	for _, k := range pending.keys {
		e.exact.put(pending.cells[k], pending.count[k])
	}
	return nil
}

// diffExact は正確制約同士の差分を調べます
// c1 ⊇ c2 のとき、差集合にはちょうど m1−m2 個の地雷がある
func (e *engine) diffExact(c1 CellSet, m1 int, c2 CellSet, m2 int, pending *constraintTable) *Action {
	if !c1.SupersetOf(c2) {
		return nil
	}
	diff := c1.Diff(c2)
	if diff.Len() == 0 {
		return nil
	}
	mines := m1 - m2
	if diff.Len() == mines {
		return &Action{Kind: ActionFlag, Cells: diff}
	}
	if mines == 0 {
		return &Action{Kind: ActionReveal, Cells: diff}
	}
	if !e.exact.has(diff) {
		pending.put(diff, mines)
	}
	return nil
}

// diffLeasts は正確制約と「少なくとも」制約の差分を調べます
// count1 には地雷数（Reveal 側）または安全マス数（Flag 側）を渡します
// c1 ⊇ c2 のとき、差集合に残る数は高々 count1−count2 個。0 なら確定手、
// そうでなければ反対側の表へ新しい「少なくとも」制約として展開します
func (e *engine) diffLeasts(c1 CellSet, count1 int, leasts, other *constraintTable, kind ActionKind) *Action {
	for _, k := range leasts.keys {
		c2 := leasts.cells[k]
		if !c1.SupersetOf(c2) {
			continue
		}
		diff := c1.Diff(c2)
		if diff.Len() == 0 {
			continue
		}
		n := count1 - leasts.count[k]
		if n == 0 {
			return &Action{Kind: kind, Cells: diff}
		}
		if n != diff.Len() {
			deriveLeasts(other, diff, diff.Len()-n)
		}
	}
	return nil
}
