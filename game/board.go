package game

import (
	"errors"
	"math/rand"
	"strings"
	"time"
)

// NewBoard は指定されたサイズと地雷数で盤面を初期化して返します
// 地雷はまだ置きません。最初に開けたマスが地雷にならないよう、初手で配置します
func NewBoard(width, height, mineCount int) (*Board, error) {
	return NewBoardWithRand(width, height, mineCount, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewBoardWithRand は乱数源を指定して盤面を作ります（テストや統計取りに使う）
func NewBoardWithRand(width, height, mineCount int, rng *rand.Rand) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("game: 盤面サイズが不正です")
	}
	if mineCount < 0 || mineCount >= width*height {
		return nil, errors.New("game: 地雷が多すぎます")
	}

	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}

	return &Board{
		Width:         width,
		Height:        height,
		MineCount:     mineCount,
		Cells:         cells,
		State:         StatePregame,
		remaining:     width*height - mineCount,
		flagRemaining: mineCount,
		rng:           rng,
	}, nil
}

// placeMines は初手のマスを避けて地雷をランダムに配置し、数字を計算します
func (b *Board) placeMines(safeX, safeY int) {
	candidates := make([][2]int, 0, b.Width*b.Height-1)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if x == safeX && y == safeY {
				continue
			}
			candidates = append(candidates, [2]int{x, y})
		}
	}
	b.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, p := range candidates[:b.MineCount] {
		x, y := p[0], p[1]
		b.Cells[y][x].IsMine = true
		b.eachNeighbor(x, y, func(nx, ny int) {
			b.Cells[ny][nx].NeighborCount++
		})
	}
}

// Reveal は指定された座標のマスを開けます
// 初手なら地雷を配置してゲーム開始。地雷を踏んだら敗北状態に遷移します
func (b *Board) Reveal(x, y int) {
	if !b.inBounds(x, y) || b.State.Finished() {
		return
	}
	if b.State == StatePregame {
		b.placeMines(x, y)
		b.State = StateInProgress
	}

	cell := &b.Cells[y][x]
	if cell.IsRevealed || cell.IsFlagged {
		return
	}
	cell.IsRevealed = true

	if cell.IsMine {
		cell.IsHit = true
		b.State = StateLost
		b.revealAll()
		return
	}

	// 0マスの連鎖開け（Flood Fill）
	if cell.NeighborCount == 0 {
		b.eachNeighbor(x, y, func(nx, ny int) {
			b.Reveal(nx, ny)
		})
	}

	b.remaining--
	if b.remaining == 0 {
		b.State = StateWon
		b.revealAll()
	}
}

// BurstReveal は開封済みの数字マスの周囲をまとめて開けます
// 周囲の旗の数が数字と一致している場合だけ動作します（いわゆるコード操作）
func (b *Board) BurstReveal(x, y int) {
	if !b.inBounds(x, y) || b.State.Finished() {
		return
	}
	cell := b.Cells[y][x]
	if !cell.IsRevealed {
		return
	}
	flags := 0
	b.eachNeighbor(x, y, func(nx, ny int) {
		if b.Cells[ny][nx].IsFlagged {
			flags++
		}
	})
	if flags != cell.NeighborCount {
		return
	}
	b.eachNeighbor(x, y, func(nx, ny int) {
		b.Reveal(nx, ny)
	})
}

// ToggleFlag は指定された座標の旗を切り替えます
func (b *Board) ToggleFlag(x, y int) {
	if !b.inBounds(x, y) || b.State.Finished() {
		return
	}
	cell := &b.Cells[y][x]
	if cell.IsRevealed {
		return
	}
	if cell.IsFlagged {
		b.flagRemaining++
	} else {
		b.flagRemaining--
	}
	cell.IsFlagged = !cell.IsFlagged
}

// FlagsRemaining は残り旗数（地雷数 − 立てた旗数）を返します
func (b *Board) FlagsRemaining() int {
	return b.flagRemaining
}

// revealAll はゲーム終了時に全マスを開けて見せます
func (b *Board) revealAll() {
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			b.Cells[y][x].IsRevealed = true
		}
	}
}

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// eachNeighbor は盤外を除いた周囲8マスに fn を適用します
func (b *Board) eachNeighbor(x, y int, fn func(nx, ny int)) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if b.inBounds(nx, ny) {
				fn(nx, ny)
			}
		}
	}
}

// String は盤面をコンソール用の文字列にします
// 開封済みは数字（地雷なら x）、旗は F、未開封は . で表します
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.Height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.Width; x++ {
			cell := b.Cells[y][x]
			switch {
			case cell.IsRevealed && cell.IsMine:
				sb.WriteByte('x')
			case cell.IsRevealed:
				sb.WriteByte(byte('0' + cell.NeighborCount))
			case cell.IsFlagged:
				sb.WriteByte('F')
			default:
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
