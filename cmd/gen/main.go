// 推論エンジンだけで（当て推量なしで）何局解き切れるかを計測するツールです
// 1局1行のCSVを書き出し、最後に集計をログに出します
package main

import (
	"encoding/csv"
	"flag"
	"math/rand"
	"os"
	"strconv"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/pbhuss/minesweeper/config"
	"github.com/pbhuss/minesweeper/game"
	"github.com/pbhuss/minesweeper/solver"
)

func main() {
	games := flag.Int("games", 1000, "プレイする局数")
	difficulty := flag.String("difficulty", "easy", "難易度名（config.yaml の difficulties のキー）")
	out := flag.String("out", "results.csv", "出力先のCSVファイル")
	seed := flag.Int64("seed", 1, "乱数シード（同じシードなら同じ結果になる）")
	flag.Parse()

	log := logrus.New()

	cfg, err := config.Load("")
	if err != nil {
		log.WithError(err).Fatal("設定の読み込みに失敗しました")
	}
	d, ok := cfg.Difficulties[*difficulty]
	if !ok {
		log.WithField("difficulty", *difficulty).Fatal("未知の難易度です")
	}

	file, err := os.Create(*out)
	if err != nil {
		log.WithError(err).Fatal("出力ファイルを作れませんでした")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Write([]string{"game", "result", "moves"})

	rng := rand.New(rand.NewSource(*seed))
	results := make([]string, 0, *games)

	for i := 0; i < *games; i++ {
		result, moves := playGame(d, rng)
		writer.Write([]string{strconv.Itoa(i), result, strconv.Itoa(moves)})
		results = append(results, result)
	}

	counts := lo.CountValues(results)
	log.WithFields(logrus.Fields{
		"games":      *games,
		"difficulty": *difficulty,
		"solved":     counts["solved"],
		"stuck":      counts["stuck"],
		"out":        *out,
	}).Info("done")
}

// playGame は1局をエンジン任せでプレイします
// 初手は中央を開け、あとは確定手が尽きるまで適用し続けます
func playGame(d config.Difficulty, rng *rand.Rand) (result string, moves int) {
	b, err := game.NewBoardWithRand(d.Width, d.Height, d.Mines, rng)
	if err != nil {
		return "error", 0
	}
	b.Reveal(d.Width/2, d.Height/2)

	bot := solver.New(b)
	for b.State == game.StateInProgress {
		act, err := bot.SolveOne()
		if err != nil {
			return "error", moves
		}
		if act == nil {
			// 当て推量はしない方針なので、ここで打ち切り
			return "stuck", moves
		}
		b.Apply(act, 0)
		moves++
	}

	if b.State == game.StateWon {
		return "solved", moves
	}
	return "lost", moves
}
