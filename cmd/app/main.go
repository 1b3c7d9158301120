package main

import (
	"flag"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/pbhuss/minesweeper/config"
	"github.com/pbhuss/minesweeper/server"
)

func main() {
	configPath := flag.String("config", "", "設定ファイルのパス（省略時は ./config.yaml を探す）")
	addr := flag.String("addr", "", "待ち受けアドレス（設定ファイルより優先）")
	flag.Parse()

	log := logrus.New()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("設定の読み込みに失敗しました")
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	mux := http.NewServeMux()
	server.New(cfg, log).Routes(mux)
	// staticフォルダの中身（html, js, wasm）はそのまま配信する
	mux.Handle("/", http.FileServer(http.Dir(cfg.Server.StaticDir)))

	log.WithField("addr", cfg.Server.Addr).Info("server starting")
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, mux))
}
