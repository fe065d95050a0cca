package main

import (
	"flag"
	"log"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"xiangqi/internal/engine"
	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/storage"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 不阻塞，不关心错误（某些服务器环境可能无图形界面）
}

func main() {
	addr := flag.String("addr", ":2888", "listen address")
	webDir := flag.String("web", "./web", "directory with the board view (index.html / js / svg)")
	depth := flag.Int("depth", engine.DefaultDepth, "default search depth for /api/ai_move")
	dbDir := flag.String("db", "", "archive directory (default: platform data dir)")
	noDB := flag.Bool("nodb", false, "do not archive finished games")
	browser := flag.Bool("open", true, "open the default browser")
	flag.Parse()

	var store *storage.Storage
	if !*noDB {
		var err error
		store, err = storage.Open(*dbDir)
		if err != nil {
			log.Fatalf("open storage: %v", err)
		}
		defer store.Close()
		if stats, err := store.LoadStats(); err == nil {
			log.Printf("archive: %d games, red %d, black %d", stats.GamesPlayed, stats.RedWins, stats.BlackWins)
		}
	}

	h := httpserver.NewHandler(game.NewManager(), store, *depth)
	srv := httpserver.NewServer(h, *webDir)

	log.Printf("listening on %s, serving static from %s", *addr, *webDir)

	if *browser {
		// 延迟 100ms 打开默认浏览器，否则可能服务器未启动完成
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + *addr)
		}()
	}

	if err := http.ListenAndServe(*addr, srv); err != nil {
		log.Fatal(err)
	}
}
