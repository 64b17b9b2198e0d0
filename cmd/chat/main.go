package main

import (
	"log"

	"github.com/bz888/ollama-go/internal/config"
	"github.com/bz888/ollama-go/internal/logger"
	"github.com/bz888/ollama-go/internal/ui"
)

func main() {
	config.Init()
	ui.Init()

	debugConsole, err := ui.GetDebugConsole()
	if err != nil {
		log.Fatal(err)
	}

	logger.InitLogger(config.Dev, config.LogPath, debugConsole)

	ui.Run()
}
