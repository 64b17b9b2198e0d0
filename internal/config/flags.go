package config

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
)

var (
	Dev     bool
	LogPath string
	Host    string
	Model   string
)

// Init parses the chat demo flags. Host resolution order: -host flag,
// OLLAMA_HOST (a .env file is honored), then the client's built-in default.
func Init() {
	godotenv.Load()

	flag.BoolVar(&Dev, "dev", false, "Development mode")
	flag.StringVar(&LogPath, "logPath", "", "Path to save the log file")
	flag.StringVar(&Host, "host", "", "Base URL of the Ollama server")
	flag.StringVar(&Model, "model", "llama3.2", "Model used for the conversation")
	flag.Parse()

	if Host == "" {
		Host = os.Getenv("OLLAMA_HOST")
	}
}
