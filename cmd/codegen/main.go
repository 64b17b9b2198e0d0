package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	ollama "github.com/bz888/ollama-go"
	"github.com/bz888/ollama-go/internal/logger"
	"github.com/joho/godotenv"
)

const systemPrompt = "You are a code generation assistant. Reply with the requested code only, no explanations."

func main() {
	var (
		prompt  = flag.String("prompt", "", "What code to generate")
		model   = flag.String("model", "llama3.2", "Model to use")
		output  = flag.String("output", "generated.txt", "File the generated code is written to")
		host    = flag.String("host", "", "Base URL of the Ollama server")
		verbose = flag.Bool("verbose", false, "Verbose logging")
	)
	flag.Parse()

	godotenv.Load()

	if strings.TrimSpace(*prompt) == "" {
		fmt.Fprintln(os.Stderr, "a prompt is required")
		flag.Usage()
		os.Exit(1)
	}

	logger.InitLogger(*verbose, "", nil)
	localLogger := logger.NewLogger("codegen")

	baseURL := *host
	if baseURL == "" {
		baseURL = os.Getenv("OLLAMA_HOST")
	}

	client := ollama.New(baseURL)
	client.SetTimeout(5 * time.Minute)

	localLogger.Info("Requesting model ", *model, " at ", client.Host())

	resp, err := client.Chat(context.Background(), ollama.ChatRequest{
		Model: *model,
		Messages: []ollama.Message{
			{Role: ollama.RoleSystem, Content: systemPrompt},
			{Role: ollama.RoleUser, Content: *prompt},
		},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	code := stripCodeFences(resp.Message.Content)
	if err := os.WriteFile(*output, []byte(code+"\n"), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	localLogger.Info("Wrote ", len(code), " bytes to ", *output)
	fmt.Println("Wrote", *output)
}

// stripCodeFences removes a surrounding markdown code block, including a
// language tag on the opening fence, so the output file holds bare code.
func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "```" {
		lines = lines[:n-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
