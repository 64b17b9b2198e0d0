package ui

import (
	"context"
	"fmt"

	ollama "github.com/bz888/ollama-go"
)

// history keeps the conversation turns sent with each chat request.
var history []ollama.Message

// sendChat posts the conversation so far plus content and prints the
// reply. A failed call is reported in the conversation view and the
// session continues; the failed turn is not kept in history.
func sendChat(model string, content string) {
	if content == "" {
		localLogger.Warn("No content parsed")
		return
	}

	fmt.Fprintln(textView, "\n\n[red::]You:[-]")
	fmt.Fprintf(textView, "%s\n\n", content)

	messages := append(history, ollama.Message{Role: ollama.RoleUser, Content: content})

	localLogger.Info("Input request: ", content)
	localLogger.Info("Input model: ", model)

	resp, err := client.Chat(context.Background(), ollama.ChatRequest{
		Model:    model,
		Messages: messages,
	})
	if err != nil {
		localLogger.Error("Chat request failed: ", err)
		app.QueueUpdateDraw(func() {
			fmt.Fprintf(textView, "[red]Request failed: %v[-]\n\n", err)
		})
		return
	}

	history = append(messages, resp.Message)
	localLogger.Info("Chat history length: ", len(history))

	app.QueueUpdateDraw(func() {
		fmt.Fprintf(textView, "[green::]Bot:[-]\n%s\n", resp.Message.Content)
	})
}

// sendGenerate issues a one-shot generate call outside the conversation
// history.
func sendGenerate(model string, prompt string) {
	if prompt == "" {
		localLogger.Warn("No prompt parsed")
		return
	}

	fmt.Fprintln(textView, "\n\n[red::]You:[-]")
	fmt.Fprintf(textView, "%s\n\n", prompt)

	resp, err := client.Generate(context.Background(), ollama.GenerateRequest{
		Model:  model,
		Prompt: prompt,
	})
	if err != nil {
		localLogger.Error("Generate request failed: ", err)
		app.QueueUpdateDraw(func() {
			fmt.Fprintf(textView, "[red]Request failed: %v[-]\n\n", err)
		})
		return
	}

	app.QueueUpdateDraw(func() {
		fmt.Fprintf(textView, "[green::]Bot:[-]\n%s\n", resp.Response)
	})
}

func listModels() ([]ollama.Model, error) {
	return client.ListModels(context.Background())
}
