package ui

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	ollama "github.com/bz888/ollama-go"
	"github.com/bz888/ollama-go/internal/config"
	"github.com/bz888/ollama-go/internal/logger"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var app *tview.Application
var client *ollama.Client
var currentModel string
var wg sync.WaitGroup

var (
	debugConsole *tview.TextView
	textView     *tview.TextView
	textArea     *tview.TextArea
	localLogger  *logger.Logger
)

func Init() {
	app = tview.NewApplication()
	app.EnablePaste(true)
	app.EnableMouse(true)

	client = ollama.New(config.Host)
	currentModel = config.Model

	debugConsole = initDebugConsole()

	textView = initChatViewer()
	textArea = initChatInput()
}

func initChatViewer() *tview.TextView {
	textView := tview.NewTextView().
		SetChangedFunc(func() {
			app.Draw()
		}).
		SetDynamicColors(true).
		SetRegions(true).
		SetWordWrap(true)

	textView.SetTitle("Conversation").SetBorder(true)
	textView.SetScrollable(true)
	textView.ScrollToEnd()
	textView.SetWordWrap(true)
	return textView
}

func initChatInput() *tview.TextArea {
	textArea := tview.NewTextArea()
	textArea.SetTitle("Question").SetBorder(true)
	return textArea
}

func initDebugConsole() *tview.TextView {
	console := tview.NewTextView().
		SetChangedFunc(func() {
			app.Draw()
		}).
		SetDynamicColors(true).
		SetRegions(true).
		SetWordWrap(true)

	console.SetTitle("Debugger").SetBorder(true)
	console.ScrollToEnd()
	return console
}

func Run() {
	localLogger = logger.NewLogger("views")

	textView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter:
			app.SetFocus(textArea)
		}
		return event
	})

	subFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(textView, 0, 1, false).
		AddItem(textArea, 8, 2, true)
	mainFlex := tview.NewFlex().
		AddItem(subFlex, 0, 2, false)

	if config.Dev {
		mainFlex.AddItem(debugConsole, 0, 1, true)
	}

	setInputCapture(mainFlex)

	if err := app.SetRoot(mainFlex, true).SetFocus(textArea).Run(); err != nil {
		panic(err)
	}
}

func setInputCapture(mainFlex *tview.Flex) {
	textArea.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {

		switch event.Key() {
		case tcell.KeyESC:
			if textView.GetText(false) != "" {
				app.SetFocus(textView)
			}
		case tcell.KeyEnter:
			content := textArea.GetText()
			if strings.TrimSpace(content) == "" {
				return nil
			}
			textArea.SetText("", true)
			textArea.SetDisabled(true)

			trimmed := strings.TrimSpace(content)

			switch trimmed {
			case "/help":
				listHelp(content)
				textArea.SetDisabled(false)
				return event
			case "/bye":
				quitApp()
				return event
			case "/debug":
				toggleDebugConsole(mainFlex)
				textArea.SetDisabled(false)
				return event
			case "/models":
				go func() {
					createModelModal(mainFlex)
					textArea.SetDisabled(false)
				}()
				return event
			}

			if prompt, ok := strings.CutPrefix(trimmed, "/generate "); ok {
				go func() {
					sendGenerate(currentModel, strings.TrimSpace(prompt))
					textArea.SetDisabled(false)
				}()
				return event
			}

			go func() {
				sendChat(currentModel, content)
				textArea.SetDisabled(false)
			}()
		}
		return event
	})
}

func createModal(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

func createModelModal(mainFlex *tview.Flex) {
	models, err := listModels()
	if err != nil {
		localLogger.Error("Failed to list models: ", err)
		fmt.Fprintf(textView, "\n[red]Could not list models: %v[-]\n\n", err)
		return
	}

	var pages *tview.Pages
	list := tview.NewList()
	list.SetBorder(true)
	for i, model := range models {
		model := model
		runeValue := '0' + rune(i)

		if model.Name == currentModel {
			list.AddItem(model.Name, "Current LLM", runeValue, func() {
				localLogger.Info("This model is currently in use: ", model.Name)
				fmt.Fprintf(textView, "\nAlready using model: %s\n\n", model.Name)
			})
		} else {
			list.AddItem(model.Name, "LLM", runeValue, func() {
				localLogger.Info("Selected: ", model.Name)
				currentModel = model.Name
				fmt.Fprintf(textView, "\nUsing Model: %s\n\n", model.Name)

				pages.RemovePage("modelModal")
				textArea.SetDisabled(false)
				app.SetFocus(textArea)
			})
		}
	}
	modal := createModal(list, 40, 10)
	list.
		AddItem("Back", "", 'q', func() {
			pages.RemovePage("modelModal")
			textArea.SetDisabled(false)
			app.SetFocus(textArea)
		})

	pages = tview.NewPages().
		AddPage("main", mainFlex, true, true).
		AddPage("modelModal", modal, true, true)

	if err := app.SetRoot(pages, true).Run(); err != nil {
		panic(err)
	}
	localLogger.Info("/models command executed and completed")
}

func toggleDebugConsole(mainFlex *tview.Flex) {
	go func() {
		if !config.Dev {
			app.QueueUpdateDraw(func() {
				mainFlex.AddItem(debugConsole, 0, 1, true)
				fmt.Fprintf(textView, "\nDebug console enabled\n")
			})
		} else {
			app.QueueUpdateDraw(func() {
				mainFlex.RemoveItem(debugConsole)
				fmt.Fprintf(textView, "\nDebug console disabled\n")
			})
		}
	}()
}

func quitApp() {
	fmt.Fprintf(textView, "Bye bye\n")

	wg.Add(1)
	go func() {
		defer wg.Done()
		localLogger.Close()
		app.Stop()
		log.Println("Shutting down gracefully.")
	}()

	wg.Wait()
	os.Exit(0)
}

func listHelp(content string) {
	fmt.Fprintln(textView, "[red::]You:[-]")
	fmt.Fprintf(textView, "%s\n\n", content)

	fmt.Fprintf(textView, "[green::]Bot:[-]\n")
	fmt.Fprintf(textView, "Here are some commands you can use:\n")
	fmt.Fprintf(textView, "- /help: Display this help message\n")
	fmt.Fprintf(textView, "- /bye: Exit the application\n")
	fmt.Fprintf(textView, "- /debug: Toggle the debug console\n")
	fmt.Fprintf(textView, "- /generate <prompt>: One-shot completion without history\n")
	fmt.Fprintf(textView, "- /models: Select between local LLM\n\n")
}

func GetDebugConsole() (*tview.TextView, error) {
	if debugConsole == nil {
		return nil, errors.New("debug console not initialized")
	}
	return debugConsole, nil
}
