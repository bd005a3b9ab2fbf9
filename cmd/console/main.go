package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"newscast/tui"
)

func main() {
	_ = godotenv.Load()

	defaultURL := "http://localhost:8080"
	if port := os.Getenv("PORT"); port != "" {
		defaultURL = "http://localhost:" + port
	}
	apiURL := flag.String("api", defaultURL, "Newscast API base URL")
	token := flag.String("token", os.Getenv("NEWSCAST_TOKEN"), "API token (defaults to $NEWSCAST_TOKEN)")
	flag.Parse()

	m := tui.NewModel(tui.NewAPIClient(*apiURL, *token))
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
