package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumeris/adventure/internal/config"
	"github.com/lumeris/adventure/internal/game"
	"github.com/lumeris/adventure/pkg/content"
)

func main() {
	cfg := config.Load()

	// The TUI owns the terminal; engine logging would corrupt the alt
	// screen. Failures surface through the UI instead.
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	packs, err := listPacks(cfg.DataDir)
	if err != nil || len(packs) == 0 {
		fmt.Fprintf(os.Stderr, "No content packs found in %s\n", filepath.Join(cfg.DataDir, "packs"))
		os.Exit(1)
	}

	names := make([]string, 0, len(packs))
	for name := range packs {
		names = append(names, name)
	}
	sort.Strings(names)

	packName := names[0]
	if len(names) > 1 {
		fmt.Println("Available Adventures:")
		for i, name := range names {
			fmt.Printf("  %d - %s\n", i+1, name)
		}
		fmt.Print("\nSelect an adventure by number: ")

		var choice int
		if _, err := fmt.Scanf("%d", &choice); err != nil || choice < 1 || choice > len(names) {
			fmt.Fprintf(os.Stderr, "Invalid selection\n")
			os.Exit(1)
		}
		packName = names[choice-1]
	}

	ps, err := game.NewPlayState(packs[packName], log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start %s: %v\n", packName, err)
		os.Exit(1)
	}

	p := tea.NewProgram(NewPlayUI(ps, packName),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// listPacks parses every content pack in the data dir, keyed by pack
// name.
func listPacks(dataDir string) (map[string]*content.Pack, error) {
	packsDir := filepath.Join(dataDir, "packs")
	entries, err := os.ReadDir(packsDir)
	if err != nil {
		return nil, err
	}

	packs := make(map[string]*content.Pack)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(packsDir, entry.Name()))
		if err != nil {
			continue
		}
		p, err := content.Parse(data)
		if err != nil {
			continue
		}
		packs[p.Name] = p
	}
	return packs, nil
}
