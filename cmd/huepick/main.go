package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mattfen/huepick/pkg/catalog"
	"github.com/mattfen/huepick/pkg/config"
	"github.com/mattfen/huepick/pkg/picker"
	"github.com/mattfen/huepick/pkg/store"
	"github.com/mattfen/huepick/pkg/ui"
	"github.com/mattfen/huepick/pkg/usage"
	"github.com/mattfen/huepick/pkg/watcher"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "Path to config file")
	profile := flag.String("profile", "", "Profile scope for bookmarks and quick slots")
	selectName := flag.String("select", "", "Select a theme without opening the picker")
	list := flag.Bool("list", false, "Print the catalog and exit")
	showVersion := flag.Bool("version", false, "Show version")
	help := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Println("Usage: huepick [options]")
		fmt.Println("\nAn interactive theme picker.")
		flag.PrintDefaults()
		os.Exit(0)
	}
	if *showVersion {
		fmt.Println("huepick version " + version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *profile != "" {
		cfg.Profile = *profile
	}

	if err := run(cfg, *selectName, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, selectName string, list bool) error {
	if os.Getenv("HUEPICK_DEBUG") != "" {
		f, err := tea.LogToFile(filepath.Join(cfg.StateDir, "debug.log"), "huepick")
		if err == nil {
			defer f.Close()
		}
	}

	provider, aliases, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(filepath.Join(cfg.StateDir, "picker"))
	if err != nil {
		return err
	}

	udb, err := usage.Open(filepath.Join(cfg.StateDir, "usage.db"))
	if err != nil {
		return fmt.Errorf("open usage database: %w", err)
	}
	defer udb.Close()

	counts, err := udb.Counts()
	if err != nil {
		counts = nil
	}

	currentFile := filepath.Join(cfg.StateDir, "current-theme")
	active := readCurrentTheme(currentFile)

	session := picker.NewSession(picker.Options{
		Provider:         provider,
		Aliases:          aliases,
		Store:            st,
		Apply:            applyTheme(currentFile),
		Usage:            udb,
		UsageCounts:      counts,
		Scope:            cfg.Profile,
		Active:           active,
		HistorySize:      cfg.HistorySize,
		BookmarkCapacity: cfg.BookmarkCapacity,
		RenderDebounce:   time.Duration(cfg.RenderDebounceMs) * time.Millisecond,
	})

	if selectName != "" {
		if err := session.Open(picker.OpenOptions{}); err != nil {
			return err
		}
		return session.Select(aliases.Resolve(selectName), false)
	}

	if list {
		if err := provider.Refresh(); err != nil {
			return fmt.Errorf("refresh catalog: %w", err)
		}
		for _, e := range catalog.Entries(provider.Current()) {
			if len(e.GroupPath) > 0 {
				fmt.Printf("%s/%s\n", strings.Join(e.GroupPath, "/"), e.Name)
			} else {
				fmt.Println(e.Name)
			}
		}
		return nil
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("huepick needs a terminal; use --select or --list otherwise")
	}

	m, notify := ui.NewModel(session)
	bridge := &ui.Bridge{}
	session.SetNotifier(notify)
	session.SetRequestRender(bridge.Request)

	if err := session.Open(picker.OpenOptions{}); err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	bridge.Attach(p)

	var dw *watcher.DirWatcher
	if cfg.WatchDirs {
		dw, err = watcher.WatchDirs(cfg.ThemeDirs, 250*time.Millisecond, func() {
			p.Send(ui.CatalogChangedMsg{})
		})
		if err == nil {
			defer dw.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run picker: %w", err)
	}
	return nil
}

// buildProvider picks between the catalog file and directory scanning.
func buildProvider(cfg config.Config) (catalog.Provider, catalog.Aliases, error) {
	if cfg.CatalogFile != "" {
		root, aliases, err := catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			return nil, nil, fmt.Errorf("load catalog file: %w", err)
		}
		return &catalog.StaticProvider{Root: root}, aliases, nil
	}
	return catalog.NewDirProvider(cfg.ThemeDirs...), nil, nil
}

// applyTheme commits a selection by recording it in the current-theme file.
// Preview applications (undo/redo steps) skip the write.
func applyTheme(currentFile string) picker.ApplyFunc {
	return func(name string, persistent bool) error {
		if !persistent {
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(currentFile), 0755); err != nil {
			return err
		}
		return os.WriteFile(currentFile, []byte(name+"\n"), 0644)
	}
}

func readCurrentTheme(currentFile string) string {
	data, err := os.ReadFile(currentFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
