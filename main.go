// chatbot-tui - A terminal chat client for the chatbot backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mandyy1223/chatbot-tui/internal/api"
	"github.com/mandyy1223/chatbot-tui/internal/cli"
	"github.com/mandyy1223/chatbot-tui/internal/config"
	"github.com/mandyy1223/chatbot-tui/internal/history"
	"github.com/mandyy1223/chatbot-tui/internal/storage"
	"github.com/mandyy1223/chatbot-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	args, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprint(os.Stderr, "\n"+cli.Usage())
		os.Exit(2)
	}

	switch args.Command {
	case cli.CmdVersion:
		fmt.Println(cli.VersionString())
	case cli.CmdHelp:
		fmt.Print(cli.Usage())
	case cli.CmdConfig:
		if err := handleConfig(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdHistory:
		if err := handleHistory(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		if err := runTUI(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// loadConfig loads the config file and layers the CLI overrides on top.
func loadConfig(args *cli.Args) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if args.Env != "" {
		cfg.Environment = config.Environment(args.Env)
	}
	if args.BaseURL != "" {
		cfg.Server.BaseURL = args.BaseURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runTUI starts the chat interface.
func runTUI(args *cli.Args) error {
	if !cli.IsTTY() {
		return fmt.Errorf("chatbot-tui requires an interactive terminal")
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	// The TUI owns stdout, so the standard logger writes to a file instead.
	log.SetOutput(io.Discard)
	if derr := config.EnsureDir(); derr == nil {
		if dir, derr := config.Dir(); derr == nil {
			logPath := filepath.Join(dir, "chatbot.log")
			if f, ferr := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600); ferr == nil {
				defer f.Close()
				log.SetOutput(f)
			}
		}
	}

	clientCfg := api.DefaultConfig()
	clientCfg.BaseURL = cfg.ResolveBaseURL()
	clientCfg.Timeout = cfg.Timeout()
	clientCfg.SendTimeout = cfg.SendTimeout()
	if cfg.Server.RequestsPerSecond > 0 {
		clientCfg.RequestsPerSecond = cfg.Server.RequestsPerSecond
	}
	client := api.NewClientWithConfig(clientCfg)

	attachments, err := storage.NewAttachmentStore()
	if err != nil {
		return fmt.Errorf("attachment store: %w", err)
	}
	// Sweep staged files left behind by a previous run.
	if err := attachments.Clean(); err != nil && args.Verbose {
		fmt.Fprintf(os.Stderr, "Warning: could not clean attachments: %v\n", err)
	}

	// History is best-effort: the client works without it.
	var hist *history.Store
	if cfg.History.Enabled {
		if path, perr := cfg.HistoryPath(); perr == nil {
			hist, err = history.Open(path)
			if err != nil {
				if args.Verbose {
					fmt.Fprintf(os.Stderr, "Warning: history disabled: %v\n", err)
				}
				hist = nil
			} else {
				defer hist.Close()
			}
		}
	}

	m := chat.New(chat.Options{
		Client:      client,
		Attachments: attachments,
		History:     hist,
		Config:      cfg,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())

	// Live-reload the config file while the TUI runs.
	if cfgPath, perr := config.Path(); perr == nil {
		watcher, werr := config.Watch(cfgPath)
		if werr == nil {
			defer watcher.Close()
			go func() {
				for {
					select {
					case updated, ok := <-watcher.Updates():
						if !ok {
							return
						}
						p.Send(chat.ConfigReloadedMsg{Cfg: updated})
					case <-watcher.Errors():
						// A bad edit keeps the previous config.
					}
				}
			}()
		} else if args.Verbose {
			fmt.Fprintf(os.Stderr, "Warning: config watch disabled: %v\n", werr)
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running chatbot-tui: %w", err)
	}
	return nil
}

// =============================================================================
// CONFIG SUBCOMMAND
// =============================================================================

func handleConfig(args *cli.Args) error {
	switch args.Subcommand {
	case "", "show":
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}
		histPath, _ := cfg.HistoryPath()
		fmt.Printf("environment:  %s\n", cfg.Environment)
		fmt.Printf("base url:     %s\n", cfg.ResolveBaseURL())
		fmt.Printf("timeout:      %s\n", cfg.Timeout())
		fmt.Printf("send timeout: %s\n", cfg.SendTimeout())
		fmt.Printf("theme:        %s\n", cfg.UI.Theme)
		fmt.Printf("markdown:     %t\n", cfg.UI.Markdown)
		fmt.Printf("history:      %t (%s)\n", cfg.History.Enabled, histPath)
		return nil
	case "path":
		path, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	case "init":
		path, err := config.Path()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}
		if err := config.Save(config.Default()); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	default:
		return fmt.Errorf("unknown config subcommand %q (want show, path, or init)", args.Subcommand)
	}
}

// =============================================================================
// HISTORY SUBCOMMAND
// =============================================================================

func handleHistory(args *cli.Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return fmt.Errorf("history is disabled in the config")
	}
	path, err := cfg.HistoryPath()
	if err != nil {
		return err
	}

	store, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("opening history at %s: %w", path, err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// "chatbot-tui history 50" is shorthand for "history recent 50".
	sub, limit := args.Subcommand, 20
	if n, err := strconv.Atoi(sub); err == nil && n > 0 {
		sub, limit = "recent", n
	} else if len(args.Raw) > 0 {
		if n, err := strconv.Atoi(args.Raw[0]); err == nil && n > 0 {
			limit = n
		}
	}

	switch sub {
	case "", "recent":
		events, err := store.Recent(ctx, limit)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No history yet.")
			return nil
		}
		for _, e := range events {
			line := fmt.Sprintf("%s  %-12s room=%s", e.CreatedAt.Format("2006-01-02 15:04"), e.Kind, e.RoomID)
			if e.Detail != "" {
				line += "  " + strings.ReplaceAll(e.Detail, "\n", " ")
			}
			fmt.Println(line)
		}
		return nil
	case "prune":
		removed, err := store.Prune(ctx, 30*24*time.Hour)
		if err != nil {
			return err
		}
		fmt.Printf("Pruned %d events older than 30 days.\n", removed)
		return nil
	case "path":
		fmt.Println(path)
		return nil
	default:
		return fmt.Errorf("unknown history subcommand %q (want recent, prune, or path)", args.Subcommand)
	}
}
