package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/slp-results/internal/report"
	"github.com/pable/slp-results/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	cGreeting.Println("slpresults shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("slpresults")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			shellList(db)
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <hash-prefix> [--player <code>]")
				continue
			}
			var focus string
			for i := 1; i+1 < len(args); i++ {
				if args[i] == "--player" {
					focus = args[i+1]
				}
			}
			if err := showByHash(db, args[0], focus); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
			}
		case "player":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: player <code> [<code>...] [--vs <code>]")
				continue
			}
			codes, vs := splitVs(args)
			if err := printPlayers(os.Stdout, db, codes, vs); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
			}
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q — type 'help'\n", cmd)
		}
	}
	return scanner.Err()
}

// splitVs separates a trailing "--vs <code>" from the code list.
func splitVs(args []string) (codes []string, vs string) {
	for i := 0; i < len(args); i++ {
		if args[i] == "--vs" && i+1 < len(args) {
			vs = args[i+1]
			i++
			continue
		}
		codes = append(codes, args[i])
	}
	return codes, vs
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored replays"},
		{"show <hash-prefix>", "show a replay's result"},
		{"show <hash-prefix> --player <code>", "same, highlighting one player"},
		{"player <code> [...]", "win/loss record for one or more codes"},
		{"player <code> --vs <code>", "same, with a head-to-head record"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-38s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellList(db *storage.DB) {
	replays, err := db.ListReplays()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(replays) == 0 {
		cMuted.Println("No replays stored yet.")
		return
	}
	report.PrintReplayList(os.Stdout, replays)
}
