package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/report"
	"github.com/pable/go-cricket-metrics/internal/storage"
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
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	cGreeting.Println("cricstats shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("cricstats")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		// Player names contain spaces, so the remainder is one argument.
		arg := strings.TrimSpace(rest)

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			shellList(db, arg == "bowling")
		case "show":
			if arg == "" {
				cError.Fprintln(os.Stderr, "usage: show <name>")
				continue
			}
			if err := showStored(db, arg); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
			}
		case "predict":
			if arg == "" {
				cError.Fprintln(os.Stderr, "usage: predict <name>")
				continue
			}
			if err := predictPlayer(db, arg); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
			}
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
		}
	}
	return scanner.Err()
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "top stored batting careers"},
		{"list bowling", "top stored bowling careers"},
		{"show <name>", "a player's careers and innings history"},
		{"predict <name>", "predicted runs in the player's next match"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-20s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

const shellListLimit = 20

func shellList(db *storage.DB, bowling bool) {
	if bowling {
		careers, err := db.ListBowlingCareers()
		if err != nil {
			cError.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		if len(careers) == 0 {
			cMuted.Println("No bowling careers stored yet.")
			return
		}
		report.PrintBowlingTable(os.Stdout, careers[:min(len(careers), shellListLimit)], "")
		return
	}
	careers, err := db.ListBattingCareers()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(careers) == 0 {
		cMuted.Println("No careers stored yet.")
		return
	}
	report.PrintBattingTable(os.Stdout, careers[:min(len(careers), shellListLimit)], "")
}
