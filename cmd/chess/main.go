// FILE: cmd/chess/main.go

// Package main implements the interactive terminal front-end: a
// readline loop driving a single local game.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"chess/internal/cli"
	"chess/internal/game"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

func main() {
	view := cli.New(os.Stdout)

	// Colors only when stdout is a real terminal
	if term.IsTerminal(int(os.Stdout.Fd())) {
		view.SetTheme(cli.ThemeBrown)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".chess_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	view.ShowWelcome()

	var g *game.Game

	for {
		rl.SetPrompt(buildPrompt(g))

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		cmd := cli.ParseCommand(line)
		if cmd.Type == cli.CmdQuit {
			break
		}
		g = handleCommand(view, g, cmd)
	}
}

// buildPrompt shows whose turn it is once a game is running.
func buildPrompt(g *game.Game) string {
	if g == nil || g.Status().Terminal() {
		return "> "
	}
	return fmt.Sprintf("[%s]> ", g.Turn())
}

// handleCommand processes one command and returns the (possibly new)
// active game.
func handleCommand(view *cli.CLI, g *game.Game, cmd *cli.Command) *game.Game {
	switch cmd.Type {
	case cli.CmdNew:
		g = game.New()
		view.ShowMessage("Game started.")
		view.DisplayBoard(g.Board())

	case cli.CmdResume:
		if len(cmd.Args) < 1 {
			view.ShowMessage("Usage: resume <FEN string>")
			return g
		}
		fen := strings.Join(cmd.Args, " ")
		resumed, err := game.NewFromFEN(fen)
		if err != nil {
			view.ShowError(fmt.Errorf("could not resume: %v", err))
			return g
		}
		g = resumed
		view.ShowMessage("Game resumed.")
		view.DisplayBoard(g.Board())
		view.ShowStatus(g.Status())

	case cli.CmdMove:
		if g == nil {
			view.ShowMessage("No active game. Use 'new' or 'resume <FEN>'.")
			return g
		}
		status, err := g.AttemptMoveStr(cmd.Args[0])
		if err != nil {
			view.ShowError(err)
			return g
		}
		view.DisplayBoard(g.Board())
		view.ShowStatus(status)

	case cli.CmdUndo:
		if g == nil {
			view.ShowMessage("No active game.")
			return g
		}
		count := 1
		if len(cmd.Args) > 0 {
			n, err := strconv.Atoi(cmd.Args[0])
			if err != nil || n < 1 {
				view.ShowMessage("Invalid undo count. Usage: undo [count]")
				return g
			}
			count = n
		}
		if err := g.Undo(count); err != nil {
			view.ShowError(err)
			return g
		}
		if count == 1 {
			view.ShowMessage("Move undone")
		} else {
			view.ShowMessage(fmt.Sprintf("%d moves undone", count))
		}
		view.DisplayBoard(g.Board())

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			view.ShowMessage("Usage: color <off|brown|green|gray>")
			return g
		}
		theme := cli.ColorTheme(cmd.Args[0])
		if err := view.SetTheme(theme); err != nil {
			view.ShowError(err)
			return g
		}
		view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
		if g != nil {
			view.DisplayBoard(g.Board())
		}

	case cli.CmdHistory:
		if g == nil {
			view.ShowMessage("No active game.")
			return g
		}
		view.ShowGameHistory(g)

	case cli.CmdHelp:
		view.ShowHelp()
	}

	return g
}
