package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"

	"github.com/Sidolux/pesel-generator/internal/cli"
	"github.com/Sidolux/pesel-generator/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("peselgen"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	if len(os.Args) > 1 {
		runCLI(ctx, os.Args[1])
		_ = app.Close()
		return
	}

	if err := runTUI(); err != nil {
		slog.Error("tui", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

func runCLI(ctx context.Context, cmd string) {
	switch cmd {
	case "version":
		fmt.Printf("peselgen %s\n", version)
	case "generate":
		cli.CmdGenerate(os.Args[2:])
	case "range":
		cli.CmdRange(os.Args[2:])
	case "export":
		cli.CmdExport(ctx, os.Args[2:])
	case "check":
		cli.CmdCheck(os.Args[2:])
	case "scan":
		cli.CmdScan(os.Args[2:])
	case "save":
		cli.CmdSave(os.Args[2:])
	case "list":
		cli.CmdList(os.Args[2:])
	case "forget":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "usage: peselgen forget <id>")
			os.Exit(1)
		}
		cli.CmdForget(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "peselgen: unknown command %q\n", cmd)
		os.Exit(1)
	}
}

func runTUI() error {
	dataDir := cli.DataDir()
	firstRun := cli.IsFirstRun(dataDir)

	m := tui.New(version, dataDir, firstRun)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := finalModel.(tui.Model); ok {
		fm.Close()
	}

	return nil
}
