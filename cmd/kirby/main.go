// ABOUTME: CLI entry point for kirby with terminal restore on every exit path
// ABOUTME: Parses flags, loads config and the file, enters raw mode, and runs the editor

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mauromedda/kirby/internal/config"
	"github.com/mauromedda/kirby/internal/editor"
	kirbylog "github.com/mauromedda/kirby/internal/log"
	"github.com/mauromedda/kirby/internal/pathutil"
	"github.com/mauromedda/kirby/internal/textbuf"
	"github.com/mauromedda/kirby/pkg/tui"
	"github.com/mauromedda/kirby/pkg/tui/terminal"
)

var (
	version = editor.Version
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "kirby: %v\n", err)
		os.Exit(1)
	}

	if args.version {
		fmt.Printf("kirby %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "kirby: %v\n", err)
		os.Exit(1)
	}
}

func run(args cliArgs) (err error) {
	settings, err := loadSettings(args)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(args, settings)
	if err != nil {
		return err
	}
	defer closeLog()

	kb := config.NewKeybindings()
	if err := kb.Apply(settings.Keybindings); err != nil {
		return err
	}
	for action := range settings.Keybindings {
		kirbylog.Debug("binding %s = %v", action, kb.GetBindings(config.KeyAction(action)))
	}

	store, err := openFile(args.file)
	if err != nil {
		return err
	}

	sess, err := terminal.Open(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	guard, err := terminal.Acquire(sess, terminal.WithSignalHook(func(sig os.Signal) {
		kirbylog.Warn("caught %s, restoring terminal", sig)
	}))
	if err != nil {
		return err
	}
	defer releaseGuard(guard, &err)
	defer terminal.RestoreOnPanic(guard)
	defer func() {
		if err != nil {
			clearScreen(sess)
		}
	}()

	geom, err := sess.Geometry()
	if err != nil {
		return err
	}
	kirbylog.Info("viewport %dx%d, %d lines", geom.Rows, geom.Cols, store.Len())

	ed := editor.New(sess, geom, store, editor.WithKeybindings(kb))
	return ed.Run(context.Background())
}

// releaseGuard restores the terminal. A restore failure becomes the run
// error unless an earlier error is already being returned.
func releaseGuard(g *terminal.Guard, err *error) {
	if rerr := g.Release(); rerr != nil && *err == nil {
		*err = rerr
	}
}

func loadSettings(args cliArgs) (*config.Settings, error) {
	if args.config != "" {
		return config.LoadPath(pathutil.ExpandHome(args.config))
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return config.Load(cwd)
}

// setupLogging applies the level and sink. Flags win over settings. With
// no log file the sink stays io.Discard, since the tty is in raw mode.
func setupLogging(args cliArgs, s *config.Settings) (func(), error) {
	switch {
	case args.verbose:
		kirbylog.SetLevel(kirbylog.LevelDebug)
	case s.LogLevel != "":
		l, err := kirbylog.ParseLevel(s.LogLevel)
		if err != nil {
			return nil, err
		}
		kirbylog.SetLevel(l)
	}

	path := args.logFile
	if path == "" {
		path = s.LogFile
	}
	if path == "" {
		kirbylog.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := kirbylog.OpenFile(pathutil.ExpandHome(path))
	if err != nil {
		return nil, err
	}
	kirbylog.SetOutput(f)
	kirbylog.Info("kirby %s starting, log level %s", version, kirbylog.GetLevel())
	return func() {
		kirbylog.SetOutput(io.Discard)
		f.Close()
	}, nil
}

// openFile loads path into a Line Store. An empty path yields an empty store.
func openFile(path string) (*textbuf.Store, error) {
	if path == "" {
		return textbuf.New(), nil
	}
	resolved, ok := pathutil.ResolveReadPath(path)
	if ok && resolved != pathutil.ExpandHome(path) {
		kirbylog.Debug("resolved %q to %q", path, resolved)
	}
	return textbuf.LoadFile(resolved)
}

func clearScreen(w io.Writer) {
	buf := tui.AcquireBuffer()
	defer buf.Release()
	buf.Append(tui.SeqClearScreen)
	buf.Append(tui.SeqCursorHome)
	_ = buf.Flush(w)
}
