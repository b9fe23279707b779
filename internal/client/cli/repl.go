package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Add(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Cancel(ctx context.Context, id string) error
	Retry(ctx context.Context, id string) error
	Progress(ctx context.Context) error
	Link(ctx context.Context, id string) error
	Wait(ctx context.Context) error
}

// runREPL reads commands from scanner until EOF, "exit" or "quit".
//
// Handler errors are printed and the loop goes on; a failed command never
// ends the session.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("gu%s> ", prefixed(statusFn())))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn("Available commands: add <path|dir|glob>..., (l)ist, cancel <id>, retry <id>, (p)rogress, link <id>, wait, exit")

		case "add":
			if len(args) == 0 {
				printlnFn("Usage: add <path|dir|glob>...")
				continue
			}
			err = a.Add(ctx, args)

		case "l", "list":
			err = a.List(ctx)

		case "cancel", "retry", "link":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "cancel":
				err = a.Cancel(ctx, args[0])
			case "retry":
				err = a.Retry(ctx, args[0])
			default:
				err = a.Link(ctx, args[0])
			}

		case "p", "progress":
			err = a.Progress(ctx)

		case "wait":
			err = a.Wait(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

func prefixed(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}
