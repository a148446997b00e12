package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/passforge/passforge-go/internal/crypto"
	"github.com/passforge/passforge-go/internal/session"
)

const interactiveHelp = `Commands:
  show              print the current settings
  length <n>        set the password length (4-256)
  toggle <set>      switch a character set on or off: lower, upper, digit, symbol
  generate, g       generate a password
  copy, c           copy the last password to the clipboard
  help              show this help
  exit, quit        leave
`

// RunInteractive reads commands from r and drives sess until EOF or exit.
// Output, including status lines, goes to w.
func RunInteractive(r io.Reader, w io.Writer, sess *session.Session) {
	scanner := bufio.NewScanner(r)

	fmt.Fprintln(w, "=== passforge (interactive mode) ===")
	fmt.Fprint(w, interactiveHelp)
	fmt.Fprintln(w)
	printForm(w, sess.Form())

	for {
		fmt.Fprint(w, "passforge> ")
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return
		}

		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}

		switch strings.ToLower(args[0]) {
		case "help", "?":
			fmt.Fprint(w, interactiveHelp)
		case "show":
			printForm(w, sess.Form())
		case "length", "l":
			if len(args) < 2 {
				fmt.Fprintln(w, "Usage: length <n>")
				continue
			}
			sess.SetLength(args[1])
			printForm(w, sess.Form())
		case "toggle", "t":
			if len(args) < 2 {
				fmt.Fprintln(w, "Usage: toggle <lower|upper|digit|symbol>")
				continue
			}
			c, err := crypto.ParseClass(args[1])
			if err != nil {
				fmt.Fprintln(w, err)
				continue
			}
			sess.Toggle(c)
			printForm(w, sess.Form())
		case "generate", "g":
			if password, err := sess.Generate(); err == nil {
				fmt.Fprintln(w, password)
			}
			fmt.Fprintln(w, sess.Status())
		case "copy", "c":
			_ = sess.Copy()
			fmt.Fprintln(w, sess.Status())
		case "exit", "quit", "q":
			fmt.Fprintln(w, "Bye")
			return
		default:
			fmt.Fprintln(w, "Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// printForm renders the settings as a row of checkboxes.
func printForm(w io.Writer, f session.Form) {
	labels := []struct {
		class crypto.CharacterClass
		label string
	}{
		{crypto.Lowercase, "a-z"},
		{crypto.Uppercase, "A-Z"},
		{crypto.Digit, "0-9"},
		{crypto.Symbol, "Symbols (!@#$...)"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Length: %s ", f.LengthText)
	for _, l := range labels {
		mark := " "
		if f.Classes.Has(l.class) {
			mark = "x"
		}
		fmt.Fprintf(&b, " [%s] %s", mark, l.label)
	}
	fmt.Fprintln(w, b.String())
}
