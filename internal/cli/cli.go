// Package cli implements the passforge command line: one-shot generation,
// an interactive session, hash verification and API token minting.
package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/passforge/passforge-go/internal/config"
	"github.com/passforge/passforge-go/internal/crypto"
	"github.com/passforge/passforge-go/internal/session"
)

const maxCount = 100

const usage = `Usage:
  passforge                      interactive session
  passforge generate [flags]     print passwords
  passforge verify -hash <phc>   check a password read from stdin against a hash
  passforge token -client <name> mint an API token (needs API_TOKEN_SECRET)
`

// Env bundles the process resources commands use, so tests can substitute them.
type Env struct {
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Clipboard session.Clipboard
	Generator *crypto.Generator
	Config    config.Config
}

// Run dispatches args (without the program name) and returns the exit status.
func Run(args []string, env Env) int {
	if env.Generator == nil {
		env.Generator = crypto.NewGenerator(nil)
	}

	if len(args) == 0 {
		if env.Clipboard == nil {
			fmt.Fprintln(env.Stderr, "note: no clipboard found (install xclip, xsel or wl-clipboard); copy is disabled")
		}
		sess := session.New(env.Generator, env.Clipboard, session.DefaultForm(env.Config.Defaults))
		RunInteractive(env.Stdin, env.Stdout, sess)
		return 0
	}

	cmd, rest := args[0], args[1:]
	// Bare flags are shorthand for "generate".
	if strings.HasPrefix(cmd, "-") && cmd != "-h" && cmd != "-help" && cmd != "--help" {
		cmd, rest = "generate", args
	}

	switch cmd {
	case "generate", "gen":
		return runGenerate(rest, env)
	case "verify":
		return runVerify(rest, env)
	case "token":
		return runToken(rest, env)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(env.Stdout, usage)
		return 0
	}

	fmt.Fprintf(env.Stderr, "unknown command %q\n\n%s", cmd, usage)
	return 2
}

// GenerateOptions holds the parsed flags of the generate command.
type GenerateOptions struct {
	Length  string
	Classes string
	Count   int
	Copy    bool
	Hash    bool
}

// ParseGenerateFlags registers and parses generate flags on fs. Defaults
// come from d so a defaults file changes what a bare invocation produces.
func ParseGenerateFlags(fs *flag.FlagSet, args []string, d config.Defaults) (GenerateOptions, error) {
	var opts GenerateOptions

	defLength := fmt.Sprint(d.Length)
	fs.StringVar(&opts.Length, "length", defLength, "Password length (4-256)")
	fs.StringVar(&opts.Length, "l", defLength, "Password length (shorthand)")

	fs.StringVar(&opts.Classes, "classes", d.Classes.String(), "Comma separated character sets: lower,upper,digit,symbol")

	fs.IntVar(&opts.Count, "count", 1, "Number of passwords to generate")
	fs.IntVar(&opts.Count, "c", 1, "Number of passwords (shorthand)")

	fs.BoolVar(&opts.Copy, "copy", false, "Copy the output to the clipboard")
	fs.BoolVar(&opts.Hash, "hash", false, "Print an argon2id hash next to each password")

	err := fs.Parse(args)
	return opts, err
}

// Request converts the options into a validated generation request.
func (o GenerateOptions) Request() (crypto.GenerationRequest, error) {
	length, err := crypto.ParseLength(o.Length)
	if err != nil {
		return crypto.GenerationRequest{}, err
	}
	classes, err := crypto.ParseClassSet(strings.Split(o.Classes, ","))
	if err != nil {
		return crypto.GenerationRequest{}, err
	}
	req := crypto.GenerationRequest{Length: length, Classes: classes}
	return req, req.Validate()
}

func runGenerate(args []string, env Env) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	opts, err := ParseGenerateFlags(fs, args, env.Config.Defaults)
	if err != nil {
		return 2
	}

	if opts.Count < 1 || opts.Count > maxCount {
		fmt.Fprintf(env.Stderr, "error: count must be between 1 and %d\n", maxCount)
		return 2
	}

	req, err := opts.Request()
	if err != nil {
		fmt.Fprintln(env.Stderr, "error:", userMessage(err))
		return 1
	}

	lines := make([]string, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		password, err := env.Generator.Generate(req)
		if err != nil {
			fmt.Fprintln(env.Stderr, "error:", userMessage(err))
			return 1
		}

		line := password
		if opts.Hash {
			hash, err := crypto.HashPassword(password)
			if err != nil {
				fmt.Fprintln(env.Stderr, "error:", err)
				return 1
			}
			line += "\t" + hash
		}
		lines = append(lines, line)
	}

	output := strings.Join(lines, "\n")
	fmt.Fprintln(env.Stdout, output)
	slog.Debug("passwords generated", "count", opts.Count, "length", req.Length, "classes", req.Classes.String())

	if opts.Copy {
		if env.Clipboard == nil {
			fmt.Fprintln(env.Stderr, "Copy failed: no clipboard available")
			return 1
		}
		if err := env.Clipboard.WriteAll(output); err != nil {
			fmt.Fprintln(env.Stderr, "Copy failed:", err)
			return 1
		}
		fmt.Fprintln(env.Stderr, session.StatusCopied)
	}

	return 0
}

func runVerify(args []string, env Env) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	hash := fs.String("hash", "", "argon2id hash in PHC format")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *hash == "" {
		fmt.Fprintln(env.Stderr, "error: -hash is required")
		return 2
	}

	scanner := bufio.NewScanner(env.Stdin)
	if !scanner.Scan() {
		fmt.Fprintln(env.Stderr, "error: no password on stdin")
		return 2
	}
	password := strings.TrimRight(scanner.Text(), "\r")

	match, err := crypto.VerifyPassword(password, *hash)
	if err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		return 2
	}
	if !match {
		fmt.Fprintln(env.Stdout, "no match")
		return 1
	}
	fmt.Fprintln(env.Stdout, "match")
	return 0
}

func runToken(args []string, env Env) int {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	client := fs.String("client", "", "name of the API client the token is issued to")
	expiry := fs.Duration("expiry", env.Config.APITokenExpiry, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if env.Config.APITokenSecret == "" {
		fmt.Fprintln(env.Stderr, "error: API_TOKEN_SECRET is not set")
		return 1
	}
	if *expiry <= 0 {
		*expiry = 24 * time.Hour
	}

	token, err := crypto.GenerateToken(*client, env.Config.APITokenSecret, *expiry)
	if err != nil {
		if errors.Is(err, crypto.ErrClientMissing) {
			fmt.Fprintln(env.Stderr, "error: -client is required")
			return 2
		}
		fmt.Fprintln(env.Stderr, "error:", err)
		return 1
	}

	fmt.Fprintln(env.Stdout, token)
	return 0
}

var validationErrors = []error{
	crypto.ErrInvalidLength,
	crypto.ErrOutOfRange,
	crypto.ErrNoClassSelected,
	crypto.ErrLengthInsufficient,
}

// userMessage renders validation errors with the same wording as the
// interactive session, minus the trailing period.
func userMessage(err error) string {
	for _, known := range validationErrors {
		if errors.Is(err, known) {
			return strings.TrimSuffix(session.Message(err), ".")
		}
	}
	return err.Error()
}
