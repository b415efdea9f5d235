// expensectl is the command-line client for the expense tracker API. It keeps
// the session token in a local file between runs, the same way the web client
// keeps it in browser storage.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/pflag"

	"expense_tracker/internal/client"
	"expense_tracker/internal/guard"
	"expense_tracker/internal/logger"
	"expense_tracker/internal/session"
	"expense_tracker/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %s\n", client.MessageOf(err, err.Error()))
		}
		os.Exit(1)
	}
}

// errReported marks API failures whose message already reached stderr
// through the store error reporter.
var errReported = errors.New("reported")

type cli struct {
	stdout io.Writer
	stderr io.Writer

	storage session.Storage
	store   *store.Store
	thunks  *store.Thunks
	router  *guard.Router

	reported bool
	quiet    bool
}

type command struct {
	name    string
	usage   string
	summary string
	run     func(ctx context.Context, c *cli, args []string) error
}

func commands() []command {
	return []command{
		{"login", "login --email EMAIL --password PASSWORD", "start a session", runLogin},
		{"register", "register --email EMAIL --password PASSWORD --username NAME --role ROLE", "create an account and start a session", runRegister},
		{"logout", "logout", "forget the stored session", runLogout},
		{"whoami", "whoami", "show the session user", runWhoami},
		{"tickets", "tickets <list|show|create|update|approve|deny|delete|events|totals> [flags]", "work with expense tickets", runTickets},
		{"employees", "employees <list|suspend|activate> [ID]", "manage employee accounts (employer only)", runEmployees},
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		apiURL      string
		sessionFile string
		verbose     bool
	)

	flagSet := pflag.NewFlagSet("expensectl", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&apiURL, "api-url", client.BaseURLFromEnv(os.Getenv), "API base URL (env EXPENSE_API_URL)")
	flagSet.StringVar(&sessionFile, "session-file", session.FilePath(), "session file (env EXPENSE_SESSION_FILE)")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log API calls to stderr")
	flagSet.BoolP("help", "h", false, "show help")
	flagSet.SetInterspersed(false)

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help || flagSet.NArg() == 0 {
		printHelp(stderr, flagSet)
		return nil
	}

	if verbose {
		logger.InitWithWriter("development", stderr, slog.LevelDebug)
	} else {
		logger.InitWithWriter("cli", stderr, slog.LevelWarn)
	}

	storage, err := session.OpenFileStorage(sessionFile)
	if err != nil {
		return err
	}

	c := newCLI(apiURL, storage, stdout, stderr)

	name, rest := flagSet.Arg(0), flagSet.Args()[1:]
	for _, cmd := range commands() {
		if cmd.name == name {
			err := cmd.run(ctx, c, rest)
			var apiErr *client.APIError
			if c.reported && errors.As(err, &apiErr) {
				return errReported
			}
			return err
		}
	}
	return fmt.Errorf("unknown command %q (see expensectl --help)", name)
}

func newCLI(apiURL string, storage session.Storage, stdout, stderr io.Writer) *cli {
	s := store.New(store.InitialState(storage))
	c := &cli{
		stdout:  stdout,
		stderr:  stderr,
		storage: storage,
		store:   s,
		thunks:  store.NewThunks(s, client.New(apiURL, storage), storage),
		router:  guard.NewRouter(),
	}
	store.ReportErrors(s, func(slice, message string) {
		if c.quiet {
			return
		}
		c.reported = true
		fmt.Fprintf(c.stderr, "error: %s\n", message)
	})
	return c
}

// enter validates the stored session and applies the page guard for path.
// A stale session is dropped silently on the public pages.
func (c *cli) enter(ctx context.Context, path string) error {
	public := path == guard.PathLogin || path == guard.PathRegister

	c.quiet = public
	err := c.thunks.InitializeAuth(ctx)
	c.quiet = false

	ended := client.IsUnauthorized(err) || client.IsForbidden(err)
	if err != nil && !ended {
		return err
	}

	d := c.router.Resolve(path, c.store.State().Auth)
	switch d.Outcome {
	case guard.Allow:
		return nil
	case guard.Pending:
		return fmt.Errorf("session is still being validated, try again")
	}

	switch {
	case d.Message != "":
		return errors.New(d.Message)
	case d.To == guard.PathLogin && ended:
		return fmt.Errorf("session ended, run \"expensectl login\"")
	case d.To == guard.PathLogin:
		return fmt.Errorf("not logged in, run \"expensectl login\"")
	case public:
		return fmt.Errorf("already logged in, run \"expensectl logout\" first")
	default:
		return fmt.Errorf("%s is not available to your role", strings.TrimPrefix(path, "/"))
	}
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, "expensectl talks to the expense tracker API.\n\nUsage:\n  expensectl [flags] <command> [args]\n\nCommands:\n")
	for _, cmd := range commands() {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintf(w, "\nFlags:\n")
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
