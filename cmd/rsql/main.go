package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/labstack/gommon/log"
	"github.com/mattn/go-isatty"

	"github.com/vegasq/rsql/api"
	"github.com/vegasq/rsql/output"
	"github.com/vegasq/rsql/repl"
	"github.com/vegasq/rsql/storage"
)

var (
	dataFlag     = flag.String("data", storage.DefaultDataFile, "Table data file")
	columnsFlag  = flag.String("columns", storage.DefaultColumnsFile, "Table schema file")
	seedFlag     = flag.String("seed", "", "JSON seed file used when no data files exist (default: built-in users table)")
	formatFlag   = flag.String("f", "table", "Output format: "+strings.Join(output.Formats, ", "))
	queryFlag    = flag.String("q", "", "Run the given SQL and exit (e.g., \"select id, name from users\")")
	serveFlag    = flag.String("serve", "", "Serve the HTTP API on this address instead of reading stdin (e.g., :8080)")
	logLevelFlag = flag.String("log-level", "info", "Log level: debug, info, warn, error")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Query an in-memory table store with a subset of SQL SELECT.\n")
		fmt.Fprintf(os.Stderr, "Tables are loaded from -data and -columns at start and written back on exit.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -q \"select * from users\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -f csv -q \"select id, name from users\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -serve :8080\n", os.Args[0])
	}

	flag.Parse()

	// Validate flag values
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected argument '%s'\n\n", flag.Arg(0))
		flag.Usage()
		return 1
	}
	if *queryFlag != "" && *serveFlag != "" {
		fmt.Fprintf(os.Stderr, "Error: -q and -serve cannot be used together\n")
		return 1
	}
	level, err := parseLevel(*logLevelFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	formatter, err := output.New(*formatFlag, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Supported formats: %s\n", strings.Join(output.Formats, ", "))
		return 1
	}

	logger := newLogger(level)

	db, err := openDatabase(logger, *dataFlag, *columnsFlag, *seedFlag)
	if err != nil {
		logger.Errorf("failed to load database: %v", err)
		return 1
	}

	status := 0
	switch {
	case *serveFlag != "":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err := api.Serve(ctx, api.NewServer(db, logger), *serveFlag)
		stop()
		if err != nil {
			logger.Errorf("server stopped: %v", err)
			status = 1
		}
	case *queryFlag != "":
		session := repl.New(db, formatter, os.Stdout)
		if failed := session.Exec(*queryFlag); failed > 0 {
			status = 1
		}
	default:
		session := repl.New(db, formatter, os.Stdout)
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			fmt.Println("rsql: type SQL statements, 'exit' or Ctrl-D to quit.")
			session.Prompt = "rsql> "
		}
		if err := session.Run(os.Stdin); err != nil {
			logger.Errorf("%v", err)
			status = 1
		}
	}

	logger.Info("shutting down")
	if err := storage.Save(db, *dataFlag, *columnsFlag); err != nil {
		logger.Errorf("failed to save database: %v", err)
		return 1
	}
	logger.Infof("saved %s and %s", *dataFlag, *columnsFlag)

	return status
}

func newLogger(level log.Lvl) *log.Logger {
	logger := log.New("rsql")
	logger.SetOutput(os.Stderr)
	logger.SetHeader("${time_rfc3339} ${level} ${prefix}")
	logger.SetLevel(level)
	return logger
}

func parseLevel(s string) (log.Lvl, error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG, nil
	case "info":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	default:
		return 0, fmt.Errorf("unsupported log level '%s'", s)
	}
}
