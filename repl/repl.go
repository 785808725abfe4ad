// Package repl reads SQL from a line-oriented input and prints the result of
// every statement, one line of input at a time.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/rsql/output"
	"github.com/vegasq/rsql/query"
	"github.com/vegasq/rsql/table"
)

// Session runs statements against one Database and writes results to out
type Session struct {
	db        *table.Database
	formatter output.Formatter
	out       io.Writer

	// Prompt is printed before each line is read; empty disables it
	Prompt string
}

// New creates a session. The formatter should write to out.
func New(db *table.Database, formatter output.Formatter, out io.Writer) *Session {
	return &Session{db: db, formatter: formatter, out: out}
}

// Exec runs one batch of statements and reports every outcome to the
// session output. It returns the number of statements that failed; a parse
// error counts as one failure for the whole batch.
func (s *Session) Exec(sql string) int {
	results, err := query.Run(sql, s.db)
	if err != nil {
		s.reportError(err)
		return 1
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			s.reportError(r.Err)
			failed++
			continue
		}
		if err := s.formatter.Format(r.Result.Header, r.Result.Rows); err != nil {
			s.reportError(fmt.Errorf("failed to format result: %w", err))
			failed++
		}
	}
	return failed
}

// Run reads lines from in until end of input or an exit command, executing
// each line as a batch. Statement failures are printed and never stop the
// loop; only a read error is returned.
func (s *Session) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), query.MaxQueryLength)

	for {
		if s.Prompt != "" {
			fmt.Fprint(s.out, s.Prompt)
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if isExit(line) {
			break
		}
		s.Exec(line)
	}

	if s.Prompt != "" {
		fmt.Fprintln(s.out)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func (s *Session) reportError(err error) {
	fmt.Fprintf(s.out, "error: %v\n", err)
}

func isExit(line string) bool {
	line = strings.TrimSuffix(line, ";")
	return strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit")
}
