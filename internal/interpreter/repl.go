package interpreter

import (
	"LatticeDb/internal/interpreter/eval"
	log "LatticeDb/internal/logger"
	"bufio"
	"fmt"
	"io"
	"strings"
)

const prompt = "lattice> "

// maxLineSize bounds a single statement read from the input.
const maxLineSize = 1024 * 1024

// Repl reads one statement per line from in and writes results to out until
// the input ends or the user types exit or quit. Statement errors are printed
// and the session carries on.
func Repl(in io.Reader, out io.Writer, ev *eval.Evaluator, sess *eval.Session) error {
	logger := log.Get("repl")
	logger.Info("Starting REPL session")

	fmt.Fprintln(out, "Welcome to LatticeDB")
	fmt.Fprintln(out, "Enter SQL commands, or type 'exit' to quit")

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if isExit(input) {
			logger.Info("Exiting REPL session")
			fmt.Fprintln(out, "Bye")
			return nil
		}

		logger.Debug("Received input: %s", input)
		result, err := ev.ExecuteSQL(sess, input)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		fmt.Fprint(out, FormatResult(result))
	}

	fmt.Fprintln(out)
	if err := scanner.Err(); err != nil {
		logger.Error("Error reading input: %v", err)
		return fmt.Errorf("reading input: %w", err)
	}
	logger.Info("Input closed, ending REPL session")
	return nil
}

func isExit(input string) bool {
	cmd := strings.ToLower(strings.TrimSuffix(input, ";"))
	return cmd == "exit" || cmd == "quit"
}
