package types

import (
	"fmt"
	"os"
)

// LogSink receives one formatted diagnostic line
type LogSink func(line string)

// ResultSink receives the state transitions of one task
type ResultSink[V any] func(state State[V])

// StdoutSink writes each line to standard output
func StdoutSink(line string) {
	fmt.Fprintln(os.Stdout, line)
}

// DiscardSink drops every line
func DiscardSink(string) {}
