package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/brunokim/inferd/engine"
	"github.com/brunokim/inferd/parser"
)

func newReplCommand() *cobra.Command {
	var files []string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive query shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEngine(cmd, files)
			if err != nil {
				return err
			}
			rl, err := readline.NewEx(&readline.Config{
				Prompt:                 "?- ",
				HistoryFile:            "/tmp/inferd-history",
				DisableAutoSaveHistory: true,
			})
			if err != nil {
				return err
			}
			defer rl.Close()
			return repl(e, rl)
		},
	}
	cmd.Flags().StringSliceVar(&files, "consult", nil, "knowledge base files to load, in order")
	return cmd
}

const replHelp = `Enter a goal compound to ask it, e.g. [:ancestor :alice ?who]
Directives:
  assert <fact>       add a fact
  retract <fact>      remove a fact
  rule <mapping>      add a rule, e.g. rule {when: [[:p ?x]], then: [[:q ?x]]}
  run                 forward-chain to fixed point
  facts               list facts
  rules               list rules
  set <key> <value>   configure, e.g. set max-depth 20
  explain <goal>      show the first proof tree
  stats               show counters
  quit                leave the shell`

func repl(e *engine.Engine, rl *readline.Instance) error {
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rl.SaveHistory(line)
		if line == "quit" || line == "exit" {
			return nil
		}
		if err := replLine(e, line); err != nil {
			fmt.Println("error:", err)
		}
	}
}

func replLine(e *engine.Engine, line string) error {
	directive, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch directive {
	case "help":
		fmt.Println(replHelp)
	case "assert":
		f, err := parser.ParseTerm(rest)
		if err != nil {
			return err
		}
		return e.Assert(f)
	case "retract":
		f, err := parser.ParseTerm(rest)
		if err != nil {
			return err
		}
		e.Retract(f)
	case "rule":
		r, err := parser.ParseRule(rest)
		if err != nil {
			return err
		}
		return e.AddRule(r)
	case "run":
		if err := e.RunForward(); err != nil {
			return err
		}
		fmt.Printf("%% %d facts\n", e.Stats().Facts)
	case "facts":
		for _, f := range e.Facts() {
			fmt.Println(f)
		}
	case "rules":
		for _, r := range e.Rules() {
			fmt.Println(r)
		}
	case "set":
		key, value, ok := strings.Cut(rest, " ")
		if !ok {
			return fmt.Errorf("usage: set <key> <value>")
		}
		return e.Configure(key, parseConfigValue(strings.TrimSpace(value)))
	case "explain":
		goal, err := parser.ParseQuery(rest)
		if err != nil {
			return err
		}
		p, ok := e.Explain(goal)
		if !ok {
			fmt.Println("no")
			return nil
		}
		fmt.Println(p)
	case "stats":
		s := e.Stats()
		fmt.Printf("facts: %d, rules: %d, forward steps: %d, proofs: %d, depth limit hit: %v\n",
			s.Facts, s.Rules, s.ForwardSteps, s.BackwardProofs, s.DepthLimitHit)
	default:
		goal, err := parser.ParseQuery(line)
		if err != nil {
			return err
		}
		printBindings(goal, e.Ask(goal))
	}
	return nil
}

// parseConfigValue maps a repl word onto the typed value Configure
// expects: bools and ints are recognized, anything else stays a
// string.
func parseConfigValue(word string) interface{} {
	switch word {
	case "true":
		return true
	case "false":
		return false
	}
	var n int
	if _, err := fmt.Sscanf(word, "%d", &n); err == nil {
		return n
	}
	return word
}
