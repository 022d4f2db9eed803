package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/brunokim/inferd/engine"
	"github.com/brunokim/inferd/parser"
	"github.com/brunokim/inferd/term"
)

// newEngine builds an engine for a command invocation, consulting the
// given files in order and enabling tracing when --verbose is set.
func newEngine(cmd *cobra.Command, files []string) (*engine.Engine, error) {
	e := engine.New()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		slog.SetDefault(slog.New(handler))
		if err := e.Configure("trace", true); err != nil {
			return nil, err
		}
	}
	for _, file := range files {
		if err := consultFile(e, file); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func consultFile(e *engine.Engine, filename string) error {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	prog, err := parser.ParseProgram(string(bs))
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	for _, f := range prog.Facts {
		if err := e.Assert(f); err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
	}
	for _, r := range prog.Rules {
		if err := e.AddRule(r); err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
	}
	return nil
}

func newConsultCommand() *cobra.Command {
	var run bool
	cmd := &cobra.Command{
		Use:   "consult <file>...",
		Short: "Load knowledge bases and print the resulting facts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEngine(cmd, args)
			if err != nil {
				return err
			}
			if run {
				if err := e.RunForward(); err != nil {
					return err
				}
			}
			for _, f := range e.Facts() {
				fmt.Println(f)
			}
			stats := e.Stats()
			fmt.Fprintf(os.Stderr, "%% %d facts, %d rules, %d forward steps\n",
				stats.Facts, stats.Rules, stats.ForwardSteps)
			return nil
		},
	}
	cmd.Flags().BoolVar(&run, "run", true, "run forward chaining to fixed point after loading")
	return cmd
}

func newAskCommand() *cobra.Command {
	var files []string
	var limit int
	var forward bool
	cmd := &cobra.Command{
		Use:   "ask <goal>",
		Short: "Prove a goal against consulted knowledge bases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goal, err := parser.ParseQuery(args[0])
			if err != nil {
				return err
			}
			e, err := newEngine(cmd, files)
			if err != nil {
				return err
			}
			if forward {
				if err := e.RunForward(); err != nil {
					return err
				}
			}
			bindings := e.Ask(goal, engine.ProveOptions{Limit: limit})
			printBindings(goal, bindings)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&files, "consult", nil, "knowledge base files to load, in order")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of answers (0 = all)")
	cmd.Flags().BoolVar(&forward, "forward", false, "saturate before asking")
	return cmd
}

func printBindings(goal term.Term, bindings []map[term.Variable]term.Term) {
	if len(bindings) == 0 {
		fmt.Println("no")
		return
	}
	vars := term.ExtractVars(goal)
	for _, b := range bindings {
		if len(vars) == 0 {
			fmt.Println("yes")
			continue
		}
		for i, v := range vars {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Printf("%v = %v", v, b[v])
		}
		fmt.Println()
	}
}

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse knowledge bases and reprint them canonically",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, file := range args {
				bs, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				prog, err := parser.ParseProgram(string(bs))
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
				for _, f := range prog.Facts {
					fmt.Println(f)
				}
				for _, r := range prog.Rules {
					fmt.Println(r)
				}
			}
			return nil
		},
	}
}
