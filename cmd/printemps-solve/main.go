// Command printemps-solve is the thin CLI front end the core engine needs
// to be run end to end, grounded directly on the original standalone
// pb_solver's argument surface (pb_solver_argparser.h) and solve loop
// (pb_solver.h). None of this file's concerns — PB-lite parsing, flag
// parsing, signal handling — are in the core engine's scope (§1's
// Non-goals name them as external collaborators); this is the outer glue
// SPEC_FULL.md's CLI section calls for so the core can actually be run
// against a file on disk.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gitrdm/printemps/internal/instancefmt"
	"github.com/gitrdm/printemps/pkg/config"
	"github.com/gitrdm/printemps/pkg/model"
	"github.com/gitrdm/printemps/pkg/solver"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("printemps-solve", flag.ContinueOnError)

	optionFile := fs.String("p", "", "option file name (YAML or JSON)")
	initialSolutionFile := fs.String("i", "", "initial solution file name")
	iterationMax := fs.Int("k", 0, "allowed maximum number of outer loop iterations")
	timeMax := fs.Float64("t", 0, "allowed maximum computational time in seconds")
	verbose := fs.String("v", "", "log level (Off, Warning, Outer, Inner, or Full)")
	includeLoadingTime := fs.Bool("include-pb-loading-time", false, "include instance loading time in the computational time")
	exportJSONInstance := fs.Bool("export-json-instance", false, "export the parsed instance as JSON")

	var minimize, maximize bool
	for _, name := range []string{"minimization", "minimize", "min"} {
		fs.BoolVar(&minimize, name, false, "minimize the objective regardless of the instance file")
	}
	for _, name := range []string{"maximization", "maximize", "max"} {
		fs.BoolVar(&maximize, name, false, "maximize the objective regardless of the instance file")
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if minimize && maximize {
		fmt.Fprintln(os.Stderr, "printemps-solve: --minimization and --maximization are mutually exclusive")
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "printemps-solve: expected exactly one instance file argument")
		return 2
	}
	instanceFile := fs.Arg(0)

	opts := config.Default()
	if *optionFile != "" {
		loaded, err := config.Load(*optionFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "printemps-solve:", err)
			return 1
		}
		opts = loaded
	}
	if isFlagGiven(fs, "k") {
		opts.General.IterationMax = *iterationMax
	}
	if isFlagGiven(fs, "t") {
		opts.General.TimeMax = *timeMax
	}
	if isFlagGiven(fs, "v") {
		level, err := parseVerboseLevel(*verbose)
		if err != nil {
			fmt.Fprintln(os.Stderr, "printemps-solve:", err)
			return 2
		}
		opts.Output.Verbose = level
	}

	log := solver.NewLogger(opts.Output.Verbose)

	loadStart := time.Now()
	f, err := os.Open(instanceFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "printemps-solve:", err)
		return 1
	}
	inst, err := instancefmt.ParseInstance(f)
	f.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "printemps-solve:", err)
		return 1
	}
	loadingTime := time.Since(loadStart)

	m := model.NewModel()
	if err := instancefmt.Import(m, inst); err != nil {
		fmt.Fprintln(os.Stderr, "printemps-solve:", err)
		return 1
	}
	if minimize {
		m.Minimize(m.Objective().Expression)
	} else if maximize {
		m.Maximize(m.Objective().Expression)
	}

	if *exportJSONInstance {
		if err := writeJSON("instance.json", inst); err != nil {
			fmt.Fprintln(os.Stderr, "printemps-solve:", err)
			return 1
		}
	}

	if *initialSolutionFile != "" {
		sf, err := os.Open(*initialSolutionFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "printemps-solve:", err)
			return 1
		}
		values, err := instancefmt.ParseSolutionValues(sf)
		sf.Close()
		if err != nil {
			fmt.Fprintln(os.Stderr, "printemps-solve:", err)
			return 1
		}
		if err := m.ImportSolution(values); err != nil {
			fmt.Fprintln(os.Stderr, "printemps-solve:", err)
			return 1
		}
	}

	n, _, err := solver.Preprocess(m, opts, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "printemps-solve:", err)
		return 1
	}

	var interrupt solver.Interrupt
	stopWatching := solver.WatchSignals(&interrupt)
	defer stopWatching()

	result := solver.Run(m, n, opts, &interrupt, log)
	if *includeLoadingTime {
		result.Status.ElapsedTime += loadingTime
	}

	log.Warning("objective = %d, violation = %d, feasible = %v",
		result.Incumbent.Objective, totalViolation(result.Incumbent), result.Incumbent.IsFeasible)

	if err := writeJSON("incumbent.json", result.Incumbent); err != nil {
		fmt.Fprintln(os.Stderr, "printemps-solve:", err)
		return 1
	}
	if err := os.WriteFile("incumbent.sol", []byte(solver.ExportSolutionText(result.Incumbent)), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "printemps-solve:", err)
		return 1
	}
	if err := writeJSON("status.json", result.Status); err != nil {
		fmt.Fprintln(os.Stderr, "printemps-solve:", err)
		return 1
	}
	if result.Incumbent.IsFeasible {
		if err := writeJSON("feasible.json", result.Incumbent); err != nil {
			fmt.Fprintln(os.Stderr, "printemps-solve:", err)
			return 1
		}
	}

	return 0
}

func totalViolation(s solver.Solution) int64 {
	var total int64
	for _, v := range s.Violations {
		total += v
	}
	return total
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}

func parseVerboseLevel(s string) (config.VerboseLevel, error) {
	switch s {
	case "Off":
		return config.VerboseOff, nil
	case "Warning":
		return config.VerboseWarning, nil
	case "Outer":
		return config.VerboseOuter, nil
	case "Inner":
		return config.VerboseInner, nil
	case "Full":
		return config.VerboseFull, nil
	default:
		return 0, fmt.Errorf("invalid verbose level %q", s)
	}
}

// isFlagGiven reports whether name was explicitly set on the command line,
// mirroring pb_solver_argparser.h's is_iteration_max_given/is_time_max_given/
// is_verbose_given: an option file's value should only be overridden when
// the corresponding flag was actually given, not merely left at its zero
// default.
func isFlagGiven(fs *flag.FlagSet, name string) bool {
	given := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			given = true
		}
	})
	return given
}
