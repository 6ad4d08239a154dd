package cmd

import (
	"fmt"

	"github.com/calyptra/rexcraft/internal/export"
	"github.com/calyptra/rexcraft/internal/recipe"
	"github.com/calyptra/rexcraft/rex"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	checkPattern bool
	matchSamples []string
	outPath      string
	overwrite    bool
	ignoreCase   bool
	multiline    bool
	dotAll       bool
	ungreedy     bool
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render [recipe]",
	Short: "Render a recipe file into a regular-expression pattern",
	Long: `Render a recipe file into the pattern string it describes.

The recipe is applied line by line to an empty sequence; the resulting
pattern is printed on stdout. With --check the pattern is also compiled
through the regexp engine, and --match tests sample strings against it.

Examples:
  rexcraft render decimal.rex
  rexcraft render phone.rex --check
  rexcraft render phone.rex --match "(123)-456-7890" --match "nope"
  rexcraft render word.rex --ignore-case --match HELLO`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	// Render-specific flags
	renderCmd.Flags().BoolVar(&checkPattern, "check", false, "compile the pattern through the regexp engine")
	renderCmd.Flags().StringArrayVar(&matchSamples, "match", nil, "sample string to test against the pattern (repeatable, implies --check)")
	renderCmd.Flags().BoolVar(&ignoreCase, "ignore-case", false, "case-insensitive matching")
	renderCmd.Flags().BoolVar(&multiline, "multiline", false, "^ and $ also match at line boundaries")
	renderCmd.Flags().BoolVar(&dotAll, "dot-all", false, ". also matches newline")
	renderCmd.Flags().BoolVar(&ungreedy, "ungreedy", false, "swap greedy and non-greedy repeats")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the rendered pattern to this file")
	renderCmd.Flags().BoolVar(&overwrite, "overwrite", false, "allow --out to replace an existing file")

	// Bind flags to viper
	viper.BindPFlag("check", renderCmd.Flags().Lookup("check"))
}

// renderFlags collects the flag options into a rex flag set
func renderFlags() rex.Flags {
	var flags rex.Flags
	if ignoreCase {
		flags |= rex.IgnoreCase
	}
	if multiline {
		flags |= rex.Multiline
	}
	if dotAll {
		flags |= rex.DotAll
	}
	if ungreedy {
		flags |= rex.Ungreedy
	}
	return flags
}

func runRender(cmd *cobra.Command, args []string) error {
	recipePath := args[0]

	// Create filesystem interface
	fs := afero.NewOsFs()

	parser := recipe.NewParser(fs)
	re, err := parser.LoadFile(recipePath)
	if err != nil {
		return fmt.Errorf("failed to load recipe: %w", err)
	}

	pattern, err := re.AsString()
	if err != nil {
		return fmt.Errorf("failed to render pattern: %w", err)
	}

	if viper.GetBool("verbose") {
		fmt.Printf("Recipe: %s\n", recipePath)
		fmt.Printf("Pattern: %s\n", pattern)
	} else {
		fmt.Println(pattern)
	}

	if outPath != "" {
		svc := export.NewService(fs)
		if err := svc.SavePattern(pattern, export.Options{Path: outPath, Overwrite: overwrite}); err != nil {
			return fmt.Errorf("failed to save pattern: %w", err)
		}
		if viper.GetBool("verbose") {
			fmt.Printf("Pattern written to: %s\n", outPath)
		}
	}

	if !checkPattern && len(matchSamples) == 0 {
		return nil
	}

	compiled, err := re.Compile(renderFlags())
	if err != nil {
		return fmt.Errorf("pattern does not compile: %w", err)
	}

	if viper.GetBool("verbose") {
		fmt.Printf("Compiled: %s\n", compiled.String())
	}

	for _, sample := range matchSamples {
		verdict := "no match"
		if compiled.MatchString(sample) {
			verdict = "match"
		}
		fmt.Printf("%-8s  %q\n", verdict, sample)
	}

	return nil
}
