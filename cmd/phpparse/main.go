// Command phpparse parses PHP source and prints its token stream or program
// tree. It is a thin driver over the lexer and parser packages: all grammar
// decisions live there, this binary only wires input/output around them.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tu6ge/parser-1/ast"
	"github.com/tu6ge/parser-1/lexer"
	"github.com/tu6ge/parser-1/parser"
)

const (
	exitSuccess = 0
	exitError   = 1
)

var (
	dumpAST bool
)

var rootCmd = &cobra.Command{
	Use:   "phpparse [file]",
	Short: "Parse PHP source and print its AST",
	Long: `phpparse parses PHP source code into the parser package's AST and
prints it as JSON.

If no file is given, source is read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print an indented node tree instead of JSON")
	rootCmd.AddCommand(tokensCmd)
}

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token stream",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokens,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(exitError)
	}
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := readInput(args)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	program, err := parser.Parse(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse error: %s\n", err)
		os.Exit(exitError)
	}

	if dumpAST {
		dumpNode(os.Stdout, program, 0)
		return nil
	}

	data, err := json.MarshalIndent(program, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling program: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := readInput(args)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	lx := lexer.New(src)
	i := 0
	for {
		tok := lx.Next()
		if tok.Kind == lexer.EOF {
			break
		}
		i++
		fmt.Printf("%4d: %-28s %q at %d:%d\n", i, tok.Kind.String(), tok.Value, tok.Start.Line, tok.Start.Column)
	}
	if errs := lx.Errors(); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "=== LEXICAL ERRORS ===")
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		os.Exit(exitError)
	}
	return nil
}

// dumpNode prints a "Program (N statements)" header and then the Kind of
// each top-level statement, one level indented; it does not descend into
// fields. It exists for quick manual inspection, the JSON form is the one
// downstream tools should parse.
func dumpNode(w io.Writer, program *ast.Program, indent int) {
	fmt.Fprintf(w, "Program (%d statements)\n", len(program.Statements))
	for _, stmt := range program.Statements {
		dumpOne(w, stmt, 1)
	}
}

func dumpOne(w io.Writer, n ast.Node, indent int) {
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += "  "
	}
	if n == nil {
		fmt.Fprintf(w, "%s<nil>\n", prefix)
		return
	}
	fmt.Fprintf(w, "%s%s\n", prefix, n.Kind().String())
}
