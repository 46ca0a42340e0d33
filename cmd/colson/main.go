// Command colson converts documents between ColSON, JSON, and YAML.
//
// Usage:
//
//	colson [-from colson|json|yaml] [-to colson|json|yaml] [-tab N] [-o FILE] [FILE]
//
// The input is read from FILE, or from stdin when no file is given. The
// result is written to stdout unless -o is set.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/colson-lang/go-colson"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

func run(args []string, stdin io.Reader, stdout io.Writer) int {
	fs := flag.NewFlagSet("colson", flag.ContinueOnError)
	from := fs.String("from", "colson", "input format: colson, json, or yaml")
	to := fs.String("to", "json", "output format: colson, json, or yaml")
	tab := fs.Int("tab", 4, "spaces per indentation level for ColSON")
	out := fs.String("o", "", "write output to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var (
		data []byte
		err  error
	)
	switch fs.NArg() {
	case 0:
		data, err = io.ReadAll(stdin)
	case 1:
		data, err = os.ReadFile(fs.Arg(0))
	default:
		fmt.Fprintln(os.Stderr, "colson: too many arguments")
		return 2
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	result, err := convert(data, *from, *to, *tab)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *out != "" {
		if err := os.WriteFile(*out, result, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	if _, err := stdout.Write(result); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func convert(data []byte, from, to string, tab int) ([]byte, error) {
	var v any
	switch from {
	case "colson":
		if err := colson.Unmarshal(data, &v, colson.TabWidth(tab)); err != nil {
			return nil, err
		}
	case "json":
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("colson: unknown input format %q", from)
	}

	switch to {
	case "colson":
		out, err := colson.Marshal(v, colson.TabWidth(tab))
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "json":
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "yaml":
		return yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("colson: unknown output format %q", to)
	}
}
