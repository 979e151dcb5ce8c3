// pinmap prints the ATmega328PB binding table as YAML: which handle each
// constructor consumes, the lines it claims and the lines shared between
// peripherals.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"avrhal-go/chip/m328pb"

	"gopkg.in/yaml.v3"
)

type document struct {
	Chip     string              `yaml:"chip"`
	Bindings []m328pb.Binding    `yaml:"bindings"`
	Shared   map[string][]string `yaml:"shared,omitempty"`
}

func main() {
	out := flag.String("o", "", "write to file instead of stdout")
	only := flag.String("only", "", "restrict to one peripheral name, e.g. Spi0")
	flag.Parse()

	w := io.Writer(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintln(os.Stderr, "[pinmap]", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}
	if err := render(w, *only); err != nil {
		fmt.Fprintln(os.Stderr, "[pinmap]", err)
		os.Exit(1)
	}
}

func render(w io.Writer, only string) error {
	all := m328pb.Bindings()
	doc := document{Chip: "atmega328pb", Shared: m328pb.SharedLines(all)}
	for _, b := range all {
		if only == "" || b.Name == only {
			doc.Bindings = append(doc.Bindings, b)
		}
	}
	if len(doc.Bindings) == 0 {
		return fmt.Errorf("no peripheral named %q", only)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
