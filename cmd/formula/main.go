// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Command formula parses a formula against an attribute
// catalog and reports its canonical form, structural
// errors, type errors and inferred result type.
//
// Usage:
//
//	formula -s catalog.yaml '{Price} * {Quantity}'
//	formula -s catalog.yaml -f formula.txt
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/SnellerInc/formula/catalog"
	"github.com/SnellerInc/formula/expr"
	"github.com/SnellerInc/formula/expr/parse"
)

var (
	dashs string
	dashf bool
	dashv bool
)

func init() {
	flag.StringVar(&dashs, "s", "", "path to the YAML attribute catalog (required)")
	flag.BoolVar(&dashf, "f", false, "read the argument as a file containing the formula")
	flag.BoolVar(&dashv, "v", false, "print the inferred type of every node")
}

func exit(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(1)
}

func main() {
	flag.Parse()
	if dashs == "" || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	cat, err := catalog.Load(dashs)
	if err != nil {
		exit("loading catalog: %s", err)
	}
	text := strings.Join(flag.Args(), " ")
	if dashf {
		buf, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			exit("reading formula: %s", err)
		}
		text = string(buf)
	}

	p := &parse.Parser{Catalog: cat}
	store, err := p.Parse(text)
	if err != nil {
		exit("parsing: %s", err)
	}
	for _, d := range p.Dropped {
		fmt.Fprintf(os.Stderr, "warning: ignored %q at offset %d\n", d.Text, d.Pos)
	}

	fmt.Println(expr.ToString(store, cat))

	bad := false
	v := expr.Validate(store)
	for _, err := range v.Errs {
		bad = true
		fmt.Fprintf(os.Stderr, "structure: %s\n", err)
	}
	ti := expr.InferTypes(store, cat)
	for _, err := range ti.Errs {
		bad = true
		fmt.Fprintf(os.Stderr, "types: %s\n", err)
	}
	if dashv {
		for _, n := range store.Nodes() {
			fmt.Fprintf(os.Stderr, "%s\t%s\n", n.ID(), ti.Types[n.ID()])
		}
	}
	fmt.Printf("type: %s\n", ti.Result)
	if bad {
		os.Exit(1)
	}
}
