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

//go:build go1.18

package parse

import (
	"testing"

	"github.com/SnellerInc/formula/expr"
)

// test that we can't cause the parser (or anything
// downstream of it) to panic if we pass it garbage text
func FuzzParse(f *testing.F) {
	for _, text := range sameq {
		f.Add(text)
	}
	f.Add("pow(((((")
	f.Add("{")
	f.Add("}}}}")
	f.Add("1.2.3.4 ** ** ,,")
	f.Fuzz(func(t *testing.T, text string) {
		p := &Parser{Catalog: testcat}
		st, err := p.Parse(text)
		if err != nil {
			// depth-limit rejection is fine
			return
		}
		// whatever parsed must survive the rest of
		// the pipeline
		out := expr.ToString(st, testcat)
		expr.Validate(st)
		expr.InferTypes(st, testcat)
		// and canonical text must parse again
		st2, err := Parse(out, testcat)
		if err != nil {
			t.Fatalf("canonical %q does not re-parse: %s", out, err)
		}
		if again := expr.ToString(st2, testcat); again != out {
			t.Errorf("canonical text drifts: %q then %q", out, again)
		}
	})
}
