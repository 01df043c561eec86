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

package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/SnellerInc/formula/expr"
)

func TestRead(t *testing.T) {
	data := []byte(`
attributes:
  - id: price
    name: Price
    type: number
  - id: vip
    name: VIP
    type: boolean
  - id: misc
    name: Misc
    type: geo_point
`)
	c, err := Read(data)
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{
		{ID: "price", Name: "Price", Type: "number"},
		{ID: "vip", Name: "VIP", Type: "boolean"},
		{ID: "misc", Name: "Misc", Type: "geo_point"},
	}
	if !reflect.DeepEqual(c.Entries(), want) {
		t.Errorf("got %v, want %v", c.Entries(), want)
	}

	info, ok := c.Lookup("price")
	if !ok || info.Name != "Price" || info.Type != "number" {
		t.Errorf("Lookup(price) = %v, %v", info, ok)
	}
	if _, ok := c.Lookup("ghost"); ok {
		t.Error("Lookup invented an attribute")
	}
	id, ok := c.ResolveName("VIP")
	if !ok || id != "vip" {
		t.Errorf("ResolveName(VIP) = %q, %v", id, ok)
	}
	if _, ok := c.ResolveName("vip"); ok {
		t.Error("names resolve by display name, not id")
	}

	// an undeclared type is preserved; the engine maps
	// it to the unknown type set
	info, _ = c.Lookup("misc")
	if expr.DeclaredType(info.Type) != expr.AnyType {
		t.Errorf("type %q should map to %s", info.Type, expr.AnyType)
	}
}

func TestReadErrors(t *testing.T) {
	testcases := []struct {
		data string
		want string
	}{
		{
			data: "attributes: {not: a list}",
			want: "catalog:",
		},
		{
			data: "attributes:\n  - name: Price\n",
			want: "has no id",
		},
		{
			data: "attributes:\n  - id: price\n",
			want: "has no name",
		},
	}
	for i := range testcases {
		tc := &testcases[i]
		_, err := Read([]byte(tc.data))
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("case %d: got %v, want %q", i, err, tc.want)
		}
	}
}

func TestReadEmpty(t *testing.T) {
	c, err := Read([]byte("attributes: []\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Entries()) != 0 {
		t.Errorf("got %v, want no entries", c.Entries())
	}
	if _, ok := c.ResolveName("anything"); ok {
		t.Error("empty catalog resolved a name")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte("attributes:\n  - id: qty\n    name: Quantity\n    type: number\n")
	if err := os.WriteFile(path, data, 0640); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if id, ok := c.ResolveName("Quantity"); !ok || id != "qty" {
		t.Errorf("ResolveName(Quantity) = %q, %v", id, ok)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestShadowing(t *testing.T) {
	c := New(
		Entry{ID: "a", Name: "Alpha", Type: "number"},
		Entry{ID: "a", Name: "Beta", Type: "string"},
	)
	// the later entry wins for both maps
	info, ok := c.Lookup("a")
	if !ok || info.Name != "Beta" || info.Type != "string" {
		t.Errorf("Lookup(a) = %v, %v", info, ok)
	}
	if id, ok := c.ResolveName("Beta"); !ok || id != "a" {
		t.Errorf("ResolveName(Beta) = %q, %v", id, ok)
	}
}

// the compiler checks this too, but keep the contract
// visible in the tests
var _ expr.Catalog = &Catalog{}
