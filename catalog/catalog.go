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

// Package catalog provides concrete attribute catalogs
// for the expression engine. The engine itself depends
// only on the expr.Catalog interface; this package has
// an in-memory implementation plus a YAML file format
// for it:
//
//	attributes:
//	  - id: price
//	    name: Price
//	    type: number
//	  - id: vip
//	    name: VIP
//	    type: boolean
package catalog

import (
	"fmt"
	"os"

	"github.com/SnellerInc/formula/expr"

	"sigs.k8s.io/yaml"
)

// Entry is one attribute definition.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Catalog is an in-memory, order-preserving attribute
// catalog. It satisfies expr.Catalog. Catalogs are
// immutable once built; the engine only ever reads them.
type Catalog struct {
	entries []Entry
	byID    map[string]int
	byName  map[string]int
}

// New builds a Catalog from entries. Later entries
// shadow earlier ones with the same id or name.
func New(entries ...Entry) *Catalog {
	c := &Catalog{
		entries: entries,
		byID:    make(map[string]int, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}
	for i := range entries {
		c.byID[entries[i].ID] = i
		c.byName[entries[i].Name] = i
	}
	return c
}

// file is the on-disk YAML layout.
type file struct {
	Attributes []Entry `json:"attributes"`
}

// Read parses the YAML catalog format.
func Read(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	for i := range f.Attributes {
		if f.Attributes[i].ID == "" {
			return nil, fmt.Errorf("catalog: attribute %d has no id", i)
		}
		if f.Attributes[i].Name == "" {
			return nil, fmt.Errorf("catalog: attribute %q has no name", f.Attributes[i].ID)
		}
	}
	return New(f.Attributes...), nil
}

// Load reads a YAML catalog from a file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Read(data)
}

// Entries returns the catalog's attribute definitions
// in their original order.
func (c *Catalog) Entries() []Entry { return c.entries }

// Lookup implements expr.Catalog.
func (c *Catalog) Lookup(id string) (expr.AttrInfo, bool) {
	i, ok := c.byID[id]
	if !ok {
		return expr.AttrInfo{}, false
	}
	return expr.AttrInfo{Name: c.entries[i].Name, Type: c.entries[i].Type}, true
}

// ResolveName implements expr.Catalog.
func (c *Catalog) ResolveName(name string) (string, bool) {
	i, ok := c.byName[name]
	if !ok {
		return "", false
	}
	return c.entries[i].ID, true
}
