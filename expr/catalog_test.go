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

package expr

// testCatalog is the minimal Catalog used across the
// package tests.
type testCatalog map[string]AttrInfo

func (c testCatalog) Lookup(id string) (AttrInfo, bool) {
	info, ok := c[id]
	return info, ok
}

func (c testCatalog) ResolveName(name string) (string, bool) {
	for id, info := range c {
		if info.Name == name {
			return id, true
		}
	}
	return "", false
}

var testcat = testCatalog{
	"price":  {Name: "Price", Type: "number"},
	"qty":    {Name: "Quantity", Type: "number"},
	"vip":    {Name: "VIP", Type: "boolean"},
	"active": {Name: "Active", Type: "boolean"},
	"label":  {Name: "Label", Type: "string"},
	"misc":   {Name: "Misc", Type: "geo_point"},
}

// adopt parents n under p and returns n.
func adopt(n Node, p Node) Node {
	n.SetParent(p.ID())
	return n
}
