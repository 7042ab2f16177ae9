// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package doc serves the OpenAPI description of the rewards API.
package doc

import (
	"embed"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

const specFile = "rewards.yaml"

//go:embed rewards.yaml
var FS embed.FS

// Spec is the part of the OpenAPI document the daemon reports about itself.
type Spec struct {
	Info struct {
		Title   string `yaml:"title"`
		Version string `yaml:"version"`
	} `yaml:"info"`
	Paths map[string]yaml.Node `yaml:"paths"`
}

var load = sync.OnceValue(func() *Spec {
	content, err := FS.ReadFile(specFile)
	if err != nil {
		panic(err)
	}
	var s Spec
	if err := yaml.Unmarshal(content, &s); err != nil {
		panic(err)
	}
	return &s
})

// Version is the version of the documented API.
func Version() string { return load().Info.Version }

func Title() string { return load().Info.Title }

// Paths lists the documented paths, sorted.
func Paths() []string {
	paths := make([]string, 0, len(load().Paths))
	for p := range load().Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
