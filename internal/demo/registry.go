// Package demo holds the hook demonstrations driven by the hookslab CLI.
// Each demo is a component tree plus the line commands that tap its
// buttons.
package demo

import (
	"sort"
	"time"

	"github.com/go-drift/hookslab/pkg/core"
	"github.com/go-drift/hookslab/pkg/swapi"
)

// Options configures the demo trees.
type Options struct {
	// Classic swaps HookCounter for the StatefulWidget ClassCounter.
	Classic bool
	// NotificationTimeout defaults to DefaultNotificationTimeout.
	NotificationTimeout time.Duration
	// Planets backs PlanetInfo. Without one every lookup fails.
	Planets swapi.PlanetSource
}

// Demo represents one runnable demonstration.
type Demo struct {
	Name  string
	Title string
	// Commands maps session input to the label of the button it taps.
	Commands map[string]string
	Builder  func(opts Options) core.Widget
}

// demos is the registry of all demos, keyed by CLI name.
var demos = []Demo{
	{
		Name:  "run",
		Title: "Counter, notification and planet lookup",
		Commands: map[string]string{
			"+":    "+",
			"-":    "-",
			"hide": "hide",
			"show": "show",
		},
		Builder: func(opts Options) core.Widget {
			return PlanetsContext.Provide(opts.Planets, App(opts))
		},
	},
	{
		Name:  "switcher",
		Title: "Independent state slots",
		Commands: map[string]string{
			"dark":  "Dark",
			"light": "Light",
			"+":     "+",
			"-":     "-",
		},
		Builder: func(Options) core.Widget { return HooksSwitcher() },
	},
	{
		Name:     "context",
		Title:    "Reading a provided value",
		Commands: map[string]string{},
		Builder:  func(Options) core.Widget { return ContextDemo() },
	},
}

// Lookup returns the demo registered under name.
func Lookup(name string) (Demo, bool) {
	for _, d := range demos {
		if d.Name == name {
			return d, true
		}
	}
	return Demo{}, false
}

// All returns every registered demo.
func All() []Demo {
	out := make([]Demo, len(demos))
	copy(out, demos)
	return out
}

// CommandNames returns the demo's commands in sorted order.
func (d Demo) CommandNames() []string {
	names := make([]string, 0, len(d.Commands))
	for name := range d.Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
