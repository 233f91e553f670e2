package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry is the catalog of shell builtins.
type Registry struct {
	commands sync.Map
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds or replaces a command.
func (r *Registry) Register(cmd Command) error {
	if cmd.Name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if cmd.Run == nil {
		return fmt.Errorf("command %s has no handler", cmd.Name)
	}
	r.commands.Store(cmd.Name, cmd)
	return nil
}

// Unregister removes a command.
func (r *Registry) Unregister(name string) {
	r.commands.Delete(name)
}

// Get looks up a command by name.
func (r *Registry) Get(name string) (Command, bool) {
	val, ok := r.commands.Load(name)
	if !ok {
		return Command{}, false
	}
	return val.(Command), true
}

// Names returns every command name, sorted.
func (r *Registry) Names() []string {
	var names []string
	r.commands.Range(func(key, _ any) bool {
		names = append(names, key.(string))
		return true
	})
	sort.Strings(names)
	return names
}

// List returns the commands in category, or all of them when category is
// nil, sorted by name.
func (r *Registry) List(category *Category) []Command {
	var out []Command
	r.commands.Range(func(_, value any) bool {
		cmd := value.(Command)
		if category == nil || cmd.Category == *category {
			out = append(out, cmd)
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Discover ranks commands by how well they match a keyword query.
func (r *Registry) Discover(query string, limit int) []Command {
	type scored struct {
		cmd   Command
		score float64
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var results []scored
	r.commands.Range(func(_, value any) bool {
		cmd := value.(Command)
		if score := relevance(q, cmd); score > 0 {
			results = append(results, scored{cmd: cmd, score: score})
		}
		return true
	})

	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].cmd.Name < results[j].cmd.Name
	})

	out := make([]Command, 0, len(results))
	for i := 0; i < len(results) && (limit <= 0 || i < limit); i++ {
		out = append(out, results[i].cmd)
	}
	return out
}

// Execute dispatches inv to the named command.
func (r *Registry) Execute(ctx context.Context, inv *Invocation) (Result, bool) {
	cmd, ok := r.Get(inv.Name)
	if !ok {
		return Result{}, false
	}
	inv.registry = r
	return cmd.Run(ctx, inv), true
}

// Stats returns per-category command counts.
func (r *Registry) Stats() map[string]any {
	total := 0
	categories := make(map[string]int)
	r.commands.Range(func(_, value any) bool {
		total++
		categories[string(value.(Command).Category)]++
		return true
	})
	return map[string]any{
		"total_commands": total,
		"categories":     categories,
	}
}

func relevance(query string, cmd Command) float64 {
	score := 0.0

	terms := strings.Fields(query)

	for _, t := range terms {
		if t == cmd.Name || strings.HasPrefix(cmd.Name, t) {
			score += 10.0
		}
	}

	for _, word := range strings.Fields(strings.ToLower(cmd.Summary)) {
		word = strings.Trim(word, ".,()")
		for _, t := range terms {
			if len(t) > 2 && strings.HasPrefix(word, t) {
				score += 5.0
			}
		}
	}

	for _, kw := range cmd.Keywords {
		for _, t := range terms {
			if len(t) > 2 && strings.HasPrefix(kw, t) {
				score += 3.0
			}
		}
	}

	if strings.Contains(query, string(cmd.Category)) {
		score += 2.0
	}

	return score
}
