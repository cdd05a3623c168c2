package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/rowantrollope/pathkit/internal/tree"
	"github.com/rowantrollope/pathkit/pkg/treepath"
)

func (r *Router) handleVol(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("vol: usage: vol list|switch|create|info")
	}

	sub := strings.ToLower(args[0])
	if sub == "list" {
		return r.volList(ctx)
	}
	if sub == "info" {
		return r.volInfo()
	}
	if sub != "switch" && sub != "create" {
		return fmt.Errorf("vol: unknown subcommand '%s'", sub)
	}
	if len(args) < 2 {
		return fmt.Errorf("vol %s: missing volume name", sub)
	}

	probe, err := r.probeVolume(args[1])
	if err != nil {
		return fmt.Errorf("vol %s: %w", sub, err)
	}
	if sub == "create" {
		if err := probe.Init(ctx); err != nil {
			return err
		}
		r.useVolume(probe.Volume)
		r.Formatter.Printf("Volume '%s' created and active\n", probe.Volume)
		return nil
	}

	exists, err := probe.Exists(ctx, treepath.Empty)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("vol switch: volume '%s' does not exist (use 'vol create %s')", probe.Volume, probe.Volume)
	}
	r.useVolume(probe.Volume)
	return nil
}

// probeVolume returns a client on the same connection bound to name, leaving
// the session's client untouched.
func (r *Router) probeVolume(name string) (*tree.Client, error) {
	if err := tree.ValidateVolume(name); err != nil {
		return nil, err
	}
	return tree.NewClient(r.Client.Redis(), name), nil
}

// useVolume points the client and indexer at name and resets the session.
func (r *Router) useVolume(name string) {
	if err := r.Client.SetVolume(name); err != nil {
		return
	}
	if r.Indexer != nil {
		r.Indexer.SetVolume(name)
	}
	r.State.Volume = name
	r.State.Cwd = treepath.Empty
	r.State.PrevDir = nil
}

func (r *Router) volList(ctx context.Context) error {
	volumes, err := r.Client.ListVolumes(ctx)
	if err != nil {
		return err
	}
	if r.Formatter.JSON {
		return r.Formatter.PrintJSON(volumes)
	}

	for _, vol := range volumes {
		marker := "  "
		if vol == r.State.Volume {
			marker = "* "
		}
		r.Formatter.Printf("%s%s\n", marker, vol)
	}
	return nil
}

func (r *Router) volInfo() error {
	info := []struct{ label, key, value string }{
		{"Volume", "volume", r.State.Volume},
		{"CWD", "cwd", r.State.Cwd.String()},
		{"Flavor", "flavor", r.State.Flavor},
	}
	if r.Formatter.JSON {
		m := make(map[string]string, len(info))
		for _, row := range info {
			m[row.key] = row.value
		}
		return r.Formatter.PrintJSON(m)
	}
	for _, row := range info {
		r.Formatter.Printf("%-7s %s\n", row.label+":", row.value)
	}
	return nil
}
