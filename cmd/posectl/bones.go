package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"avatar-rig/internal/engine"
	"avatar-rig/internal/taxonomy"
)

type bonesOptions struct {
	inputOptions
	Category string

	Out io.Writer
}

func newBonesCommand(out io.Writer) *cobra.Command {
	o := &bonesOptions{Out: out}
	cmd := &cobra.Command{
		Use:   "bones",
		Short: "List bone categories and the pose controls of each bone",
		Long: `List the bone taxonomy. With --skeleton only bones present in that
skeleton are shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(); err != nil {
				return err
			}
			return o.Run()
		},
	}
	o.AddFlags(cmd.Flags())
	cmd.Flags().StringVar(&o.Category, "category", "", "Only list this category (face, torso, arms, hands, legs)")
	return cmd
}

func (o *bonesOptions) Run() error {
	e := engine.New()
	if o.Config.Skeleton != "" {
		var err error
		if e, err = o.newEngine(nil); err != nil {
			return err
		}
	}

	found := false
	for _, c := range e.Categories() {
		if o.Category != "" && c.Key != o.Category {
			continue
		}
		found = true
		fmt.Fprintf(o.Out, "%s (%d)\n", c.Name, len(c.Bones))
		for _, b := range c.Bones {
			fmt.Fprintf(o.Out, "  %-22s %-9s %s\n", b, convention(b), controlList(b))
		}
	}
	if !found {
		return fmt.Errorf("unknown category %q", o.Category)
	}
	return nil
}

func convention(bone string) string {
	if taxonomy.IsPrimaryConvention(bone) {
		return "primary"
	}
	return "alternate"
}

func controlList(bone string) string {
	var parts []string
	for _, c := range taxonomy.Controls(bone) {
		parts = append(parts, fmt.Sprintf("%s[%.3g,%.3g]", c.Target, c.Min, c.Max))
	}
	return strings.Join(parts, " ")
}
