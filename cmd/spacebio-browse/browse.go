package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"spacebio/internal/core/filterstate"
	perr "spacebio/internal/platform/errors"

	"github.com/spf13/cobra"
)

type browseFlags struct {
	category string
	organism string
	from     string
	to       string
	keyword  string
	page     int
}

func browseCommand(g *globalFlags) *cobra.Command {
	var f browseFlags
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Search experiments with filters and an optional keyword",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := g.session(cmd.Context())
			if err != nil {
				return err
			}
			snap, err := run(cmd.Context(), filterstate.New(c), f)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), snap)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.category, "category", "all", "organism category")
	fl.StringVar(&f.organism, "organism", "all", "organism, must belong to the category")
	fl.StringVar(&f.from, "from", "", "first year")
	fl.StringVar(&f.to, "to", "", "last year")
	fl.StringVarP(&f.keyword, "keyword", "k", "", "full text keyword")
	fl.IntVarP(&f.page, "page", "p", 1, "page to show")
	return cmd
}

// run applies the flags through the controller the way the dashboard would
// the category goes first because changing it resets the organism
func run(ctx context.Context, ctl *filterstate.Controller, f browseFlags) (filterstate.Snapshot, error) {
	for _, s := range []struct {
		field filterstate.Field
		value string
	}{
		{filterstate.FieldCategory, f.category},
		{filterstate.FieldOrganism, f.organism},
		{filterstate.FieldYearFrom, f.from},
		{filterstate.FieldYearTo, f.to},
	} {
		if err := ctl.SetFilter(s.field, s.value); err != nil {
			return filterstate.Snapshot{}, err
		}
	}

	var err error
	if strings.TrimSpace(f.keyword) != "" {
		err = ctl.Search(ctx, f.keyword)
	} else {
		err = ctl.ApplyFilters(ctx)
	}
	for p := 1; err == nil && p < f.page; p++ {
		before := ctl.Snapshot().Page
		err = ctl.NextPage(ctx)
		if ctl.Snapshot().Page == before {
			break
		}
	}

	snap := ctl.Snapshot()
	if err != nil {
		if perr.IsTransient(err) {
			return snap, fmt.Errorf("%w (the API may be unavailable, try again)", err)
		}
		return snap, err
	}
	return snap, nil
}

func render(w io.Writer, s filterstate.Snapshot) error {
	r := s.Result
	if a := r.AdminContent; a != nil {
		fmt.Fprintf(w, "[%s] %s\n%s\n\n", a.Category, a.Title, a.Content)
	}
	if len(r.Experiments) == 0 {
		_, err := fmt.Fprintln(w, "no experiments match")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "YEAR\tORGANISM\tMISSION\tTITLE")
	for _, e := range r.Experiments {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.Year, e.Organism, e.Mission, e.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\npage %d of %d, %d experiments\n", r.CurrentPage, r.TotalPages, r.Total)
	return err
}
