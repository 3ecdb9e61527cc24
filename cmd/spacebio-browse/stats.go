package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	catdomain "spacebio/internal/services/api/catalog/domain"

	"github.com/spf13/cobra"
)

func statsCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show experiment counts by category, year and organism",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := g.session(cmd.Context())
			if err != nil {
				return err
			}
			s, err := c.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return renderStats(cmd.OutOrStdout(), s)
		},
	}
}

func renderStats(w io.Writer, s catdomain.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	section := func(title string, rows [][2]string) {
		fmt.Fprintf(tw, "%s\t\n", title)
		for _, r := range rows {
			fmt.Fprintf(tw, "  %s\t%s\n", r[0], r[1])
		}
	}
	section("CATEGORY", strRows(s.ByCategory))
	section("ORGANISM", strRows(s.ByOrganism))
	years := make([][2]string, 0, len(s.ByYear))
	for _, b := range s.ByYear {
		years = append(years, [2]string{strconv.Itoa(b.ID), strconv.Itoa(b.Count)})
	}
	section("YEAR", years)
	return tw.Flush()
}

func strRows(bs []catdomain.Bucket[string]) [][2]string {
	out := make([][2]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, [2]string{b.ID, strconv.Itoa(b.Count)})
	}
	return out
}
