package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tutorlink/tutorlink-api/internal/core/ports"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the distinct skills offered by tutors",
	RunE:  runSkills,
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search tutors",
	Long: `Search live tutor profiles. Filters left at zero or empty are ignored.

Sort keys: rating (default), price_asc, price_desc, newest.`,
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.String("skill", "", "case-insensitive skill substring")
	f.Float64("min-price", 0, "minimum hourly rate")
	f.Float64("max-price", 0, "maximum hourly rate")
	f.Float64("min-rating", 0, "minimum average rating")
	f.String("sort", "rating", "sort key")

	rootCmd.AddCommand(skillsCmd, searchCmd)
}

func runSkills(cmd *cobra.Command, _ []string) error {
	rt, err := openRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close()

	skills, err := rt.services.Directory.GetAllSkills(cmd.Context())
	if err != nil {
		return err
	}
	for _, s := range skills {
		fmt.Fprintln(cmd.OutOrStdout(), s)
	}
	return nil
}

func optional(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

func runSearch(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	skill, _ := f.GetString("skill")
	minPrice, _ := f.GetFloat64("min-price")
	maxPrice, _ := f.GetFloat64("max-price")
	minRating, _ := f.GetFloat64("min-rating")
	sortBy, _ := f.GetString("sort")

	rt, err := openRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close()

	res, err := rt.services.Directory.Search(cmd.Context(), ports.SearchCriteria{
		Skill:     skill,
		MinPrice:  optional(minPrice),
		MaxPrice:  optional(maxPrice),
		MinRating: optional(minRating),
		SortBy:    sortBy,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tUSERNAME\tRATE\tRATING\tSKILLS")
	for _, t := range res.Tutors {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.FullName, t.Username, formatOptional(t.HourlyRate), formatOptional(t.AverageRating),
			strings.Join(t.Skills, ", "))
	}
	return w.Flush()
}

func formatOptional(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
