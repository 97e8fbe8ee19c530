// Package report writes the analytics results as a sectioned CSV file and
// as PNG charts.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/reelstats/reelstats/internal/analytics"
)

// Section titles, in file order.
const (
	SectionExtremes   = "Calculation 1: Highest Budget and IMDb Rating"
	SectionGenres     = "Calculation 2: Average IMDb Rating by Genre"
	SectionPopularity = "Calculation 3: Movie Trailer Popularity vs Budget"
)

// WriteCSV writes the three result sections separated by blank rows. Header
// rows are always written; data rows only when a summary has data.
func WriteCSV(w io.Writer, res *analytics.Results) error {
	if res == nil {
		res = &analytics.Results{}
	}
	cw := csv.NewWriter(w)

	rows := [][]string{{SectionExtremes}}
	rows = append(rows, []string{"Category", "Title", "Budget"})
	if e := res.Extremes; e != nil {
		rows = append(rows, []string{"Highest Budget Movie", e.HighestBudget.Title, formatInt(e.HighestBudget.Budget)})
	}
	rows = append(rows, []string{"Category", "Title", "Rating"})
	if e := res.Extremes; e != nil {
		rows = append(rows, []string{"Highest Rated Movie", e.HighestRated.Title, formatFloat(e.HighestRated.Rating)})
	}
	rows = append(rows, []string{})

	rows = append(rows, []string{SectionGenres}, []string{"Genre", "IMDb Rating"})
	for _, g := range res.Genres {
		rows = append(rows, []string{g.Genre, formatFloat(g.Average)})
	}
	rows = append(rows, []string{})

	rows = append(rows, []string{SectionPopularity}, []string{"Title", "Budget", "Total_Views", "Total_Likes", "Total_Comments"})
	if p := res.Popularity; p != nil {
		for _, m := range p.Movies {
			rows = append(rows, []string{m.Title, formatInt(m.Budget), formatInt(m.Views), formatInt(m.Likes), formatInt(m.Comments)})
		}
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteCSVFile writes the report to path, replacing any existing file.
func WriteCSVFile(path string, res *analytics.Results) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := WriteCSV(f, res); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
