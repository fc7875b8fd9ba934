// Package report derives read-only summaries from a finished run and renders
// them as console tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"jobhunt-scraper/internal/domain"
	"jobhunt-scraper/internal/scrape"
)

type TechCount struct {
	Name  string
	Count int
}

type Summary struct {
	Total        int
	Remote       int
	WithSalary   int
	Technologies []TechCount // most frequent first, ties by name
}

func Summarize(records []domain.JobRecord) Summary {
	s := Summary{Total: len(records)}
	counts := map[string]int{}
	for _, j := range records {
		if j.Remote == domain.RemoteYes {
			s.Remote++
		}
		if j.Salary != "" {
			s.WithSalary++
		}
		for _, t := range j.Technologies {
			counts[t]++
		}
	}
	for name, n := range counts {
		s.Technologies = append(s.Technologies, TechCount{Name: name, Count: n})
	}
	sort.Slice(s.Technologies, func(i, k int) bool {
		a, b := s.Technologies[i], s.Technologies[k]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})
	return s
}

func Render(w io.Writer, s Summary) error {
	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")
	rows := [][]string{
		{"Records", strconv.Itoa(s.Total)},
		{"Remote", strconv.Itoa(s.Remote)},
		{"With salary", strconv.Itoa(s.WithSalary)},
	}
	for _, r := range rows {
		if err := table.Append(r[0], r[1]); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(s.Technologies) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	techTable := tablewriter.NewWriter(w)
	techTable.Header("Technology", "Records")
	for _, t := range s.Technologies {
		if err := techTable.Append(t.Name, strconv.Itoa(t.Count)); err != nil {
			return err
		}
	}
	return techTable.Render()
}

// RenderProbe prints a selector probe: one row per selector, then the
// indicator word counts and the first classed elements.
func RenderProbe(w io.Writer, rep scrape.ProbeReport) error {
	fmt.Fprintf(w, "HTML size: %d bytes\n\n", rep.Size)

	table := tablewriter.NewWriter(w)
	table.Header("Selector", "Matches", "First elements")
	for _, h := range rep.Selectors {
		preview := ""
		for i, p := range h.Previews {
			if i > 0 {
				preview += "\n"
			}
			preview += fmt.Sprintf("%d. %s", i+1, p)
		}
		if err := table.Append(h.Selector, strconv.Itoa(h.Count), preview); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(rep.Words) > 0 {
		fmt.Fprintln(w)
		words := tablewriter.NewWriter(w)
		words.Header("Word", "Occurrences")
		for _, wc := range rep.Words {
			if err := words.Append(wc.Word, strconv.Itoa(wc.Count)); err != nil {
				return err
			}
		}
		if err := words.Render(); err != nil {
			return err
		}
	}

	if len(rep.Classes) > 0 {
		fmt.Fprintln(w)
		classes := tablewriter.NewWriter(w)
		classes.Header("Tag", "Class", "Text")
		for _, c := range rep.Classes {
			if err := classes.Append(c.Tag, c.Class, c.Preview); err != nil {
				return err
			}
		}
		if err := classes.Render(); err != nil {
			return err
		}
	}
	return nil
}
