package formatter

import (
	"fmt"
	"strings"

	"github.com/legalaid/caseprogress/internal/catalog"
	"github.com/legalaid/caseprogress/internal/domain"
)

// FormatCatalog lists the required and optional services of each category.
func FormatCatalog(cat *catalog.Catalog) string {
	rows := make([][]string, 0, len(cat.Categories()))
	for _, c := range cat.Categories() {
		entry, err := cat.RequiredAndOptional(c)
		if err != nil {
			continue
		}
		rows = append(rows, []string{
			CategoryBadge(c),
			ServiceLabels(entry.Required),
			ServiceLabels(entry.Optional),
		})
	}
	return RenderTable([]string{"CATEGORY", "REQUIRED", "OPTIONAL"}, rows)
}

// FormatCatalogEntry details one category with each service's weight and
// share of the required total.
func FormatCatalogEntry(cat *catalog.Catalog, category domain.CaseCategory) (string, error) {
	entry, err := cat.RequiredAndOptional(category)
	if err != nil {
		return "", err
	}

	var total float64
	for _, st := range entry.Required {
		total += cat.WeightOf(st)
	}

	rows := make([][]string, 0, len(entry.Required)+len(entry.Optional))
	for _, st := range entry.Required {
		w := cat.WeightOf(st)
		share := "--"
		if total > 0 {
			share = fmt.Sprintf("%.0f%%", 100*w/total)
		}
		rows = append(rows, []string{st.Label(), StyleBlue.Render("required"), fmt.Sprintf("%g", w), share})
	}
	for _, st := range entry.Optional {
		rows = append(rows, []string{st.Label(), Dim("optional"), fmt.Sprintf("%g", cat.WeightOf(st)), Dim("--")})
	}

	var b strings.Builder
	b.WriteString(Header(string(category)) + "\n")
	b.WriteString(RenderTableAligned([]string{"SERVICE", "KIND", "WEIGHT", "SHARE"}, rows, map[int]bool{2: true, 3: true}))
	return b.String(), nil
}
