package report

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"docuscraper/internal/domain"
)

// RenderCharts writes an HTML dashboard over the catalog: documents per
// class and validation outcomes per class.
func RenderCharts(w io.Writer, docs []domain.DocumentRecord) error {
	sum := Build(docs)

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Documents per Class"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)
	var pieItems []opts.PieData
	for _, cs := range sum.Classes {
		pieItems = append(pieItems, opts.PieData{Name: cs.DocClass, Value: cs.Count})
	}
	pie.AddSeries("Documents", pieItems)

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Validated Documents"}))
	var barX []string
	var barY []opts.BarData
	for _, cs := range sum.Classes {
		barX = append(barX, cs.DocClass)
		barY = append(barY, opts.BarData{Value: cs.Validated})
	}
	bar.SetXAxis(barX).AddSeries("Validated", barY)

	if err := pie.Render(w); err != nil {
		return err
	}
	return bar.Render(w)
}
