package view

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/qepting91/hotfavs/internal/domain"
	"github.com/samber/lo"
)

const labelMax = 24

func scoreBar(title string, posts []domain.Post) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)

	labels := lo.Map(posts, func(p domain.Post, _ int) string { return shorten(p.Title, labelMax) })
	values := lo.Map(posts, func(p domain.Post, _ int) opts.BarData {
		return opts.BarData{Name: p.ID, Value: p.Score}
	})
	bar.SetXAxis(labels).AddSeries("Score", values)
	return bar
}

// renderCharts writes the score charts of both lists as one HTML page.
func renderCharts(w io.Writer, page Page) error {
	results := lo.Map(page.Results, func(r Row, _ int) domain.Post { return r.Post })
	favorites := lo.Map(page.Favorites, func(r Row, _ int) domain.Post { return r.Post })

	p := components.NewPage()
	p.AddCharts(
		scoreBar("Hot posts on \""+page.Query+"\"", results),
		scoreBar("Favorite posts", favorites),
	)
	return p.Render(w)
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
