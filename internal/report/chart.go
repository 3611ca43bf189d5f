package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderActivityChart writes an HTML line chart of cumulative commits per
// contributor over time, one point per commit on the shared timeline.
func RenderActivityChart(doc *Document, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating chart folder: %w", err)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    doc.Repository + " commit activity",
			Subtitle: "Cumulative commits per contributor",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	// The activity stream is already in chronological order.
	axis := make([]string, len(doc.Activity))
	for i, p := range doc.Activity {
		axis[i] = p.Time.Format("2006-01-02")
	}
	line.SetXAxis(axis)

	series := map[string][]opts.LineData{}
	running := map[string]int{}
	for _, name := range sortedKeys(doc.CommitsPerMember) {
		series[name] = make([]opts.LineData, 0, len(doc.Activity))
	}
	for _, p := range doc.Activity {
		running[p.Contributor]++
		for name := range series {
			series[name] = append(series[name], opts.LineData{Value: running[name]})
		}
	}
	for _, name := range sortedKeys(doc.CommitsPerMember) {
		line.AddSeries(name, series[name])
	}

	path := filepath.Join(dir, doc.Repository+"_activity.html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return "", fmt.Errorf("rendering chart: %w", err)
	}
	return path, nil
}
