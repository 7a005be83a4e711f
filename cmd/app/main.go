package main

import (
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/paulmach/orb"

	"github.com/voxterra/voronoi/pkg/logger"
	"github.com/voxterra/voronoi/pkg/voronoi"
	"github.com/voxterra/voronoi/static"
)

func generateRandomSites(n, width, height int) []orb.Point {
	sites := make([]orb.Point, n)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < n; i++ {
		sites[i] = orb.Point{
			float64(rng.Intn(width)),
			float64(rng.Intn(height)),
		}
	}
	return sites
}

func generateGridSites(n, width, height int) []orb.Point {
	sites := make([]orb.Point, 0, n)

	rows := int(math.Sqrt(float64(n)))
	cols := (n + rows - 1) / rows

	xStep := float64(width) / float64(cols)
	yStep := float64(height) / float64(rows)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if len(sites) >= n {
				break
			}
			sites = append(sites, orb.Point{
				xStep/2 + float64(j)*xStep,
				yStep/2 + float64(i)*yStep,
			})
		}
	}
	return sites
}

func prepareScatter(scatter *charts.Scatter) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: "580px",
			Width:  "1020px",
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                "Voronoi diagram (Fortune's sweep)",
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "Width",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "Height",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

// diagramToEcharts overlays the diagram's edges on a scatter of its sites.
func diagramToEcharts(diagram *voronoi.Diagram) *charts.Scatter {
	scatter := charts.NewScatter()

	points := make([]opts.ScatterData, 0, len(diagram.Sites))
	for _, site := range diagram.Sites {
		points = append(points, opts.ScatterData{
			Value: []float64{site.Point.X(), site.Point.Y()},
		})
	}

	prepareScatter(scatter)

	scatter.AddSeries("Sites", points).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "lightgreen",
			}),
		)

	for _, edge := range diagram.Edges {
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(true)}),
			charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(true)}),
		)

		line.AddSeries("Cell borders", []opts.LineData{
			{Value: []float64{edge.Va.Point.X(), edge.Va.Point.Y()}},
			{Value: []float64{edge.Vb.Point.X(), edge.Vb.Point.Y()}},
		}).SetSeriesOptions(
			charts.WithLineStyleOpts(opts.LineStyle{
				Width: 2,
			}),
		)

		scatter.Overlap(line)
	}

	return scatter
}

// diagramHandler serves the form page and renders the requested diagram,
// optionally smoothed by a few Lloyd iterations, with the sweep log below.
func diagramHandler(w http.ResponseWriter, r *http.Request) {
	width := 1000
	height := 1000
	numSites := 12
	relaxSteps := 0
	var isRandom bool

	if r.Method == http.MethodPost {
		r.ParseForm()
		width, _ = strconv.Atoi(r.FormValue("width"))
		height, _ = strconv.Atoi(r.FormValue("height"))
		numSites, _ = strconv.Atoi(r.FormValue("sites"))
		relaxSteps, _ = strconv.Atoi(r.FormValue("relax"))
		isRandom = r.FormValue("random") == "true"
	}

	var sites []orb.Point
	if isRandom {
		sites = generateRandomSites(numSites, width, height)
	} else {
		sites = generateGridSites(numSites, width, height)
	}

	rect := voronoi.NewRect(0, 0, float64(width), float64(height))

	log := logger.New()
	defer log.ClearLogs()

	diagram, err := voronoi.GenerateDiagramOptions(sites, rect, voronoi.Options{Logger: log})
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	for i := 0; i < relaxSteps; i++ {
		if diagram, err = voronoi.Relax(diagram, rect); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
	}

	scatter := diagramToEcharts(diagram)

	fmt.Fprintln(w, static.Part1)

	if err := scatter.Render(w); err != nil {
		fmt.Println("diagram render error:", err)
	}

	fmt.Fprintln(w, static.Part2)

	for _, entry := range log.Logs {
		fmt.Fprintln(w, entry)
	}

	fmt.Fprintln(w, static.Part3)
}

func main() {
	http.HandleFunc("/", diagramHandler)
	fmt.Println("Listening on http://localhost:8080")
	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Println("ListenAndServe:", err)
	}
}
