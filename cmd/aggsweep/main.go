// Command aggsweep measures how the squared norm of an aggregate grows with
// the number of aggregated signatures and charts it against the bounds.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"falcon-aggregate/aggregate"
	"falcon-aggregate/measure"
	"falcon-aggregate/measureutil"
	"falcon-aggregate/ntru"
	ntrurio "falcon-aggregate/ntru/io"
	"falcon-aggregate/ntru/keys"
	"falcon-aggregate/ntru/signverify"
	"falcon-aggregate/prof"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type point struct {
	K         int     `json:"k"`
	MeanNorm  float64 `json:"mean_norm"`
	MaxNorm   uint64  `json:"max_norm"`
	Quadratic uint64  `json:"quadratic_limit"`
	Linear    uint64  `json:"linear_limit"`
	Accepted  int     `json:"accepted"`
	Runs      int     `json:"runs"`
}

type report struct {
	N      int     `json:"N"`
	Q      uint64  `json:"Q"`
	Beta2  uint64  `json:"beta2"`
	Seed   string  `json:"seed"`
	Msg    string  `json:"message"`
	Points []point `json:"points"`
	Timing []struct {
		Label string  `json:"label"`
		Count int     `json:"count"`
		MeanM float64 `json:"mean_ms"`
	} `json:"timing"`
	S2Bytes         int                 `json:"s2_uncompressed_bytes"`
	CompressedBytes int                 `json:"s2_compressed_bytes"`
	Sizes           []measureutil.Entry `json:"sizes,omitempty"`
}

func main() {
	maxK := flag.Int("k", 16, "largest aggregate size")
	runs := flag.Int("runs", 5, "independent salts per size")
	msg := flag.String("m", "test", "message")
	seedB64 := flag.String("seed", "AQIDBAUGBwgBAgMEBQYHCAECAwQFBgcIAQIDBAUGBwg=", "32-byte base64 keygen seed")
	preset := flag.String("preset", "falcon-512", "parameter preset: falcon-512|falcon-1024")
	paramsPath := flag.String("params", "", "parameter file (overrides -preset)")
	outDir := flag.String("out", "Measure_Reports", "output directory")
	flag.Parse()
	if *maxK < 1 || *runs < 1 {
		log.Fatalf("-k and -runs must be positive")
	}

	par, err := ntru.PresetByName(*preset)
	if err != nil {
		log.Fatalf("params: %v", err)
	}
	if *paramsPath != "" {
		if par, err = ntrurio.LoadParams(*paramsPath); err != nil {
			log.Fatalf("load params: %v", err)
		}
	}
	seed, err := keys.DecodeSeed(*seedB64)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}

	pk, sk, err := signverify.KeygenWithParams(seed, par, ntru.KeygenOpts{})
	if err != nil {
		log.Fatalf("keygen: %v", err)
	}
	signer, err := signverify.NewSigner(sk)
	if err != nil {
		log.Fatalf("signer: %v", err)
	}
	verifier := aggregate.NewVerifier(par)

	points := make([]point, *maxK)
	for k := range points {
		points[k].K = k + 1
		if points[k].Quadratic, err = aggregate.QuadraticBound(par.Beta2, k+1); err != nil {
			log.Fatalf("bound: %v", err)
		}
		if points[k].Linear, err = aggregate.LinearBound(par.Beta2, k+1); err != nil {
			log.Fatalf("bound: %v", err)
		}
	}
	for r := 0; r < *runs; r++ {
		log.Printf("[aggsweep] run %d/%d", r+1, *runs)
		sigs, err := signBatch(signer, []byte(*msg), *maxK)
		if err != nil {
			log.Fatalf("sign: %v", err)
		}
		for k := 1; k <= *maxK; k++ {
			agg, err := aggregate.Aggregate(sigs[:k])
			if err != nil {
				log.Fatalf("aggregate: %v", err)
			}
			rep, err := verifier.Inspect([]byte(*msg), agg, pk, k)
			if err != nil {
				log.Fatalf("inspect k=%d: %v", k, err)
			}
			p := &points[k-1]
			p.Runs++
			p.MeanNorm += (float64(rep.Total) - p.MeanNorm) / float64(p.Runs)
			if rep.Total > p.MaxNorm {
				p.MaxNorm = rep.Total
			}
			if rep.Accepted {
				p.Accepted++
			}
		}
	}

	rep := report{
		N: par.N, Q: par.Q, Beta2: par.Beta2,
		Seed: keys.EncodeSeed(seed), Msg: *msg, Points: points,
		S2Bytes:         measure.BytesRing(par.N, par.Q),
		CompressedBytes: signverify.CompressedLen(par.N),
	}
	log.Printf("[aggsweep] s2 per signature: %s compressed, %s as ring element",
		measure.Human(int64(rep.CompressedBytes)), measure.Human(int64(rep.S2Bytes)))
	for _, st := range prof.Summarize(prof.SnapshotAndReset()) {
		rep.Timing = append(rep.Timing, struct {
			Label string  `json:"label"`
			Count int     `json:"count"`
			MeanM float64 `json:"mean_ms"`
		}{st.Label, st.Count, float64(st.Mean().Microseconds()) / 1000})
	}
	if measure.Enabled {
		rep.Sizes = measureutil.SnapshotAndReset()
	}
	jsonPath := filepath.Join(*outDir, "aggsweep.json")
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		log.Fatalf("write %s: %v", jsonPath, err)
	}

	page := components.NewPage()
	page.AddCharts(newNormChart(points, par))
	htmlPath := filepath.Join(*outDir, "aggsweep.html")
	f, err := os.Create(htmlPath)
	if err != nil {
		log.Fatalf("create html: %v", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatalf("render html: %v", err)
	}
	fmt.Printf("wrote %s and %s\n", jsonPath, htmlPath)
}

// signBatch signs msg k times under one fresh salt and decodes every
// signature so it can be aggregated.
func signBatch(signer *signverify.Signer, msg []byte, k int) ([]*keys.Signature, error) {
	salt := make([]byte, ntru.SaltBytes)
	if _, err := ntru.RandomBytes(salt); err != nil {
		return nil, err
	}
	out := make([]*keys.Signature, k)
	for i := range out {
		sig, err := signer.SignWithSalt(msg, salt, ntru.SignOpts{})
		if err != nil {
			return nil, err
		}
		if err := signverify.Decode(sig, signer.Params()); err != nil {
			return nil, err
		}
		out[i] = sig
	}
	return out, nil
}

func newNormChart(points []point, par ntru.Params) *charts.Line {
	xs := make([]int, len(points))
	mean := make([]opts.LineData, len(points))
	maxv := make([]opts.LineData, len(points))
	quad := make([]opts.LineData, len(points))
	lin := make([]opts.LineData, len(points))
	for i, p := range points {
		xs[i] = p.K
		mean[i] = opts.LineData{Value: p.MeanNorm}
		maxv[i] = opts.LineData{Value: p.MaxNorm}
		quad[i] = opts.LineData{Value: p.Quadratic}
		lin[i] = opts.LineData{Value: p.Linear}
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Aggregate squared norm vs. limit",
			Subtitle: fmt.Sprintf("N=%d q=%d beta^2=%d", par.N, par.Q, par.Beta2),
		}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "aggsweep", Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "k"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "||(s1,s2)||^2", Type: "log"}),
	)
	line.SetXAxis(xs).
		AddSeries("mean norm", mean).
		AddSeries("max norm", maxv).
		AddSeries("beta^2 k^2", quad).
		AddSeries("beta^2 k", lin)
	return line
}
