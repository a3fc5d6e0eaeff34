package main

import (
	"context"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/edwinsyarief/archecs"
)

type position struct{ X, Y float64 }

type velocity struct{ X, Y float64 }

type health struct{ Current, Max int }

type frozen struct{}

type benchOptions struct {
	Config     archecs.Config
	Entities   int
	Iterations int
	Rounds     int
	Workers    int
}

func (o benchOptions) validate() error {
	if o.Entities <= 0 || o.Iterations <= 0 || o.Rounds <= 0 {
		return eris.Errorf("entities, iterations and rounds must be positive, got %d, %d, %d",
			o.Entities, o.Iterations, o.Rounds)
	}
	if o.Workers < 0 {
		return eris.Errorf("workers must not be negative, got %d", o.Workers)
	}
	return o.Config.Validate()
}

type roundReport struct {
	Stats     archecs.Stats `json:"stats"`
	Round     int           `json:"round"`
	Visited   int           `json:"visited"`
	Churned   int           `json:"churned"`
	ElapsedMS float64       `json:"elapsed_ms"`
}

type report struct {
	Config  archecs.Config `json:"config"`
	Rounds  []roundReport  `json:"rounds"`
	TotalMS float64        `json:"total_ms"`
}

// runBench runs every round in its own World. Worlds are not shared between
// goroutines.
func runBench(ctx context.Context, opts benchOptions) (report, error) {
	if err := opts.validate(); err != nil {
		return report{}, eris.Wrap(err, "invalid bench options")
	}
	rep := report{Config: opts.Config, Rounds: make([]roundReport, opts.Rounds)}

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i := range opts.Rounds {
		g.Go(func() error {
			r, err := runRound(ctx, i, opts)
			if err != nil {
				return eris.Wrapf(err, "round %d", i)
			}
			rep.Rounds[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report{}, err
	}
	rep.TotalMS = msSince(start)
	return rep, nil
}

func runRound(ctx context.Context, round int, opts benchOptions) (roundReport, error) {
	logger := log.Logger.With().Int("round", round).Logger()
	w := archecs.NewWorld(archecs.WithLogger(logger), archecs.WithConfig(opts.Config))

	ents := make([]archecs.Entity, opts.Entities)
	for i := range ents {
		ents[i] = w.CreateEntity()
		if err := archecs.Add2(w, ents[i], position{}, velocity{X: 1, Y: float64(i % 7)}); err != nil {
			return roundReport{}, err
		}
		if i%3 == 0 {
			if err := archecs.Add(w, ents[i], health{Current: 100, Max: 100}); err != nil {
				return roundReport{}, err
			}
		}
	}

	rr := roundReport{Round: round}
	start := time.Now()
	move := archecs.NewQuery2[position, velocity](w)
	for it := range opts.Iterations {
		if err := ctx.Err(); err != nil {
			return roundReport{}, err
		}
		move.Each(func(_ archecs.Entity, p *position, v *velocity) {
			p.X += v.X
			p.Y += v.Y
		})
		rr.Visited += move.Len()

		// toggle a marker on a rotating slice of the population
		for i := it % 10; i < len(ents); i += 10 {
			e := ents[i]
			var err error
			if archecs.Contains[frozen](w, e) {
				err = archecs.Remove[frozen](w, e)
			} else {
				err = archecs.Add(w, e, frozen{})
			}
			if err != nil {
				return roundReport{}, err
			}
			rr.Churned++
		}
		// the marker archetypes appear after the first pass
		if it == 0 {
			move = archecs.NewQuery2[position, velocity](w)
		}
	}
	rr.ElapsedMS = msSince(start)
	rr.Stats = w.Stats()
	w.LogStats(zerolog.DebugLevel)
	return rr, nil
}

func writeReport(out io.Writer, rep report, pretty bool) error {
	enc := json.NewEncoder(out)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(rep); err != nil {
		return eris.Wrap(err, "failed to encode report")
	}
	return nil
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
