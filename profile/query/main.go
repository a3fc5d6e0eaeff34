// Profiling:
// go build ./profile/query
// go tool pprof -http=":8000" -nodefraction=0.001 ./query cpu.pprof

package main

import (
	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"github.com/edwinsyarief/archecs"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

type comp3 struct {
	V int64
	W int64
}

type flag struct{}

func main() {
	rounds := 20
	iters := 1000
	entities := 100000
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for range rounds {
		w := archecs.NewWorld(archecs.WithLogger(zerolog.Nop()), archecs.WithInitialCapacity(numEntities))
		for i := range numEntities {
			e := w.CreateEntity()
			_ = archecs.Add3(w, e, comp1{}, comp2{V: 1, W: 1}, comp3{})
			// split the population over two archetypes
			if i%2 == 0 {
				_ = archecs.Add(w, e, flag{})
			}
		}
		query := archecs.NewQuery3[comp1, comp2, comp3](w)

		for range iters {
			query.Reset()
			for query.Next() {
				c1, c2, c3 := query.Get()
				c1.V += c2.V
				c1.W += c2.W
				c3.V = c1.V
			}
		}
	}
}
