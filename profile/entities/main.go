// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

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

func main() {
	rounds := 50
	iters := 1000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

// run creates, iterates and destroys the same population over and over, so
// every round after the first lives on recycled slots.
func run(rounds, iters, numEntities int) {
	for range rounds {
		w := archecs.NewWorld(archecs.WithLogger(zerolog.Nop()), archecs.WithInitialCapacity(numEntities))
		entities := make([]archecs.Entity, 0, numEntities)

		for range iters {
			for i := range numEntities {
				e := w.CreateEntity()
				_ = archecs.Add2(w, e, comp1{}, comp2{V: int64(i), W: 1})
			}
			query := archecs.NewQuery2[comp1, comp2](w)
			entities = entities[:0]
			for query.Next() {
				entities = append(entities, query.Entity())
				c1, c2 := query.Get()
				c1.V += c2.V
				c1.W += c2.W
			}
			for _, e := range entities {
				_ = w.Destroy(e)
			}
		}
	}
}
