package archecs_test

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/edwinsyarief/archecs"
)

var benchSizes = []int{1000, 10000, 100000}

func sizeName(size int) string {
	if size >= 1000000 {
		return fmt.Sprintf("%dM", size/1000000)
	}
	return fmt.Sprintf("%dK", size/1000)
}

func benchWorld(size int) *archecs.World {
	return archecs.NewWorld(
		archecs.WithLogger(zerolog.Nop()),
		archecs.WithInitialCapacity(size),
	)
}

func populate(w *archecs.World, size int) []archecs.Entity {
	ents := make([]archecs.Entity, size)
	for i := range ents {
		ents[i] = w.CreateEntity()
		_ = archecs.Add2(w, ents[i], Position{X: float64(i)}, Velocity{X: 1, Y: 1})
	}
	return ents
}

func BenchmarkCreateEntity(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(sizeName(size), func(b *testing.B) {
			for b.Loop() {
				b.StopTimer()
				w := benchWorld(size)
				b.StartTimer()
				for range size {
					w.CreateEntity()
				}
			}
			b.ReportAllocs()
		})
	}
}

func BenchmarkAdd2(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(sizeName(size), func(b *testing.B) {
			for b.Loop() {
				b.StopTimer()
				w := benchWorld(size)
				ents := make([]archecs.Entity, size)
				for i := range ents {
					ents[i] = w.CreateEntity()
				}
				b.StartTimer()
				for _, e := range ents {
					_ = archecs.Add2(w, e, Position{}, Velocity{})
				}
			}
			b.ReportAllocs()
		})
	}
}

func BenchmarkAddRemoveCycle(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(sizeName(size), func(b *testing.B) {
			w := benchWorld(size)
			ents := populate(w, size)
			for b.Loop() {
				for _, e := range ents {
					_ = archecs.Add(w, e, Health{})
				}
				for _, e := range ents {
					_ = archecs.Remove[Health](w, e)
				}
			}
			b.ReportAllocs()
		})
	}
}

func BenchmarkGet(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(sizeName(size), func(b *testing.B) {
			w := benchWorld(size)
			ents := populate(w, size)
			for b.Loop() {
				for _, e := range ents {
					archecs.Get[Position](w, e)
				}
			}
			b.ReportAllocs()
		})
	}
}

func BenchmarkDestroy(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(sizeName(size), func(b *testing.B) {
			for b.Loop() {
				b.StopTimer()
				w := benchWorld(size)
				ents := populate(w, size)
				b.StartTimer()
				for _, e := range ents {
					_ = w.Destroy(e)
				}
			}
			b.ReportAllocs()
		})
	}
}

func BenchmarkQuery2(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(sizeName(size), func(b *testing.B) {
			w := benchWorld(size)
			populate(w, size)
			q := archecs.NewQuery2[Position, Velocity](w)
			for b.Loop() {
				q.Reset()
				for q.Next() {
					p, v := q.Get()
					p.X += v.X
					p.Y += v.Y
				}
			}
			b.ReportAllocs()
		})
	}
}

func BenchmarkEventBusPublish(b *testing.B) {
	for _, handlers := range []int{0, 1, 100} {
		b.Run(fmt.Sprintf("%dHandlers", handlers), func(b *testing.B) {
			bus := &archecs.EventBus{}
			for range handlers {
				archecs.Subscribe(bus, func(testEvent) {})
			}
			event := testEvent{Value: 42}
			for b.Loop() {
				archecs.Publish(bus, event)
			}
			b.ReportAllocs()
		})
	}
}
