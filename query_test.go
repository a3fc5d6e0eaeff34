package archecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwinsyarief/archecs"
)

func collect[T any](q *archecs.Query[T]) []archecs.Entity {
	var out []archecs.Entity
	for e := range q.All() {
		out = append(out, e)
	}
	return out
}

// go test -run ^TestQueryScenario$ . -count 1
func TestQueryScenario(t *testing.T) {
	world := setupWorld(t)
	e1, e2, e3 := world.CreateEntity(), world.CreateEntity(), world.CreateEntity()
	for _, e := range []archecs.Entity{e1, e2, e3} {
		require.NoError(t, archecs.Add(world, e, Position{}))
	}
	require.NoError(t, archecs.Add(world, e2, Velocity{}))

	assert.ElementsMatch(t, []archecs.Entity{e1, e2, e3}, collect(archecs.NewQuery[Position](world)))

	var both []archecs.Entity
	archecs.NewQuery2[Position, Velocity](world).Each(func(e archecs.Entity, _ *Position, _ *Velocity) {
		both = append(both, e)
	})
	assert.Equal(t, []archecs.Entity{e2}, both)

	require.NoError(t, archecs.Remove[Position](world, e1))
	assert.ElementsMatch(t, []archecs.Entity{e2, e3}, collect(archecs.NewQuery[Position](world)))
	assert.False(t, archecs.Contains[Position](world, e1))
	assert.True(t, world.IsValid(e1))
}

// go test -run ^TestQueryCompleteness$ . -count 1
func TestQueryCompleteness(t *testing.T) {
	world := setupWorld(t)
	want := map[archecs.Entity]bool{}
	for i := range 200 {
		e := world.CreateEntity()
		switch i % 4 {
		case 0:
			require.NoError(t, archecs.Add(world, e, Position{X: float64(i)}))
			want[e] = true
		case 1:
			require.NoError(t, archecs.Add2(world, e, Position{X: float64(i)}, Velocity{}))
			want[e] = true
		case 2:
			require.NoError(t, archecs.Add(world, e, Velocity{}))
		case 3:
			require.NoError(t, archecs.Add3(world, e, Health{}, Tag{}, Position{X: float64(i)}))
			want[e] = true
		}
	}
	// churn: destroy a few, strip a few
	for e := range want {
		if e.Index()%7 == 0 {
			require.NoError(t, world.Destroy(e))
			delete(want, e)
		} else if e.Index()%5 == 0 {
			require.NoError(t, archecs.Remove[Position](world, e))
			delete(want, e)
		}
	}

	q := archecs.NewQuery[Position](world)
	seen := map[archecs.Entity]int{}
	for q.Next() {
		seen[q.Entity()]++
		assert.Equal(t, float64(q.Entity().Index()), q.Get().X, "component belongs to %s", q.Entity())
	}
	assert.Len(t, seen, len(want))
	for e, n := range seen {
		assert.Equal(t, 1, n, "%s visited more than once", e)
		assert.True(t, want[e], "%s should not match", e)
		assert.True(t, archecs.Contains[Position](world, e))
	}
	assert.Equal(t, len(want), q.Len())
	requireParallel(t, world)
}

// go test -run ^TestQueryDestroyWhileIterating$ . -count 1
func TestQueryDestroyWhileIterating(t *testing.T) {
	world := setupWorld(t)
	for i := range 50 {
		e := world.CreateEntity()
		require.NoError(t, archecs.Add2(world, e, Position{X: float64(i)}, Health{Current: i % 3}))
	}

	q := archecs.NewQuery2[Position, Health](world)
	visited := 0
	for q.Next() {
		visited++
		_, h := q.Get()
		if h.Current == 0 {
			require.NoError(t, world.Destroy(q.Entity()))
		}
	}
	assert.Equal(t, 50, visited, "backward walk visits every entity exactly once")

	q.Reset()
	for q.Next() {
		_, h := q.Get()
		assert.NotZero(t, h.Current)
	}
	assert.Equal(t, 33, world.Len())
	requireParallel(t, world)
}

// go test -run ^TestQueryRestructureWhileIterating$ . -count 1
func TestQueryRestructureWhileIterating(t *testing.T) {
	world := setupWorld(t)
	for i := range 20 {
		e := world.CreateEntity()
		require.NoError(t, archecs.Add(world, e, Position{X: float64(i)}))
	}
	// the {Position, Velocity} archetype does not exist yet, so the frozen
	// query never sees the entities moved into it
	q := archecs.NewQuery[Position](world)
	moved := 0
	for q.Next() {
		if int(q.Get().X)%2 == 0 {
			require.NoError(t, archecs.Add(world, q.Entity(), Velocity{X: 1}))
			moved++
		}
	}
	assert.Equal(t, 10, moved)
	assert.Equal(t, 10, archecs.NewQuery2[Position, Velocity](world).Len())
	assert.Equal(t, 20, archecs.NewQuery[Position](world).Len())
	requireParallel(t, world)
}

// go test -run ^TestQueryFrozenAtConstruction$ . -count 1
func TestQueryFrozenAtConstruction(t *testing.T) {
	world := setupWorld(t)
	q := archecs.NewQuery[Position](world)
	e := world.CreateEntity()
	require.NoError(t, archecs.Add(world, e, Position{}))

	q.Reset()
	assert.False(t, q.Next(), "archetypes created after construction are not visited")
	assert.Len(t, collect(archecs.NewQuery[Position](world)), 1)
}

// go test -run ^TestQuery3Mutation$ . -count 1
func TestQuery3Mutation(t *testing.T) {
	world := setupWorld(t)
	for i := range 10 {
		e := world.CreateEntity()
		require.NoError(t, archecs.Add3(world, e, Position{}, Velocity{X: float64(i), Y: 1}, Health{}))
	}
	q := archecs.NewQuery3[Position, Velocity, Health](world)
	for range 3 {
		q.Each(func(_ archecs.Entity, p *Position, v *Velocity, h *Health) {
			p.X += v.X
			p.Y += v.Y
			h.Current++
		})
	}
	for e := range archecs.NewQuery[Position](world).All() {
		p, v := archecs.Get2[Position, Velocity](world, e)
		assert.Equal(t, 3*v.X, p.X)
		assert.Equal(t, 3.0, p.Y)
		assert.Equal(t, 3, archecs.Get[Health](world, e).Current)
	}
}

// go test -run ^TestWorldView$ . -count 1
func TestWorldView(t *testing.T) {
	world := setupWorld(t)
	e := world.CreateEntity()
	require.NoError(t, archecs.Add2(world, e, Position{}, Velocity{}))
	f := world.CreateEntity()
	require.NoError(t, archecs.Add(world, f, Velocity{}))

	velID, _ := archecs.Lookup[Velocity](world.Registry())
	posID, _ := archecs.Lookup[Position](world.Registry())

	assert.Len(t, world.View(velID), 2)
	assert.Len(t, world.View(velID, posID), 1)
	for _, a := range world.View(velID, posID) {
		assert.True(t, a.Signature().Contains(archecs.Signature{posID}))
	}
}

// go test -run ^TestQueryMoveIntoMatchedArchetype$ . -count 1
func TestQueryMoveIntoMatchedArchetype(t *testing.T) {
	world := setupWorld(t)
	// {Position} is created before {Position, Velocity} and is walked first
	mover := world.CreateEntity()
	require.NoError(t, archecs.Add(world, mover, Position{}))
	settled := world.CreateEntity()
	require.NoError(t, archecs.Add2(world, settled, Position{}, Velocity{}))
	movers := []archecs.Entity{mover}
	for range 2 {
		e := world.CreateEntity()
		require.NoError(t, archecs.Add(world, e, Position{}))
		movers = append(movers, e)
	}

	q := archecs.NewQuery[Position](world)
	require.Len(t, q.Archetypes(), 2)
	visits := map[archecs.Entity]int{}
	for q.Next() {
		e := q.Entity()
		visits[e]++
		if !archecs.Contains[Velocity](world, e) {
			require.NoError(t, archecs.Add(world, e, Velocity{}))
		}
	}

	// a move into a matched archetype still ahead of the cursor is seen twice
	assert.Equal(t, 1, visits[settled])
	for _, e := range movers {
		assert.Equal(t, 2, visits[e], "%s", e)
	}
	requireParallel(t, world)
}

// go test -run ^TestQueryEntities$ . -count 1
func TestQueryEntities(t *testing.T) {
	world := setupWorld(t)
	var want []archecs.Entity
	for i := range 6 {
		e := world.CreateEntity()
		if i%2 == 0 {
			require.NoError(t, archecs.Add(world, e, Health{Current: i}))
		} else {
			require.NoError(t, archecs.Add2(world, e, Health{Current: i}, Tag{}))
		}
		want = append(want, e)
	}

	q := archecs.NewQuery[Health](world)
	assert.ElementsMatch(t, want, q.Entities())
	assert.Len(t, q.Archetypes(), 2)

	sum := 0
	q.Each(func(e archecs.Entity, h *Health) {
		assert.Equal(t, int(e.Index()), h.Current)
		sum += h.Current
	})
	assert.Equal(t, 15, sum)
}
