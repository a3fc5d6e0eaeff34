package archecs

import "github.com/rs/zerolog"

// ArchetypeStats describes one archetype.
type ArchetypeStats struct {
	Components []string `json:"components"`
	ID         int      `json:"id"`
	Entities   int      `json:"entities"`
	Edges      int      `json:"edges"`
}

// Stats is a snapshot of a World's size.
type Stats struct {
	PerArchetype []ArchetypeStats `json:"per_archetype"`
	Entities     int              `json:"entities"`
	FreeSlots    int              `json:"free_slots"`
	Components   int              `json:"components"`
	Archetypes   int              `json:"archetypes"`
	Edges        int              `json:"edges"`
}

// Stats walks the archetype arena and reports its shape.
func (w *World) Stats() Stats {
	s := Stats{
		Entities:     w.entities.alive,
		FreeSlots:    w.entities.free(),
		Components:   w.registry.Len(),
		Archetypes:   len(w.archetypes),
		PerArchetype: make([]ArchetypeStats, 0, len(w.archetypes)),
	}
	for _, a := range w.archetypes {
		s.Edges += a.edges()
		s.PerArchetype = append(s.PerArchetype, ArchetypeStats{
			ID:         int(a.id),
			Components: w.registry.names(a.signature),
			Entities:   len(a.entities),
			Edges:      a.edges(),
		})
	}
	return s
}

// LogStats writes Stats as one event at level.
func (w *World) LogStats(level zerolog.Level) {
	s := w.Stats()
	arr := zerolog.Arr()
	for _, a := range s.PerArchetype {
		names := zerolog.Arr()
		for _, n := range a.Components {
			names = names.Str(n)
		}
		arr = arr.Dict(zerolog.Dict().
			Int("archetype_id", a.ID).
			Int("entities", a.Entities).
			Array("components", names))
	}
	w.logger.WithLevel(level).
		Int("entities", s.Entities).
		Int("free_slots", s.FreeSlots).
		Int("total_components", s.Components).
		Int("total_archetypes", s.Archetypes).
		Int("edges", s.Edges).
		Array("archetypes", arr).
		Msg("world stats")
}
