package game

import "slices"

// Materials lists the asset keys a renderer needs to draw and play an
// entity. The keys are looked up in an asset table the renderer owns.
type Materials struct {
	Images []string
	Audios []string
	Fonts  []string
}

// Merge returns the union of m and o with duplicates removed.
func (m Materials) Merge(o Materials) Materials {
	return Materials{
		Images: union(m.Images, o.Images),
		Audios: union(m.Audios, o.Audios),
		Fonts:  union(m.Fonts, o.Fonts),
	}
}

func union(a, b []string) []string {
	out := slices.Concat(a, b)
	slices.Sort(out)
	return slices.Compact(out)
}

// RequiredMaterials is everything a full game can ask a renderer for.
func RequiredMaterials() Materials {
	m := Materials{
		Images: []string{"wall", "road", "mark", "fog"},
		Audios: []string{"footstep", "pick", "use", "victory"},
		Fonts:  []string{"default"},
	}
	m = m.Merge((&Explorer{}).Materials())
	for kind := range itemKindNames {
		m = m.Merge((&Item{Kind: kind}).Materials())
	}
	for kind := range effectTable {
		m = m.Merge(Materials{Images: []string{kind.String()}})
	}
	return m
}
