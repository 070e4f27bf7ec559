package game

// EffectKind names a timed modifier on an explorer.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectFrozen
	EffectPoisoned
	EffectFaster
	EffectBlinded
	EffectSmaller
)

func (k EffectKind) String() string {
	if spec, ok := effectTable[k]; ok {
		return spec.name
	}
	return "none"
}

// effectSpec describes what an effect does while active. A zero multiplier
// leaves that attribute alone.
type effectSpec struct {
	name     string
	duration float64
	speed    float64
	size     float64
	fov      float64
}

var effectTable = map[EffectKind]effectSpec{
	EffectFrozen:   {name: "effectFrozen", duration: 4.5, speed: 0.2},
	EffectPoisoned: {name: "effectPoisoned", duration: 6, speed: 0.3, size: 1.5},
	EffectFaster:   {name: "effectFaster", duration: 6, speed: 1.45},
	EffectBlinded:  {name: "effectBlinded", duration: 6, fov: 0.25},
	EffectSmaller:  {name: "effectSmaller", duration: 6, size: 0.5},
}

// Duration is how long one application of k lasts, in seconds.
func (k EffectKind) Duration() float64 {
	return effectTable[k].duration
}

// Effect is an active timed modifier.
type Effect struct {
	Kind      EffectKind `msgpack:"kind"`
	Remaining float64    `msgpack:"remaining"`
}
