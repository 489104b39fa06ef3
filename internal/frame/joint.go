package frame

import (
	"github.com/martinmajer/mechanika/internal/geom"
)

// Joint is a location where beams meet or end
type Joint struct {
	Position  geom.Vec
	Beams     []*Beam
	Forces    []*Force
	Moments   []*Moment
	Supports  []*Support
	Reactions []Reaction // internal x, z and moment pairs, one entry per pair

	// Stiff joints transfer moment between their beams
	Stiff bool
	// AllRods is set when every beam at the joint was reduced to a rod
	AllRods bool
}

func (j *Joint) hasBeam(b *Beam) bool {
	for _, jb := range j.Beams {
		if jb == b {
			return true
		}
	}
	return false
}

func (j *Joint) String() string { return "Joint " + j.Position.String() }
