package frame

import (
	"sort"
	"strconv"
	"strings"
)

// splitName separates a trailing decimal run from its prefix: "R12" -> ("R", "12")
func splitName(s string) (prefix, digits string) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return s[:i], s[i:]
}

// natLess orders names by prefix, then by the numeric value of their
// trailing digits, so that R9 sorts before R10.
func natLess(a, b string) bool {
	pa, da := splitName(a)
	pb, db := splitName(b)
	if pa != pb {
		return pa < pb
	}
	da = strings.TrimLeft(da, "0")
	db = strings.TrimLeft(db, "0")
	if len(da) != len(db) {
		return len(da) < len(db)
	}
	if da != db {
		return da < db
	}
	return a < b
}

// SortNames sorts names in natural order
func SortNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool { return natLess(names[i], names[j]) })
}

func sortBeams(beams []*Beam) {
	sort.SliceStable(beams, func(i, j int) bool { return natLess(beams[i].Name, beams[j].Name) })
}

// namer hands out reaction names R1, R2, ... skipping names already taken
type namer struct {
	next  int
	taken map[string]bool
}

func newNamer() *namer {
	return &namer{taken: map[string]bool{}}
}

// claim returns attempt when it is free, otherwise the next sequential name
func (n *namer) claim(attempt string) string {
	if attempt != "" && !n.taken[attempt] {
		n.taken[attempt] = true
		return attempt
	}
	return n.fresh()
}

func (n *namer) fresh() string {
	for {
		n.next++
		name := "R" + strconv.Itoa(n.next)
		if !n.taken[name] {
			n.taken[name] = true
			return name
		}
	}
}
