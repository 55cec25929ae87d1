package domain

import "fmt"

// Distance band of a flight leg. It selects the aircraft archetype used for fuel burn.
type HaulCategory int

const (
	ShortHaul HaulCategory = iota + 1
	MediumHaul
	LongHaul
)

func (h HaulCategory) String() string {
	switch h {
	case ShortHaul:
		return "Short Haul"
	case MediumHaul:
		return "Medium Haul"
	case LongHaul:
		return "Long Haul"
	default:
		return fmt.Sprintf("HaulCategory(%d)", int(h))
	}
}
