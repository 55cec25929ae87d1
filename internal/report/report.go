// Package report prints journey estimates for the console.
package report

import (
	"flight-carbon-service/internal/domain"
	"fmt"
	"io"
	"strings"
)

// Separator is printed between legs of a multi-leg journey.
var Separator = strings.Repeat("-", 40)

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

// Write prints j to w. Verbose output narrates every pipeline step per leg;
// otherwise one line per leg is printed. Both end with the journey total.
// Figures are rounded to whole units.
func Write(w io.Writer, j *domain.Journey, verbose bool) error {
	p := &printer{w: w}

	if verbose {
		writeVerbose(p, j)
	} else {
		for _, l := range j.Legs {
			p.printf("%s to %s: %.0f kg", l.From.Name, l.To.Name, l.CO2Kg)
		}
	}
	p.printf("Total Carbon cost of journey: %.0f kg", j.TotalCO2Kg)

	return p.err
}

func writeVerbose(p *printer, j *domain.Journey) {
	multi := len(j.Legs) > 1
	for _, l := range j.Legs {
		p.printf("%s (%s) to", l.From.Name, l.From.Country)
		p.printf("%s (%s)", l.To.Name, l.To.Country)
		p.printf("Distance of travel: %.0f km", l.DistanceKm)
		p.printf("Identified flight type: %s", l.Haul)
		p.printf("Aircraft: %s", l.Aircraft)
		p.printf("Fuel consumption of aircraft: %.0f tons", l.FuelTons)
		if multi {
			p.printf("Carbon cost of leg: %.0f kg", l.CO2Kg)
			p.printf("%s", Separator)
		}
	}
}
