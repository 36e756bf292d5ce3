// Package datagen produces randomised but bounded records for the
// Insurance schema. Values are plausible for the Australian PHI market;
// counts and mixes are controlled by the callers in the sim package.
package datagen

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/Mmodarre/AusHealthSim/internal/logging"
)

var log = logging.GetLogger()

// Generator produces synthetic records. It is not safe for concurrent use;
// the simulation is single-threaded by design.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator seeded from the clock.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed, used by tests.
func NewSeeded(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

// weighted selects an index according to the given weights.
func weighted(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return i
		}
	}
	return len(weights) - 1
}

// round2 rounds a monetary amount to cents.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// businessTime places a timestamp within business hours (08:00-17:59) of day.
func (g *Generator) businessTime(day time.Time) time.Time {
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		8+g.rng.Intn(10), g.rng.Intn(60), g.rng.Intn(60), 0, time.UTC,
	)
}

func (g *Generator) daysBefore(day time.Time, minDays, maxDays int) time.Time {
	return day.AddDate(0, 0, -(minDays + g.rng.Intn(maxDays-minDays+1)))
}

func (g *Generator) daysAfter(day time.Time, minDays, maxDays int) time.Time {
	return day.AddDate(0, 0, minDays+g.rng.Intn(maxDays-minDays+1))
}

func (g *Generator) digits(n int) string {
	s := make([]byte, n)
	for i := range s {
		s[i] = byte('0' + g.rng.Intn(10))
	}
	return string(s)
}

// ClaimNumber has the shape CL-YYYYMMDD-NNNNN.
func (g *Generator) ClaimNumber(day time.Time) string {
	return fmt.Sprintf("CL-%s-%s", day.Format("20060102"), g.digits(5))
}

// PaymentReference has the shape PMT-YYYYMMDD-NNNNN.
func (g *Generator) PaymentReference(day time.Time) string {
	return fmt.Sprintf("PMT-%s-%s", day.Format("20060102"), g.digits(5))
}

// PolicyNumber has the shape POL-<STATE>-NNNNNN.
func (g *Generator) PolicyNumber() string {
	return fmt.Sprintf("POL-%s-%s", pick(g.rng, states), g.digits(6))
}

// ProviderNumber is six digits and a check letter.
func (g *Generator) ProviderNumber() string {
	return g.digits(6) + string(rune('A'+g.rng.Intn(26)))
}

// MemberNumber has the shape MEM-NNNNNNNN.
func (g *Generator) MemberNumber() string {
	return "MEM-" + g.digits(8)
}

// MedicareNumber is ten digits in the 4-5-1 grouping.
func (g *Generator) MedicareNumber() string {
	return fmt.Sprintf("%d%s%d", 2000+g.rng.Intn(7000), g.digits(5), 1+g.rng.Intn(9))
}
