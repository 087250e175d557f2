package mapview

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"lunch-roulette/internal/geo"
	"lunch-roulette/internal/places"
	"lunch-roulette/internal/view"
)

// ConsoleNotifier prints notices to a writer
type ConsoleNotifier struct {
	out io.Writer
}

func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

func (n *ConsoleNotifier) Notify(notice view.Notice) {
	slog.Info("Notice shown", "kind", string(notice.Kind))
	fmt.Fprintf(n.out, "! %s\n", notice.Message)
}

// ConsoleWheel animates the roulette as a line of text that slows down and
// stops on the target
type ConsoleWheel struct {
	out       io.Writer
	laps      int
	baseDelay time.Duration
}

// NewConsoleWheel creates a wheel that runs the given number of full laps
// before settling. A zero delay draws every frame immediately.
func NewConsoleWheel(out io.Writer, laps int, baseDelay time.Duration) *ConsoleWheel {
	return &ConsoleWheel{out: out, laps: laps, baseDelay: baseDelay}
}

func (w *ConsoleWheel) Spin(ctx context.Context, labels []string, target int) error {
	if len(labels) == 0 {
		return fmt.Errorf("wheel has no labels")
	}
	if target < 0 || target >= len(labels) {
		return fmt.Errorf("target %d out of range", target)
	}

	steps := w.laps*len(labels) + target
	for i := 0; i <= steps; i++ {
		fmt.Fprintf(w.out, "\r> %-24s", labels[i%len(labels)])

		if w.baseDelay <= 0 || i == steps {
			continue
		}
		// ease out: each frame lingers a little longer than the last
		delay := w.baseDelay + w.baseDelay*time.Duration(i)/time.Duration(steps)*4
		select {
		case <-ctx.Done():
			fmt.Fprintln(w.out)
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	fmt.Fprintln(w.out)
	return nil
}

// WriteCard prints the recommendation card
func WriteCard(out io.Writer, place places.Place, from *geo.Coordinate) {
	fmt.Fprintf(out, "오늘의 추천: %s\n", place.Name)
	if place.Category != "" {
		fmt.Fprintf(out, "  분류: %s\n", place.Category)
	}
	if place.RoadAddress != "" {
		fmt.Fprintf(out, "  주소: %s\n", place.RoadAddress)
	}
	if from != nil {
		if position, err := place.Coordinate(); err == nil {
			fmt.Fprintf(out, "  거리: %.2f km\n", geo.DistanceKm(*from, position))
		}
	}
	if place.URL != "" {
		fmt.Fprintf(out, "  상세: %s\n", place.URL)
	}
}
