package logic

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// Stats summarizes a run for --stats.
type Stats struct {
	Scanned   int
	Excluded  int
	Processed int
	Errored   int
	TotalSize int64
	Duration  time.Duration

	start time.Time
}

// Print writes the stats block to w.
func (s Stats) Print(w io.Writer) {
	fmt.Fprintf(w, "\nStats\n")
	fmt.Fprintf(w, "  Scanned:   %d\n", s.Scanned)
	fmt.Fprintf(w, "  Excluded:  %d\n", s.Excluded)
	fmt.Fprintf(w, "  Processed: %d\n", s.Processed)
	fmt.Fprintf(w, "  Errors:    %d\n", s.Errored)
	//nolint:gosec // TotalSize is a sum of file sizes
	fmt.Fprintf(w, "  Size:      %s\n", humanize.IBytes(uint64(max(0, s.TotalSize))))
	fmt.Fprintf(w, "  Duration:  %s\n", s.Duration.Round(time.Millisecond))
}
