package game

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FrameSection is a timed part of a host frame.
type FrameSection uint8

const (
	SectionUpdate FrameSection = iota
	SectionDraw
	numSections
)

func (s FrameSection) String() string {
	switch s {
	case SectionUpdate:
		return "update"
	case SectionDraw:
		return "draw"
	}
	return "?"
}

// frameRing is a fixed ring of the latest timings of one section.
type frameRing struct {
	buf  []time.Duration
	next int
	n    int
	sum  time.Duration
}

func (r *frameRing) add(d time.Duration) {
	if r.n == len(r.buf) {
		r.sum -= r.buf[r.next]
	} else {
		r.n++
	}
	r.buf[r.next] = d
	r.sum += d
	r.next = (r.next + 1) % len(r.buf)
}

func (r *frameRing) avg() time.Duration {
	if r.n == 0 {
		return 0
	}
	return r.sum / time.Duration(r.n)
}

// FrameStats keeps the host frame timings of the last few frames.
type FrameStats struct {
	rings [numSections]frameRing
}

// NewFrameStats creates a tracker averaging over the last window frames.
func NewFrameStats(window int) *FrameStats {
	if window <= 0 {
		window = 120
	}
	fs := &FrameStats{}
	for i := range fs.rings {
		fs.rings[i].buf = make([]time.Duration, window)
	}
	return fs
}

// Record adds a timing for sec.
func (fs *FrameStats) Record(sec FrameSection, d time.Duration) {
	if sec < numSections {
		fs.rings[sec].add(d)
	}
}

// Avg is the average timing of sec over the window.
func (fs *FrameStats) Avg(sec FrameSection) time.Duration {
	if sec >= numSections {
		return 0
	}
	return fs.rings[sec].avg()
}

// Total sums the section averages.
func (fs *FrameStats) Total() time.Duration {
	var total time.Duration
	for i := range fs.rings {
		total += fs.rings[i].avg()
	}
	return total
}

// Sections lists the sections with samples, slowest first.
func (fs *FrameStats) Sections() []FrameSection {
	var out []FrameSection
	for sec := FrameSection(0); sec < numSections; sec++ {
		if fs.rings[sec].n > 0 {
			out = append(out, sec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return fs.Avg(out[i]) > fs.Avg(out[j])
	})
	return out
}

func (fs *FrameStats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "frame %s", fs.Total().Round(time.Microsecond))
	for _, sec := range fs.Sections() {
		fmt.Fprintf(&sb, "\n  %-7s %s", sec, fs.Avg(sec).Round(time.Microsecond))
	}
	return sb.String()
}
