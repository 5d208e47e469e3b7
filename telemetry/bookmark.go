package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSprint       BookmarkType = "sprint"
	BookmarkSpeedCap     BookmarkType = "speed_cap"
	BookmarkCameToRest   BookmarkType = "came_to_rest"
	BookmarkSteadyCruise BookmarkType = "steady_cruise"
)

// Thresholds for bookmark detection, in per-tick speed units.
const (
	sprintFactor       = 2.0  // peak speed over rolling mean speed
	sprintMinSpeed     = 1.0  // ignore sprints slower than this
	movingSpeed        = 0.5  // mean speed that counts as moving
	restSpeed          = 0.01 // median speed that counts as stopped
	cruiseMaxCV        = 0.02 // speed std/mean for a steady window
	cruiseWindowsToTag = 3    // consecutive steady windows before tagging
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType
	Tick        int
	Description string
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments in the player's motion.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	capped        bool // previous window touched the velocity ceiling
	moving        bool // mean speed exceeded movingSpeed since the last rest
	steadyWindows int  // consecutive windows with steady speed
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3 // minimum for sprint detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	for _, check := range []func(WindowStats) *Bookmark{
		bd.checkSprint,
		bd.checkSpeedCap,
		bd.checkCameToRest,
		bd.checkSteadyCruise,
	} {
		if b := check(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	bd.capped = stats.ClampedTicks > 0
	if stats.SpeedMean > movingSpeed {
		bd.moving = true
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkSprint fires when the window's peak speed is well above the rolling
// mean speed.
func (bd *BookmarkDetector) checkSprint(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	means := make([]float64, len(history))
	for i, h := range history {
		means[i] = h.SpeedMean
	}
	avg := stat.Mean(means, nil)
	if avg <= 0 || stats.SpeedMax < sprintMinSpeed {
		return nil
	}

	if stats.SpeedMax > avg*sprintFactor {
		return &Bookmark{
			Type:        BookmarkSprint,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Peak speed %.2f is %.1fx rolling mean (%.2f)", stats.SpeedMax, stats.SpeedMax/avg, avg),
		}
	}
	return nil
}

// checkSpeedCap fires on the first window that touches the velocity ceiling
// after one that did not.
func (bd *BookmarkDetector) checkSpeedCap(stats WindowStats) *Bookmark {
	if stats.ClampedTicks == 0 || bd.capped {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkSpeedCap,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Velocity clamped for %d of %d ticks", stats.ClampedTicks, stats.Ticks),
	}
}

// checkCameToRest fires when a moving player has stopped.
func (bd *BookmarkDetector) checkCameToRest(stats WindowStats) *Bookmark {
	if !bd.moving || stats.SpeedP50 >= restSpeed {
		return nil
	}
	bd.moving = false
	return &Bookmark{
		Type:        BookmarkCameToRest,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Came to rest at (%.1f, %.1f)", stats.PosX, stats.PosY),
	}
}

// checkSteadyCruise fires once per run of steady, moving windows.
func (bd *BookmarkDetector) checkSteadyCruise(stats WindowStats) *Bookmark {
	if stats.SpeedMean <= movingSpeed || stats.SpeedStd/stats.SpeedMean >= cruiseMaxCV {
		bd.steadyWindows = 0
		return nil
	}

	bd.steadyWindows++
	if bd.steadyWindows == cruiseWindowsToTag {
		return &Bookmark{
			Type:        BookmarkSteadyCruise,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Steady cruise at %.2f over %d windows", stats.SpeedMean, cruiseWindowsToTag),
		}
	}
	return nil
}
