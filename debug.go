package willowxr

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and query metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	updateTime time.Duration
	queries    int
	strikes    int
	mode       Mode
	target     *Node
}

// debugLog prints the frame's stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	target := "-"
	if stats.target != nil {
		target = stats.target.Name
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[willowxr] frame %d | mode: %s | target: %s | queries: %d | strikes: %d | update: %v\n",
		s.frame, stats.mode, target, stats.queries, stats.strikes, stats.updateTime)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode; release builds skip it.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("willowxr debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[willowxr] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[willowxr] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}

// logf writes an unconditional diagnostic line to stderr.
func logf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[willowxr] "+format+"\n", args...)
}
