package brain

import (
	"container/heap"
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/domino14/crapette/board"
	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/move"
)

// frontier is a min-heap of nodes: lowest cost first, then best score,
// then first inserted. Superseded nodes stay in it, marked visited.
type frontier []*node

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if c := f[i].cost.Compare(f[j].cost); c != 0 {
		return c < 0
	}
	if c := f[i].score.Compare(f[j].score); c != 0 {
		return c > 0
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(*node)) }

func (f *frontier) Pop() any {
	old := *f
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*f = old[:len(old)-1]
	return n
}

// Dijkstra searches the positions one player can reach this turn. A
// Dijkstra value is good for one Search call.
type Dijkstra struct {
	cfg    Config
	player card.Player

	// known maps a HashBoard hash to the nodes with that hash; numKnown
	// counts them.
	known    map[uint64][]*node
	numKnown int
	frontier frontier
	seq      uint64

	// unvisited counts the frontier nodes not yet visited, per first move
	// of their path and in total.
	unvisited  int
	firstMoves map[move.Key]int

	nodes atomic.Uint64

	logStream      io.Writer
	progressStream io.Writer
}

func NewDijkstra(b *board.Board, player card.Player, cfg Config) *Dijkstra {
	d := &Dijkstra{
		cfg:        cfg,
		player:     player,
		known:      make(map[uint64][]*node),
		firstMoves: make(map[move.Key]int),
	}
	root := newNode(board.NewHashBoard(b), player)
	d.known[root.board.Hash()] = []*node{root}
	d.numKnown = 1
	d.add(root)
	return d
}

// SetLogStream receives a rendering of every visited position and the
// final path.
func (d *Dijkstra) SetLogStream(w io.Writer) {
	d.logStream = w
}

// SetProgressStream receives a progress line per visited position when
// the configuration asks for it.
func (d *Dijkstra) SetProgressStream(w io.Writer) {
	d.progressStream = w
}

// Nodes is the number of positions visited so far. It is safe to call
// while Search runs.
func (d *Dijkstra) Nodes() uint64 {
	return d.nodes.Load()
}

func (d *Dijkstra) lookup(hb *board.HashBoard) (*node, int) {
	for i, n := range d.known[hb.Hash()] {
		if n.board.Equal(hb) {
			return n, i
		}
	}
	return nil, -1
}

func (d *Dijkstra) add(n *node) {
	n.seq = d.seq
	d.seq++
	heap.Push(&d.frontier, n)
	d.unvisited++
	if len(n.moves) > 0 {
		d.firstMoves[n.moves[0].Key()]++
	}
}

func (d *Dijkstra) markVisited(n *node) {
	if n.visited {
		return
	}
	n.visited = true
	d.unvisited--
	if len(n.moves) > 0 {
		d.firstMoves[n.moves[0].Key()]--
	}
}

// register records the position reached from parent by m, unless it is
// known with a path at least as cheap.
func (d *Dijkstra) register(parent *node, m move.Move) {
	hb := parent.board.WithMove(m)
	cost := parent.cost.extend(m)

	old, i := d.lookup(hb)
	if old != nil {
		if old.visited || cost.Compare(old.cost) >= 0 {
			return
		}
		d.markVisited(old)
	}

	n := newNode(hb, d.player)
	n.cost = cost
	n.moves = make([]move.Move, len(parent.moves), len(parent.moves)+1)
	copy(n.moves, parent.moves)
	n.moves = append(n.moves, m)

	if old != nil {
		d.known[hb.Hash()][i] = n
	} else {
		d.known[hb.Hash()] = append(d.known[hb.Hash()], n)
		d.numKnown++
	}
	d.add(n)
}

func (d *Dijkstra) next() *node {
	for d.frontier.Len() > 0 {
		n := heap.Pop(&d.frontier).(*node)
		if !n.visited {
			return n
		}
	}
	return nil
}

// forced is true once every unvisited node starts with the same move as
// the best path.
func (d *Dijkstra) forced(best *node) bool {
	if len(best.moves) == 0 {
		return false
	}
	return d.firstMoves[best.moves[0].Key()] == d.unvisited
}

// Search runs to completion, or until the first move is forced when the
// shortcut is on. It returns the path to the best position visited and the
// number of positions visited.
func (d *Dijkstra) Search() ([]move.Move, uint64) {
	moves, nodes, _ := d.SearchContext(context.Background())
	return moves, nodes
}

// SearchContext is Search, giving up with ctx's error once ctx is done.
func (d *Dijkstra) SearchContext(ctx context.Context) ([]move.Move, uint64, error) {
	maxScore := WorstScore
	var best *node

	for n := d.next(); n != nil; n = d.next() {
		if err := ctx.Err(); err != nil {
			log.Debug().Uint64("nodes", d.nodes.Load()).Msg("search-cancelled")
			return nil, d.nodes.Load(), err
		}
		d.markVisited(n)
		count := d.nodes.Add(1)
		n.index = count
		n.neighbors(d.cfg, func(m move.Move) { d.register(n, m) })

		if n.score.Compare(maxScore) > 0 {
			maxScore = n.score
			best = n
		}
		d.trace(n, best)

		if d.cfg.Shortcut && d.forced(best) {
			log.Debug().Uint64("nodes", count).Int("unvisited", d.unvisited).Msg("search-shortcut")
			break
		}
	}

	moves := best.moves
	if d.unvisited > 0 {
		moves = d.commonPrefix(best)
		if d.logStream != nil {
			fmt.Fprintf(d.logStream, "shortcut: %d\n", len(moves))
		}
	}
	if d.logStream != nil {
		fmt.Fprintf(d.logStream, "\n%s\n", move.ListString(moves))
	}
	if d.progressStream != nil && d.cfg.PrintProgress {
		fmt.Fprintf(d.progressStream, "%80s\r", "")
	}
	return moves, d.nodes.Load(), nil
}

// commonPrefix trims the best path to the moves every unvisited node
// agrees on.
func (d *Dijkstra) commonPrefix(best *node) []move.Move {
	if len(best.moves) == 0 {
		return nil
	}
	var pending []*node
	for _, n := range d.frontier {
		if !n.visited {
			pending = append(pending, n)
		}
	}
	end := 1
	for ; end < len(best.moves); end++ {
		m := best.moves[end]
		agreed := true
		for _, n := range pending {
			if len(n.moves) <= end || !n.moves[end].Equal(m) {
				agreed = false
				break
			}
		}
		if !agreed {
			break
		}
	}
	return best.moves[:end]
}

func (d *Dijkstra) trace(n, best *node) {
	if d.logStream != nil {
		fmt.Fprintf(d.logStream, "%d\n%s\n%d known nodes\n%d unvisited\n\n***\n\n",
			n.index, n.board.ToDisplayText(false), d.numKnown, d.unvisited)
	}
	if d.progressStream != nil && d.cfg.PrintProgress {
		fmt.Fprintf(d.progressStream, "#%d: %d known nodes, %d unvisited, %d moves (best: #%d, %d moves)\r",
			n.index, d.numKnown, d.unvisited, len(n.moves), best.index, len(best.moves))
	}
}
