package brain

import (
	"bytes"
	"container/heap"
	"fmt"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/crapette/board"
	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/move"
	"github.com/domino14/crapette/pile"
	"github.com/domino14/crapette/testhelpers"
)

func unvisitedByFirstMove(d *Dijkstra) int {
	total := 0
	for _, n := range d.firstMoves {
		total += n
	}
	return total
}

func pendingNodes(d *Dijkstra) int {
	total := 0
	for _, n := range d.frontier {
		if !n.visited {
			total++
		}
	}
	return total
}

func TestCheaperPathReplacesKnownNode(t *testing.T) {
	is := is.New(t)
	b := testhelpers.Layout(t, `
		T0: 5d
		T1: 6c
	`)
	d := NewDijkstra(b, card.Player0, exhaustive())
	root := d.next()
	d.markVisited(root)
	is.Equal(d.unvisited, 0)

	// Two parents at the same position, one reached more cheaply.
	viaTableau := move.NewRelocate(card.MustFromString("9c"), pile.TableauID(5), pile.TableauID(6))
	viaFoundation := move.NewRelocate(card.MustFromString("Ah"), pile.TableauID(6), pile.FoundationID(1))
	expensive := &node{board: root.board, player: card.Player0,
		cost: Cost{}.extend(viaTableau), moves: []move.Move{viaTableau}}
	cheap := &node{board: root.board, player: card.Player0,
		cost: Cost{}.extend(viaFoundation), moves: []move.Move{viaFoundation}}
	is.True(cheap.cost.Compare(expensive.cost) < 0)

	m := move.NewRelocate(card.MustFromString("5d"), pile.TableauID(0), pile.TableauID(1))
	target := root.board.WithMove(m)

	d.register(expensive, m)
	first, _ := d.lookup(target)
	is.True(first != nil)
	is.Equal(d.numKnown, 2)
	is.Equal(d.unvisited, 1)
	is.Equal(d.firstMoves[viaTableau.Key()], 1)

	d.register(cheap, m)
	replaced, _ := d.lookup(target)
	is.True(replaced != first)
	is.True(first.visited)
	is.Equal(replaced.moves, []move.Move{viaFoundation, m})
	is.Equal(replaced.cost, cheap.cost.extend(m))
	is.Equal(len(d.known[target.Hash()]), 1)
	is.Equal(d.numKnown, 2)
	is.Equal(d.unvisited, 1)
	is.Equal(d.unvisited, pendingNodes(d))
	is.Equal(d.unvisited, unvisitedByFirstMove(d))
	is.Equal(d.firstMoves[viaTableau.Key()], 0)
	is.Equal(d.firstMoves[viaFoundation.Key()], 1)

	// The dearer path again changes nothing.
	d.register(expensive, m)
	again, _ := d.lookup(target)
	is.True(again == replaced)
	is.Equal(d.unvisited, 1)

	// The stale node is still in the heap but never comes out.
	is.True(d.next() == replaced)
	is.True(d.next() == nil)
}

func TestFrontierOrder(t *testing.T) {
	is := is.New(t)
	toTableau := move.NewRelocate(card.MustFromString("5d"), pile.TableauID(0), pile.TableauID(1))
	toFoundation := move.NewRelocate(card.MustFromString("5d"), pile.TableauID(0), pile.FoundationID(0))
	dear := Cost{}.extend(toTableau)
	cheap := Cost{}.extend(toFoundation)

	nodes := []*node{
		{cost: dear, score: Score{1}, seq: 0},
		{cost: dear, score: Score{2}, seq: 1},
		{cost: dear, score: Score{2}, seq: 2},
		{cost: cheap, score: Score{-5}, seq: 3},
	}
	f := &frontier{}
	for _, n := range nodes {
		heap.Push(f, n)
	}
	var order []uint64
	for f.Len() > 0 {
		order = append(order, heap.Pop(f).(*node).seq)
	}
	// Cost first, then the better score, then insertion order.
	is.Equal(order, []uint64{3, 1, 2, 0})
}

func TestKnownNodes(t *testing.T) {
	is := is.New(t)
	b := testhelpers.Sample(t, board.MassiveMoves)
	var trace bytes.Buffer
	d := NewDijkstra(b, card.Player0, exhaustive())
	d.SetLogStream(&trace)
	d.Search()

	total := 0
	for _, bucket := range d.known {
		total += len(bucket)
	}
	is.Equal(d.numKnown, total)
	is.True(uint64(d.numKnown) >= d.Nodes())

	// The last trace entry reports every position met, not hash buckets.
	entries := strings.Split(trace.String(), "***")
	last := entries[len(entries)-2]
	is.True(strings.Contains(last, fmt.Sprintf("\n%d known nodes\n", d.numKnown)))
}
