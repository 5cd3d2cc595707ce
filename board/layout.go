package board

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/pile"
)

var ErrBadLayout = errors.New("bad layout")

// LayoutName names one of the sample layouts below, used by tests and by
// the command line.
type LayoutName string

const (
	FoundationToFill   LayoutName = "foundation_to_fill"
	TrivialMove        LayoutName = "trivial_move"
	MultipleMoves      LayoutName = "multiple_moves"
	MassiveMoves       LayoutName = "massive_moves"
	EmptyStock         LayoutName = "empty_stock"
	EmptyStockAndWaste LayoutName = "empty_stock_and_waste"
	BrainCombination   LayoutName = "brain_combination"
)

// Layouts are written one pile per line, "<pile>: <cards>", where the pile
// is F0..F7, T0..T7, or S, X (waste) or C followed by the player. Cards are
// bottom first, as read by card.FromString.
var sampleLayouts = map[LayoutName]string{
	FoundationToFill: `
		F0: Ad 2d 3d 4d 5d 6d 7d 8d 9d 10d Jd Qd
		T0: Kd
	`,
	TrivialMove: `
		T0: 5d
		T1: 6c
	`,
	MultipleMoves: `
		T0: 5d
		T1: 6c
		T2: 5h
		T3: 6s
	`,
	MassiveMoves: `
		T0: Ks
		T1: Qh Js 0h 9s 8h 7s 6h 5s 4h 3s 2h As
		T2: 5c 4d 3c 2d
	`,
	EmptyStock: `
		X0: Ad 2d 3d 4d 5d 6d 7d 8d 9d 0d Jd Qd Kd
	`,
	EmptyStockAndWaste: `
		T0: 2d
		T1: 3d
		T2: 4d
		T3: 5d
		T4: 6d
		T5: 7d
		T6: 8d
		C0: 0d 9d
	`,
	BrainCombination: `
		T0: Kd Qc Jd 0c 9d 8c 7d 6c
		T1: Kc Qd Jc 0d 9c 8d 7c 6d
		C0: Adv
	`,
}

// SampleLayouts lists the names of the built-in layouts.
func SampleLayouts() []LayoutName {
	names := make([]LayoutName, 0, len(sampleLayouts))
	for n := range sampleLayouts {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// SetToLayout replaces the board content with a named sample layout.
func (b *Board) SetToLayout(name LayoutName) error {
	desc, ok := sampleLayouts[name]
	if !ok {
		return fmt.Errorf("%w: no layout named %q", ErrBadLayout, name)
	}
	return b.Quick(desc)
}

// Quick clears the board and fills the piles listed in desc.
func (b *Board) Quick(desc string) error {
	for _, p := range b.piles {
		p.Clear()
	}
	for lineno, line := range strings.Split(desc, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		code, cards, ok := strings.Cut(line, ":")
		if !ok {
			return fmt.Errorf("%w: line %d: want <pile>: <cards>", ErrBadLayout, lineno+1)
		}
		id, err := pile.ParseID(strings.TrimSpace(code))
		if err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrBadLayout, lineno+1, err)
		}
		for _, f := range strings.Fields(cards) {
			c, err := card.FromString(f)
			if err != nil {
				return fmt.Errorf("%w: line %d: %w", ErrBadLayout, lineno+1, err)
			}
			b.piles[id].Push(c)
		}
	}
	return nil
}

// FromLayout builds a board out of a layout description.
func FromLayout(desc string) (*Board, error) {
	b := New()
	if err := b.Quick(desc); err != nil {
		return nil, err
	}
	return b, nil
}

// MustFromLayout is FromLayout for tests and fixed layouts.
func MustFromLayout(desc string) *Board {
	b, err := FromLayout(desc)
	if err != nil {
		panic(err)
	}
	return b
}

// ToLayout writes the board in the form read by Quick. Empty piles are
// left out; face-down cards get a trailing "v".
func (b *Board) ToLayout() string {
	var sb strings.Builder
	for _, p := range b.piles {
		if p.IsEmpty() {
			continue
		}
		sb.WriteString(p.ID().Abbrev())
		sb.WriteByte(':')
		for _, c := range p.Cards() {
			sb.WriteByte(' ')
			sb.WriteString(c.Code())
			if !c.FaceUp() {
				sb.WriteByte('v')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// LayoutFile is the YAML form of a set of named layouts:
//
//	layouts:
//	  - name: my_test
//	    player: 0
//	    piles: |
//	      T0: 5d
//	      T1: 6c
type LayoutFile struct {
	Layouts []NamedLayout `yaml:"layouts"`
}

type NamedLayout struct {
	Name   string      `yaml:"name"`
	Player card.Player `yaml:"player"`
	Piles  string      `yaml:"piles"`
}

// Board builds the layout, checking the player too.
func (n NamedLayout) Board() (*Board, error) {
	if n.Player >= card.NumPlayers {
		return nil, fmt.Errorf("%w: %s: player %d", ErrBadLayout, n.Name, n.Player)
	}
	b, err := FromLayout(n.Piles)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", n.Name, err)
	}
	return b, nil
}

// ReadLayouts decodes a YAML layout file.
func ReadLayouts(r io.Reader) ([]NamedLayout, error) {
	var lf LayoutFile
	if err := yaml.NewDecoder(r).Decode(&lf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadLayout, err)
	}
	for _, l := range lf.Layouts {
		if _, err := l.Board(); err != nil {
			return nil, err
		}
	}
	return lf.Layouts, nil
}

func LoadLayouts(path string) ([]NamedLayout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLayouts(f)
}
