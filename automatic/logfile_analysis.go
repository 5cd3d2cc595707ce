package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// Stat summarises one quantity over the games.
type Stat struct {
	Mean  float64 `yaml:"mean"`
	Stdev float64 `yaml:"stdev"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
}

func newStat(x []float64) Stat {
	if len(x) == 0 {
		return Stat{}
	}
	mean, std := stat.MeanStdDev(x, nil)
	return Stat{Mean: mean, Stdev: std, Min: floats.Min(x), Max: floats.Max(x)}
}

// Summary is the YAML report of a self-play run.
type Summary struct {
	Games           int                `yaml:"games"`
	Abandoned       int                `yaml:"abandoned"`
	Player0Wins     int                `yaml:"player0_wins"`
	Player1Wins     int                `yaml:"player1_wins"`
	FirstPlayerWins int                `yaml:"first_player_wins"`
	Turns           Stat               `yaml:"turns"`
	Steps           Stat               `yaml:"steps"`
	Nodes           Stat               `yaml:"nodes"`
	Seconds         Stat               `yaml:"seconds"`
	Metrics         map[string]float64 `yaml:"metrics,omitempty"`

	nodes []float64
}

// Summarize computes the statistics of results.
func Summarize(results []GameResult) *Summary {
	s := &Summary{Games: len(results)}
	var turns, steps, seconds []float64
	for _, r := range results {
		switch r.Winner {
		case NoWinner:
			s.Abandoned++
		case 0:
			s.Player0Wins++
		case 1:
			s.Player1Wins++
		}
		if r.Winner == r.First {
			s.FirstPlayerWins++
		}
		turns = append(turns, float64(r.Turns))
		steps = append(steps, float64(r.Steps))
		s.nodes = append(s.nodes, float64(r.Nodes))
		seconds = append(seconds, r.Duration.Seconds())
	}
	s.Turns = newStat(turns)
	s.Steps = newStat(steps)
	s.Nodes = newStat(s.nodes)
	s.Seconds = newStat(seconds)
	return s
}

// AddMetrics copies the crapette counters and histogram sums from g into
// the summary.
func (s *Summary) AddMetrics(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	s.Metrics = map[string]float64{}
	for _, f := range families {
		if !strings.HasPrefix(f.GetName(), "crapette_") {
			continue
		}
		for _, m := range f.GetMetric() {
			name := f.GetName()
			for _, l := range m.GetLabel() {
				name += "_" + l.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				s.Metrics[name] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				s.Metrics[name] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				s.Metrics[name+"_count"] = float64(m.GetHistogram().GetSampleCount())
				s.Metrics[name+"_sum"] = m.GetHistogram().GetSampleSum()
			}
		}
	}
	return nil
}

// WriteYAML writes the summary as YAML.
func (s *Summary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// Report is a human-readable summary with a histogram of the positions
// searched per game.
func (s *Summary) Report(w io.Writer) error {
	p := message.NewPrinter(language.English)
	pct := func(n int) float64 {
		if s.Games == 0 {
			return 0
		}
		return 100 * float64(n) / float64(s.Games)
	}
	p.Fprintf(w, "Games played: %d\n", s.Games)
	p.Fprintf(w, "Player 0 wins: %d (%.3f%%)\n", s.Player0Wins, pct(s.Player0Wins))
	p.Fprintf(w, "Player 1 wins: %d (%.3f%%)\n", s.Player1Wins, pct(s.Player1Wins))
	p.Fprintf(w, "Player who went first wins: %d (%.3f%%)\n", s.FirstPlayerWins, pct(s.FirstPlayerWins))
	p.Fprintf(w, "Abandoned: %d\n", s.Abandoned)
	p.Fprintf(w, "Turns: mean %.2f  stdev %.2f\n", s.Turns.Mean, s.Turns.Stdev)
	p.Fprintf(w, "Positions searched: mean %.0f  stdev %.0f  max %.0f\n", s.Nodes.Mean, s.Nodes.Stdev, s.Nodes.Max)
	if len(s.nodes) < 2 || s.Nodes.Min == s.Nodes.Max {
		return nil
	}
	fmt.Fprintln(w, "\nPositions searched per game:")
	return histogram.Fprint(w, histogram.Hist(10, s.nodes), histogram.Linear(40))
}

// AnalyzeLogFile reads the CSV written by StartCompVCompGames back into
// a summary.
func AnalyzeLogFile(filepath string) (*Summary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	r := csv.NewReader(file)

	var results []GameResult
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == "gameID" {
			continue
		}
		res, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", len(results)+2, err)
		}
		results = append(results, res)
	}
	return Summarize(results), nil
}

func parseRecord(record []string) (GameResult, error) {
	if len(record) != 8 {
		return GameResult{}, fmt.Errorf("expected 8 fields, got %d", len(record))
	}
	var ints [4]int
	for i := range ints {
		n, err := strconv.Atoi(record[2+i])
		if err != nil {
			return GameResult{}, err
		}
		ints[i] = n
	}
	nodes, err := strconv.ParseUint(record[6], 10, 64)
	if err != nil {
		return GameResult{}, err
	}
	seconds, err := strconv.ParseFloat(record[7], 64)
	if err != nil {
		return GameResult{}, err
	}
	return GameResult{
		UID:      record[0],
		Seed:     record[1],
		First:    ints[0],
		Winner:   ints[1],
		Turns:    ints[2],
		Steps:    ints[3],
		Nodes:    nodes,
		Duration: time.Duration(seconds * float64(time.Second)),
	}, nil
}
