package fsa

import "github.com/prometheus/client_golang/prometheus"

// promCollector exports an Automaton's Metrics and BacktrackStats as
// prometheus.Collector, installed with WithPrometheus. It reads the live
// execution state at scrape time rather than snapshotting eagerly, since
// an Automaton is validated many times over its life and Reset clears
// per-run counters that CollectMetrics accumulates only within one run.
type promCollector struct {
	a      *Automaton
	prefix string

	transitionsTaken   *prometheus.Desc
	charactersHandled  *prometheus.Desc
	epsilonTransitions *prometheus.Desc
	choicePoints       *prometheus.Desc
	backtracks         *prometheus.Desc
	pathsExplored      *prometheus.Desc
	maxStackDepth      *prometheus.Desc
}

// WithPrometheus registers a collector exposing this automaton's
// counters under reg. Call after New; the collector reads whatever
// Metrics/BacktrackStats are current at each scrape.
func WithPrometheus(reg prometheus.Registerer) Option {
	return func(a *Automaton) {
		labels := []string{"automaton"}
		pc := &promCollector{
			a: a,
			transitionsTaken: prometheus.NewDesc(
				"fsa_transitions_taken_total", "Class-kind transitions committed since the last reset.", labels, nil),
			charactersHandled: prometheus.NewDesc(
				"fsa_characters_processed_total", "Bytes consumed since the last reset.", labels, nil),
			epsilonTransitions: prometheus.NewDesc(
				"fsa_epsilon_transitions_total", "Epsilon transitions followed since the last reset.", labels, nil),
			choicePoints: prometheus.NewDesc(
				"fsa_choice_points_created_total", "Backtracking choice points created since the last reset.", labels, nil),
			backtracks: prometheus.NewDesc(
				"fsa_backtracks_performed_total", "Backtracks performed since the last reset.", labels, nil),
			pathsExplored: prometheus.NewDesc(
				"fsa_paths_explored_total", "Committed transitions explored, including pre-choice-point ones.", labels, nil),
			maxStackDepth: prometheus.NewDesc(
				"fsa_backtrack_max_stack_depth", "Peak backtracking choice-point stack depth.", labels, nil),
		}
		a.prom = pc
		if reg != nil {
			reg.MustRegister(pc)
		}
	}
}

func (p *promCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- p.transitionsTaken
	ch <- p.charactersHandled
	ch <- p.epsilonTransitions
	ch <- p.choicePoints
	ch <- p.backtracks
	ch <- p.pathsExplored
	ch <- p.maxStackDepth
}

func (p *promCollector) Collect(ch chan<- prometheus.Metric) {
	name := p.a.name
	if name == "" {
		name = p.a.id
	}
	m := p.a.exec.metrics
	bt := p.a.exec.btStats
	ch <- prometheus.MustNewConstMetric(p.transitionsTaken, prometheus.CounterValue, float64(m.TransitionsTaken), name)
	ch <- prometheus.MustNewConstMetric(p.charactersHandled, prometheus.CounterValue, float64(m.CharactersProcessed), name)
	ch <- prometheus.MustNewConstMetric(p.epsilonTransitions, prometheus.CounterValue, float64(m.EpsilonTransitions), name)
	ch <- prometheus.MustNewConstMetric(p.choicePoints, prometheus.CounterValue, float64(bt.ChoicePointsCreated), name)
	ch <- prometheus.MustNewConstMetric(p.backtracks, prometheus.CounterValue, float64(bt.BacktracksPerformed), name)
	ch <- prometheus.MustNewConstMetric(p.pathsExplored, prometheus.CounterValue, float64(bt.PathsExplored), name)
	ch <- prometheus.MustNewConstMetric(p.maxStackDepth, prometheus.GaugeValue, float64(bt.MaxStackDepth), name)
}
