package graph

// Severity classifies how serious a circular dependency is.
type Severity string

const (
	// SeverityWarning marks short cycles that are usually easy to break.
	SeverityWarning Severity = "warning"
	// SeverityError marks long cycles spanning many modules.
	SeverityError Severity = "error"
)

// longCycleThreshold is the member count above which a cycle is reported
// as an error rather than a warning.
const longCycleThreshold = 5

// CircularDependency is one cycle in the dependency graph: a closed walk
// of module paths. A direct self-import is reported as a cycle of
// length 1.
type CircularDependency struct {
	Cycle    []string `json:"cycle"`
	Severity Severity `json:"severity"`
}

// FindCircularDependencies returns every cycle in the graph, one per
// strongly connected component of size >= 2, plus one per direct
// self-loop. The whole graph is processed in a single O(V+E) pass.
//
// Cycle members appear in the component's stack-unwind order, reversed,
// which approximates a natural traversal of the cycle.
func (g *Graph) FindCircularDependencies() []CircularDependency {
	cycles := []CircularDependency{}
	for _, component := range g.stronglyConnectedComponents() {
		if len(component) == 1 {
			node := component[0]
			if !g.HasEdge(node, node) {
				continue
			}
			cycles = append(cycles, CircularDependency{
				Cycle:    []string{node},
				Severity: SeverityWarning,
			})
			continue
		}

		cycle := make([]string, len(component))
		for i, node := range component {
			cycle[len(component)-1-i] = node
		}

		severity := SeverityWarning
		if len(cycle) > longCycleThreshold {
			severity = SeverityError
		}
		cycles = append(cycles, CircularDependency{Cycle: cycle, Severity: severity})
	}
	return cycles
}

// tarjanFrame is one simulated call frame: a node plus the index of its
// next unexamined successor.
type tarjanFrame struct {
	node string
	next int
}

// stronglyConnectedComponents implements Tarjan's algorithm with an
// explicit work stack instead of native recursion, so a pathologically
// deep dependency chain cannot exhaust the goroutine stack. Each
// component is returned in pop (unwind) order.
func (g *Graph) stronglyConnectedComponents() [][]string {
	var (
		counter    int
		index      = make(map[string]int, len(g.Edges))
		lowlink    = make(map[string]int, len(g.Edges))
		onStack    = make(map[string]bool, len(g.Edges))
		stack      []string
		components [][]string
	)

	for _, start := range g.Nodes() {
		if _, visited := index[start]; visited {
			continue
		}

		frames := []tarjanFrame{{node: start}}
		for len(frames) > 0 {
			frame := &frames[len(frames)-1]
			v := frame.node

			if frame.next == 0 {
				index[v] = counter
				lowlink[v] = counter
				counter++
				stack = append(stack, v)
				onStack[v] = true
			}

			// Resume successor examination where this frame left off.
			descended := false
			successors := g.Edges[v]
			for frame.next < len(successors) {
				w := successors[frame.next]
				frame.next++
				if _, visited := index[w]; !visited {
					frames = append(frames, tarjanFrame{node: w})
					descended = true
					break
				}
				if onStack[w] && index[w] < lowlink[v] {
					lowlink[v] = index[w]
				}
			}
			if descended {
				continue
			}

			// All successors examined: v's component root status is known.
			if lowlink[v] == index[v] {
				var component []string
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					component = append(component, w)
					if w == v {
						break
					}
				}
				components = append(components, component)
			}

			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := frames[len(frames)-1].node
				if lowlink[v] < lowlink[parent] {
					lowlink[parent] = lowlink[v]
				}
			}
		}
	}

	return components
}
