package dependency

// Unit is a node in the dependency graph.
//
// ID must uniquely identify the unit within one graph. Provides and Requires
// are treated as sets; their order is only used to keep resolution
// deterministic. Units must not change once they are handed to a Graph.
type Unit interface {
	ID() string
	Provides() []string
	Requires() []string
}

// ResourceUnit is a Unit that knows which resource it was parsed from.
type ResourceUnit[R any] interface {
	Unit
	Resource() R
}

// Node is a plain Unit implementation for callers that do not carry their
// own resource type.
type Node struct {
	Name     string
	Provided []string
	Required []string
}

// NewNode returns a Node with the given provides and requires.
func NewNode(name string, provides, requires []string) *Node {
	return &Node{Name: name, Provided: provides, Required: requires}
}

// ID returns the node name.
func (n *Node) ID() string { return n.Name }

// Provides returns the provided namespaces.
func (n *Node) Provides() []string { return n.Provided }

// Requires returns the required namespaces.
func (n *Node) Requires() []string { return n.Required }

func (n *Node) String() string { return n.Name }

// unitIDs maps units to their IDs, keeping order.
func unitIDs[U Unit](units []U) []string {
	ids := make([]string, len(units))
	for i, u := range units {
		ids[i] = u.ID()
	}
	return ids
}
