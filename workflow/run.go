package workflow

import (
	"context"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"
)

// Node names used by the standard submission pipeline.
const (
	NodeGenerate    = "generate"
	NodeMaterialize = "materialize"
	NodeNotify      = "notify"
)

// Run executes the standard submission pipeline over the given state:
// generate -> materialize -> notify. Services are taken from ctx; on
// success the returned state carries the artifact metadata.
func Run(ctx context.Context, state State) (State, error) {
	graph := flowgraph.NewGraph[State]().
		AddNode(NodeGenerate, GenerateNode).
		AddNode(NodeMaterialize, MaterializeNode).
		AddNode(NodeNotify, NotifyNode).
		AddEdge(NodeGenerate, NodeMaterialize).
		AddEdge(NodeMaterialize, NodeNotify).
		AddEdge(NodeNotify, flowgraph.END).
		SetEntry(NodeGenerate)

	compiled, err := graph.Compile()
	if err != nil {
		return state, err
	}

	return compiled.Run(flowgraph.NewContext(ctx), state)
}
