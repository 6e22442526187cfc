package uom

import (
	"fmt"
	"sort"

	"github.com/noah-isme/backend-pos/internal/catalog"
)

// maxTreeDepth bounds conversion traversal; edges form a forest by
// construction, the limit guards against malformed cyclic data.
const maxTreeDepth = 10

// TreeNode is one unit in a materialized conversion hierarchy. Factor is the
// number of parent units contained in one of this unit (zero on roots).
type TreeNode struct {
	UomID    int64       `json:"uomId"`
	Code     string      `json:"code"`
	Factor   float64     `json:"factor,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}

// BuildTree loads every conversion edge into an adjacency map and walks it
// iteratively, depth-bounded and cycle-guarded, returning one tree per root
// base unit. A root is a base unit that never appears as a purchase unit.
func BuildTree(edges []catalog.ConversionEdge) []*TreeNode {
	if len(edges) == 0 {
		return nil
	}

	children := make(map[int64][]catalog.ConversionEdge, len(edges))
	purchased := make(map[int64]bool, len(edges))
	baseCodes := make(map[int64]string, len(edges))
	for _, e := range edges {
		children[e.BaseUomID] = append(children[e.BaseUomID], e)
		purchased[e.PurchaseUomID] = true
		if e.BaseUomCode != "" {
			baseCodes[e.BaseUomID] = e.BaseUomCode
		}
	}

	var rootIDs []int64
	for id := range children {
		if !purchased[id] {
			rootIDs = append(rootIDs, id)
		}
	}
	sort.Slice(rootIDs, func(i, j int) bool { return rootIDs[i] < rootIDs[j] })

	var roots []*TreeNode
	for _, id := range rootIDs {
		root := &TreeNode{UomID: id, Code: labelOrDefault(baseCodes[id])}
		expand(root, children, map[int64]bool{id: true}, 1)
		roots = append(roots, root)
	}
	return roots
}

type frame struct {
	node  *TreeNode
	depth int
}

func expand(root *TreeNode, children map[int64][]catalog.ConversionEdge, visited map[int64]bool, depth int) {
	stack := []frame{{node: root, depth: depth}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.depth > maxTreeDepth {
			continue
		}
		for _, e := range children[top.node.UomID] {
			if visited[e.PurchaseUomID] {
				continue
			}
			visited[e.PurchaseUomID] = true
			child := &TreeNode{
				UomID:  e.PurchaseUomID,
				Code:   labelOrDefault(e.PurchaseUomCode),
				Factor: e.ConversionFactor,
			}
			top.node.Children = append(top.node.Children, child)
			stack = append(stack, frame{node: child, depth: top.depth + 1})
		}
	}
}

// Statements flattens a tree into "1 X = factor Y" lines, bottom-up from each
// purchase unit to its base unit.
func Statements(roots []*TreeNode) []string {
	var out []string
	for _, root := range roots {
		collectStatements(root, &out)
	}
	return out
}

func collectStatements(node *TreeNode, out *[]string) {
	for _, child := range node.Children {
		*out = append(*out, fmt.Sprintf("1 %s = %g %s", child.Code, child.Factor, node.Code))
		collectStatements(child, out)
	}
}

func labelOrDefault(code string) string {
	if code == "" {
		return DefaultUnitLabel
	}
	return code
}
