package graph

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// queryDepth returns the deepest field nesting of any operation in query.
// ok is false when the query does not parse; the executor reports the
// syntax error in that case.
func queryDepth(query string) (depth int, ok bool) {
	doc, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		return 0, false
	}

	for _, op := range doc.Operations {
		depth = max(depth, selectionDepth(doc, op.SelectionSet, map[string]bool{}))
	}
	return depth, true
}

func selectionDepth(doc *ast.QueryDocument, set ast.SelectionSet, visiting map[string]bool) int {
	deepest := 0
	for _, sel := range set {
		switch s := sel.(type) {
		case *ast.Field:
			deepest = max(deepest, 1+selectionDepth(doc, s.SelectionSet, visiting))
		case *ast.InlineFragment:
			deepest = max(deepest, selectionDepth(doc, s.SelectionSet, visiting))
		case *ast.FragmentSpread:
			if visiting[s.Name] {
				continue
			}
			frag := doc.Fragments.ForName(s.Name)
			if frag == nil {
				continue
			}
			visiting[s.Name] = true
			deepest = max(deepest, selectionDepth(doc, frag.SelectionSet, visiting))
			delete(visiting, s.Name)
		}
	}
	return deepest
}
