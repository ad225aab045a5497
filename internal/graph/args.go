package graph

import (
	"fmt"

	"artmarket-gateway/internal/pagination"

	"github.com/graphql-go/graphql"
)

func connectionArgs(p graphql.ResolveParams) (pagination.ConnectionArgs, error) {
	var a pagination.ConnectionArgs
	if v, ok := p.Args["first"].(int); ok {
		a.First = &v
	}
	if v, ok := p.Args["last"].(int); ok {
		a.Last = &v
	}
	if v, ok := p.Args["after"].(string); ok {
		a.After = &v
	}
	if v, ok := p.Args["before"].(string); ok {
		a.Before = &v
	}
	if v, ok := p.Args["page"].(int); ok {
		a.Page = &v
	}
	if v, ok := p.Args["size"].(int); ok {
		a.Size = &v
	}
	if v, ok := p.Args["sort"].(string); ok {
		a.Sort = v
	}

	for name, n := range map[string]*int{"first": a.First, "last": a.Last, "size": a.Size} {
		if n != nil && *n > maxPageSize {
			return a, fmt.Errorf("%w: %s=%d, max %d", ErrPageTooLarge, name, *n, maxPageSize)
		}
	}
	return a, nil
}
