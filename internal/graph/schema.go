package graph

import (
	"github.com/graphql-go/graphql"
)

var sortDirectionEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "SortDirection",
	Values: graphql.EnumValueConfigMap{
		"ASC":  &graphql.EnumValueConfig{Value: "ASC"},
		"DESC": &graphql.EnumValueConfig{Value: "DESC"},
	},
})

var pageInfoType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PageInfo",
	Fields: graphql.Fields{
		"startCursor":     &graphql.Field{Type: graphql.String},
		"endCursor":       &graphql.Field{Type: graphql.String},
		"hasPreviousPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"hasNextPage":     &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

var pageCursorType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PageCursor",
	Fields: graphql.Fields{
		"cursor":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"page":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"isCurrent": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

var pageCursorsType = graphql.NewObject(graphql.ObjectConfig{
	Name:        "PageCursors",
	Description: "Page-number navigation for offset paginated connections.",
	Fields: graphql.Fields{
		"first":    &graphql.Field{Type: pageCursorType},
		"last":     &graphql.Field{Type: pageCursorType},
		"around":   &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(pageCursorType)))},
		"previous": &graphql.Field{Type: pageCursorType},
	},
})

func forwardArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"first": &graphql.ArgumentConfig{Type: graphql.Int},
		"after": &graphql.ArgumentConfig{Type: graphql.String},
		"sort":  &graphql.ArgumentConfig{Type: sortDirectionEnum, DefaultValue: "DESC"},
	}
}

func pagedArgs() graphql.FieldConfigArgument {
	args := forwardArgs()
	args["last"] = &graphql.ArgumentConfig{Type: graphql.Int}
	args["before"] = &graphql.ArgumentConfig{Type: graphql.String}
	args["page"] = &graphql.ArgumentConfig{Type: graphql.Int}
	args["size"] = &graphql.ArgumentConfig{Type: graphql.Int}
	return args
}

func connectionType(name string, node graphql.Output, withPageCursors bool) *graphql.Object {
	edge := graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Edge",
		Fields: graphql.Fields{
			"cursor": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"node":   &graphql.Field{Type: node},
		},
	})

	fields := graphql.Fields{
		"totalCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"edges":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(edge)))},
		"pageInfo":   &graphql.Field{Type: graphql.NewNonNull(pageInfoType)},
	}
	if withPageCursors {
		fields["pageCursors"] = &graphql.Field{Type: pageCursorsType}
	}
	return graphql.NewObject(graphql.ObjectConfig{Name: name + "Connection", Fields: fields})
}

// NewSchema builds the executable schema around r.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	var artistType *graphql.Object

	artworkType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Artwork",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
				"slug":         &graphql.Field{Type: graphql.String},
				"title":        &graphql.Field{Type: graphql.String},
				"date":         &graphql.Field{Type: graphql.String},
				"medium":       &graphql.Field{Type: graphql.String},
				"createdAt":    &graphql.Field{Type: graphql.DateTime},
				"lastViewedAt": &graphql.Field{Type: graphql.DateTime},
				"viewCount": &graphql.Field{
					Type:    graphql.NewNonNull(graphql.Int),
					Resolve: r.resolve(r.artworkViewCount),
				},
				"artist": &graphql.Field{
					Type:    artistType,
					Resolve: r.resolve(r.artworkArtist),
				},
			}
		}),
	})

	articleType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Article",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"slug":        &graphql.Field{Type: graphql.String},
			"title":       &graphql.Field{Type: graphql.String},
			"author":      &graphql.Field{Type: graphql.String},
			"lead":        &graphql.Field{Type: graphql.String},
			"publishedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	showType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Show",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.String},
			"partnerName": &graphql.Field{Type: graphql.String},
			"status":      &graphql.Field{Type: graphql.String},
			"startAt":     &graphql.Field{Type: graphql.DateTime},
			"endAt":       &graphql.Field{Type: graphql.DateTime},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"code":         &graphql.Field{Type: graphql.String},
			"state":        &graphql.Field{Type: graphql.String},
			"artworkID":    &graphql.Field{Type: graphql.ID},
			"totalCents":   &graphql.Field{Type: graphql.Int},
			"currencyCode": &graphql.Field{Type: graphql.String},
			"createdAt":    &graphql.Field{Type: graphql.DateTime},
		},
	})

	inquiryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Inquiry",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"artworkID": &graphql.Field{Type: graphql.ID},
			"message":   &graphql.Field{Type: graphql.String},
			"status":    &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	relatedContentType := graphql.NewUnion(graphql.UnionConfig{
		Name:  "RelatedContent",
		Types: []*graphql.Object{articleType, showType},
		ResolveType: func(p graphql.ResolveTypeParams) *graphql.Object {
			switch p.Value.(type) {
			case *Article:
				return articleType
			case *Show:
				return showType
			}
			return nil
		},
	})

	activityType := graphql.NewUnion(graphql.UnionConfig{
		Name:  "CollectorActivity",
		Types: []*graphql.Object{orderType, inquiryType},
		ResolveType: func(p graphql.ResolveTypeParams) *graphql.Object {
			switch p.Value.(type) {
			case *Order:
				return orderType
			case *Inquiry:
				return inquiryType
			}
			return nil
		},
	})

	artworkConnection := connectionType("Artwork", artworkType, true)

	artistType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Artist",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"slug":        &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"nationality": &graphql.Field{Type: graphql.String},
			"birthday":    &graphql.Field{Type: graphql.String},
			"blurb":       &graphql.Field{Type: graphql.String},
			"artworksConnection": &graphql.Field{
				Type:    artworkConnection,
				Args:    pagedArgs(),
				Resolve: r.resolve(r.artistArtworks),
			},
			"relatedContentConnection": &graphql.Field{
				Type:    connectionType("RelatedContent", relatedContentType, false),
				Args:    forwardArgs(),
				Resolve: r.resolve(r.artistRelatedContent),
			},
		},
	})

	meType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Me",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"activityConnection": &graphql.Field{
				Type:    connectionType("CollectorActivity", activityType, false),
				Args:    forwardArgs(),
				Resolve: r.resolve(r.meActivity),
			},
			"recentlyViewedArtworksConnection": &graphql.Field{
				Type:    connectionType("RecentlyViewedArtwork", artworkType, true),
				Args:    pagedArgs(),
				Resolve: r.resolve(r.meRecentlyViewed),
			},
		},
	})

	recordedViewType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RecordedView",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"artworkID": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"viewedAt":  &graphql.Field{Type: graphql.DateTime},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"artist": &graphql.Field{
				Type: artistType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolve(r.queryArtist),
			},
			"artwork": &graphql.Field{
				Type: artworkType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolve(r.queryArtwork),
			},
			"me": &graphql.Field{
				Type:    meType,
				Resolve: r.resolve(r.queryMe),
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"recordArtworkView": &graphql.Field{
				Type: recordedViewType,
				Args: graphql.FieldConfigArgument{
					"artworkID": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolve(r.recordArtworkView),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

// resolve converts resolver errors into coded GraphQL errors.
func (r *Resolver) resolve(fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		v, err := fn(p)
		if err != nil {
			return nil, toGraphQLError(p.Context, err)
		}
		return v, nil
	}
}
