package graphql

import (
	"fmt"

	"github.com/dd0wney/realm-atlas/pkg/algorithms"
	"github.com/dd0wney/realm-atlas/pkg/analysis"
	"github.com/dd0wney/realm-atlas/pkg/storage"
	"github.com/graphql-go/graphql"
)

// Argument defaults
const (
	DefaultTop        = 5
	DefaultResolution = algorithms.DefaultResolution
	DefaultHops       = algorithms.DefaultHops
)

// field resolves a value of type T from the parent object
func field[T any](typ graphql.Output, get func(T) any) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			if v, ok := p.Source.(T); ok {
				return get(v), nil
			}
			return nil, nil
		},
	}
}

var positionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Position",
	Fields: graphql.Fields{
		"x": field(graphql.Float, func(p storage.Position) any { return p.X }),
		"y": field(graphql.Float, func(p storage.Position) any { return p.Y }),
	},
})

var routeType = graphql.NewObject(graphql.ObjectConfig{
	Name:        "Route",
	Description: "One direction of a route between two locations",
	Fields: graphql.Fields{
		"from":      field(graphql.NewNonNull(graphql.String), func(e storage.Edge) any { return e.From }),
		"to":        field(graphql.NewNonNull(graphql.String), func(e storage.Edge) any { return e.To }),
		"danger":    field(graphql.NewNonNull(graphql.Int), func(e storage.Edge) any { return e.Danger }),
		"type":      field(graphql.NewNonNull(graphql.String), func(e storage.Edge) any { return string(e.Type) }),
		"dangerous": field(graphql.NewNonNull(graphql.Boolean), func(e storage.Edge) any { return e.Type.IsDangerous() }),
	},
})

var pathStepType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PathStep",
	Fields: graphql.Fields{
		"from":      field(graphql.NewNonNull(graphql.String), func(s analysis.PathStep) any { return s.From }),
		"to":        field(graphql.NewNonNull(graphql.String), func(s analysis.PathStep) any { return s.To }),
		"danger":    field(graphql.NewNonNull(graphql.Int), func(s analysis.PathStep) any { return s.Danger }),
		"routeType": field(graphql.NewNonNull(graphql.String), func(s analysis.PathStep) any { return string(s.RouteType) }),
	},
})

var pathType = graphql.NewObject(graphql.ObjectConfig{
	Name:        "Path",
	Description: "The safest route between two locations",
	Fields: graphql.Fields{
		"path":        field(graphql.NewList(graphql.String), func(r *analysis.PathResult) any { return r.Path }),
		"totalDanger": field(graphql.NewNonNull(graphql.Int), func(r *analysis.PathResult) any { return r.TotalDanger }),
		"steps":       field(graphql.NewList(pathStepType), func(r *analysis.PathResult) any { return r.Steps }),
	},
})

var strategicLocationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "StrategicLocation",
	Fields: graphql.Fields{
		"name":          field(graphql.NewNonNull(graphql.String), func(s analysis.LocationStat) any { return s.Name }),
		"score":         field(graphql.NewNonNull(graphql.Float), func(s analysis.LocationStat) any { return s.Score }),
		"connections":   field(graphql.NewNonNull(graphql.Int), func(s analysis.LocationStat) any { return s.Connections }),
		"averageDanger": field(graphql.NewNonNull(graphql.Float), func(s analysis.LocationStat) any { return s.AverageDanger }),
	},
})

var regionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Region",
	Fields: graphql.Fields{
		"id":            field(graphql.NewNonNull(graphql.Int), func(c analysis.CommunityStat) any { return c.ID }),
		"capital":       field(graphql.NewNonNull(graphql.String), func(c analysis.CommunityStat) any { return c.Capital }),
		"members":       field(graphql.NewList(graphql.String), func(c analysis.CommunityStat) any { return c.Members }),
		"size":          field(graphql.NewNonNull(graphql.Int), func(c analysis.CommunityStat) any { return c.Size }),
		"connectivity":  field(graphql.NewNonNull(graphql.Float), func(c analysis.CommunityStat) any { return c.Connectivity }),
		"averageDanger": field(graphql.NewNonNull(graphql.Float), func(c analysis.CommunityStat) any { return c.AverageDanger }),
	},
})

var summaryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Summary",
	Fields: graphql.Fields{
		"locations":         field(graphql.NewNonNull(graphql.Int), func(s *analysis.GraphSummary) any { return s.Locations }),
		"routes":            field(graphql.NewNonNull(graphql.Int), func(s *analysis.GraphSummary) any { return s.Routes }),
		"dangerousRoutes":   field(graphql.NewNonNull(graphql.Int), func(s *analysis.GraphSummary) any { return s.DangerousRoutes }),
		"averageDanger":     field(graphql.NewNonNull(graphql.Float), func(s *analysis.GraphSummary) any { return s.AverageDanger }),
		"components":        field(graphql.NewNonNull(graphql.Int), func(s *analysis.GraphSummary) any { return s.Components }),
		"averageClustering": field(graphql.NewNonNull(graphql.Float), func(s *analysis.GraphSummary) any { return s.AverageClustering }),
		"regions":           field(graphql.NewNonNull(graphql.Int), func(s *analysis.GraphSummary) any { return s.Regions }),
		"modularity":        field(graphql.NewNonNull(graphql.Float), func(s *analysis.GraphSummary) any { return s.Modularity }),
	},
})

var nearbyRingType = graphql.NewObject(graphql.ObjectConfig{
	Name: "NearbyRing",
	Fields: graphql.Fields{
		"hops":      field(graphql.NewNonNull(graphql.Int), func(r analysis.NearbyRing) any { return r.Hops }),
		"locations": field(graphql.NewList(graphql.String), func(r analysis.NearbyRing) any { return r.Locations }),
	},
})

var nearbyType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Nearby",
	Fields: graphql.Fields{
		"origin": field(graphql.NewNonNull(graphql.String), func(n *analysis.NearbyResult) any { return n.Origin }),
		"rings":  field(graphql.NewList(nearbyRingType), func(n *analysis.NearbyResult) any { return n.Rings }),
		"total":  field(graphql.NewNonNull(graphql.Int), func(n *analysis.NearbyResult) any { return n.Total }),
	},
})

// NewSchema builds the query schema over an analysis engine
func NewSchema(engine *analysis.Engine) (graphql.Schema, error) {
	graph := engine.Graph()

	locationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Location",
		Fields: graphql.Fields{
			"name":     field(graphql.NewNonNull(graphql.String), func(l storage.Location) any { return l.Name }),
			"kind":     field(graphql.NewNonNull(graphql.String), func(l storage.Location) any { return string(l.Kind) }),
			"position": field(positionType, func(l storage.Location) any { return l.Position }),
			"routes": &graphql.Field{
				Type:        graphql.NewList(routeType),
				Description: "Routes leaving this location",
				Resolve: func(p graphql.ResolveParams) (any, error) {
					loc, ok := p.Source.(storage.Location)
					if !ok {
						return nil, nil
					}
					return graph.GetOutgoingEdges(loc.Name)
				},
			},
		},
	})

	queryFields := graphql.Fields{
		"health": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return "ok", nil
			},
		},

		"locations": &graphql.Field{
			Type: graphql.NewList(locationType),
			Args: graphql.FieldConfigArgument{
				"kind": &graphql.ArgumentConfig{
					Type:        graphql.String,
					Description: "Only return locations of this kind",
				},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				locations := graph.Locations()
				kind, _ := p.Args["kind"].(string)
				if kind == "" {
					return locations, nil
				}
				if !storage.LocationKind(kind).Valid() {
					return nil, fmt.Errorf("unknown location kind %q", kind)
				}
				filtered := make([]storage.Location, 0, len(locations))
				for _, loc := range locations {
					if loc.Kind == storage.LocationKind(kind) {
						filtered = append(filtered, loc)
					}
				}
				return filtered, nil
			},
		},

		"location": &graphql.Field{
			Type: locationType,
			Args: graphql.FieldConfigArgument{
				"name": &graphql.ArgumentConfig{
					Type: graphql.NewNonNull(graphql.String),
				},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				name, _ := p.Args["name"].(string)
				loc, err := graph.GetLocation(name)
				if storage.IsNotFound(err) {
					return nil, nil
				}
				if err != nil {
					return nil, err
				}
				return loc, nil
			},
		},

		"routes": &graphql.Field{
			Type: graphql.NewList(routeType),
			Args: graphql.FieldConfigArgument{
				"from": &graphql.ArgumentConfig{
					Type:        graphql.String,
					Description: "Only return routes leaving this location",
				},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				if from, _ := p.Args["from"].(string); from != "" {
					return graph.GetOutgoingEdges(from)
				}
				routes := graph.Routes()
				edges := make([]storage.Edge, len(routes))
				for i, r := range routes {
					edges[i] = storage.Edge{From: r.From, To: r.To, Danger: r.Danger, Type: r.Type}
				}
				return edges, nil
			},
		},

		"safestPath": &graphql.Field{
			Type: pathType,
			Args: graphql.FieldConfigArgument{
				"start": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"end":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				start, _ := p.Args["start"].(string)
				end, _ := p.Args["end"].(string)
				return engine.SafestPath(start, end)
			},
		},

		"strategicLocations": &graphql.Field{
			Type: graphql.NewList(strategicLocationType),
			Args: graphql.FieldConfigArgument{
				"top": &graphql.ArgumentConfig{
					Type:         graphql.Int,
					DefaultValue: DefaultTop,
				},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				top, _ := p.Args["top"].(int)
				return engine.StrategicLocations(top)
			},
		},

		"regions": &graphql.Field{
			Type: graphql.NewList(regionType),
			Args: graphql.FieldConfigArgument{
				"resolution": &graphql.ArgumentConfig{
					Type:         graphql.Float,
					DefaultValue: DefaultResolution,
				},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				resolution, _ := p.Args["resolution"].(float64)
				return engine.Regions(resolution)
			},
		},

		"nearby": &graphql.Field{
			Type:        nearbyType,
			Description: "Locations within a number of routes, nearest first",
			Args: graphql.FieldConfigArgument{
				"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"hops": &graphql.ArgumentConfig{
					Type:         graphql.Int,
					DefaultValue: DefaultHops,
				},
				"maxDanger": &graphql.ArgumentConfig{
					Type:         graphql.Int,
					DefaultValue: 0,
				},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				name, _ := p.Args["name"].(string)
				hops, _ := p.Args["hops"].(int)
				maxDanger, _ := p.Args["maxDanger"].(int)
				return engine.Nearby(name, hops, maxDanger)
			},
		},

		"summary": &graphql.Field{
			Type: summaryType,
			Args: graphql.FieldConfigArgument{
				"resolution": &graphql.ArgumentConfig{
					Type:         graphql.Float,
					DefaultValue: DefaultResolution,
				},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				resolution, _ := p.Args["resolution"].(float64)
				return engine.Summary(resolution)
			},
		},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: queryFields,
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}

	return schema, nil
}
