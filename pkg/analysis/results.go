package analysis

import (
	"math"

	"github.com/dd0wney/realm-atlas/pkg/storage"
)

// Query names used in errors, logs and metrics
const (
	QuerySafestPath = "safest_path"
	QueryStrategic  = "strategic_locations"
	QueryRegions    = "regional_groups"
	QueryNearby     = "nearby"
)

// PathStep is one leg of a journey
type PathStep struct {
	From      string            `json:"from"`
	To        string            `json:"to"`
	Danger    int               `json:"danger"`
	RouteType storage.RouteType `json:"routeType"`
}

// PathResult is the safest route between two locations
type PathResult struct {
	Path        []string   `json:"path"`
	TotalDanger int        `json:"totalDanger"`
	Steps       []PathStep `json:"steps"`
}

// LocationStat is one entry of the strategic ranking
type LocationStat struct {
	Name          string  `json:"name"`
	Score         float64 `json:"score"`         // Betweenness as a percentage, 2 decimals
	Connections   int     `json:"connections"`   // Incoming plus outgoing edges
	AverageDanger float64 `json:"averageDanger"` // Mean incident edge danger, 2 decimals
}

// CommunityStat describes one region
type CommunityStat struct {
	ID            int      `json:"id"`
	Members       []string `json:"members"` // Sorted by name
	Size          int      `json:"size"`
	Connectivity  float64  `json:"connectivity"`  // Internal route density as a percentage
	AverageDanger float64  `json:"averageDanger"` // Mean internal route danger
	Capital       string   `json:"capital"`       // Member with most internal routes
}

// NearbyRing lists the locations first reached after Hops routes
type NearbyRing struct {
	Hops      int      `json:"hops"`
	Locations []string `json:"locations"`
}

// NearbyResult is the neighbourhood of a location
type NearbyResult struct {
	Origin string       `json:"origin"`
	Rings  []NearbyRing `json:"rings"`
	Total  int          `json:"total"`
}

// GraphSummary is an overview of a graph
type GraphSummary struct {
	Locations         int                          `json:"locations"`
	Routes            int                          `json:"routes"`
	DangerousRoutes   int                          `json:"dangerousRoutes"`
	AverageDanger     float64                      `json:"averageDanger"`
	KindCounts        map[storage.LocationKind]int `json:"kindCounts"`
	Components        int                          `json:"components"`
	AverageClustering float64                      `json:"averageClustering"`
	Regions           int                          `json:"regions"`
	Modularity        float64                      `json:"modularity"`
}

// round2 rounds to two decimal places
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// percent converts a fraction to a percentage with two decimals
func percent(x float64) float64 {
	return math.Round(x*10000) / 100
}
