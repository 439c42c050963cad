package algorithms

import "github.com/dd0wney/realm-atlas/pkg/storage"

// ClusteringCoefficient computes the local clustering coefficient of every
// location: how close its neighbours are to forming a complete graph.
func ClusteringCoefficient(graph *storage.Graph) []float64 {
	n := graph.NodeCount()
	coefficients := make([]float64, n)

	// Pre-build neighbour sets so pair checks are O(1)
	neighborSets := make([]map[int]bool, n)
	for i := 0; i < n; i++ {
		set := make(map[int]bool)
		for _, edge := range graph.Outgoing(i) {
			set[edge.ToIndex] = true
		}
		neighborSets[i] = set
	}

	for i := 0; i < n; i++ {
		neighbors := make([]int, 0, len(neighborSets[i]))
		for v := range neighborSets[i] {
			neighbors = append(neighbors, v)
		}

		k := len(neighbors)
		if k < 2 {
			continue
		}

		triangles := 0
		for a := 0; a < k; a++ {
			for b := a + 1; b < k; b++ {
				if neighborSets[neighbors[a]][neighbors[b]] {
					triangles++
				}
			}
		}

		possibleTriangles := k * (k - 1) / 2
		coefficients[i] = float64(triangles) / float64(possibleTriangles)
	}

	return coefficients
}

// AverageClusteringCoefficient computes the mean local clustering coefficient
func AverageClusteringCoefficient(graph *storage.Graph) float64 {
	coefficients := ClusteringCoefficient(graph)
	if len(coefficients) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, coef := range coefficients {
		sum += coef
	}
	return sum / float64(len(coefficients))
}
