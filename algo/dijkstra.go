package algo

import (
	"container/heap"
	"math"
	"slices"
)

// PriorityQueueItem an entry of the priority queue
type PriorityQueueItem struct {
	NodeID string
	Cost   float64 // meters from the source
	Order  int     // node insertion index, breaks cost ties
	Index  int     // position in the heap
}

// PriorityQueue min-heap of items, implements heap.Interface
type PriorityQueue []*PriorityQueueItem

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Cost != pq[j].Cost {
		return pq[i].Cost < pq[j].Cost
	}
	return pq[i].Order < pq[j].Order
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *PriorityQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*PriorityQueueItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*pq = old[0 : n-1]
	return item
}

// Reachable reports whether endID can be reached from startID, ignoring weights
func (g *Graph) Reachable(startID, endID string) bool {
	if !g.HasNode(startID) || !g.HasNode(endID) {
		return false
	}
	if startID == endID {
		return true
	}

	visited := map[string]bool{startID: true}
	queue := []string{startID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, edge := range g.AdjList[current] {
			if edge.To == endID {
				return true
			}
			if !visited[edge.To] {
				visited[edge.To] = true
				queue = append(queue, edge.To)
			}
		}
	}
	return false
}

// Dijkstra shortest path by edge length.
// Returns the node sequence and its length; ok is false when endID is unreachable.
// Ties are settled by node insertion order and a predecessor is only replaced
// by a strictly shorter path, so the result is fixed for a given graph.
func (g *Graph) Dijkstra(startID, endID string) (path []string, dist float64, ok bool) {
	if !g.HasNode(startID) || !g.HasNode(endID) {
		return nil, 0, false
	}

	cost := map[string]float64{startID: 0}
	prev := make(map[string]string)
	visited := make(map[string]bool)

	pq := make(PriorityQueue, 0)
	heap.Init(&pq)
	heap.Push(&pq, &PriorityQueueItem{NodeID: startID, Order: g.position(startID)})

	for pq.Len() > 0 {
		current := heap.Pop(&pq).(*PriorityQueueItem)
		currentID := current.NodeID

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		if currentID == endID {
			break
		}

		for _, edge := range g.AdjList[currentID] {
			if visited[edge.To] {
				continue
			}
			newCost := cost[currentID] + edge.Dist
			old, seen := cost[edge.To]
			if seen && newCost >= old {
				continue
			}
			cost[edge.To] = newCost
			prev[edge.To] = currentID
			heap.Push(&pq, &PriorityQueueItem{
				NodeID: edge.To,
				Cost:   newCost,
				Order:  g.position(edge.To),
			})
		}
	}

	total, found := cost[endID]
	if !found || math.IsInf(total, 1) {
		return nil, 0, false
	}

	for at := endID; ; at = prev[at] {
		path = append(path, at)
		if at == startID {
			break
		}
	}
	slices.Reverse(path)

	return path, total, true
}
