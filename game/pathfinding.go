package game

import "container/heap"

// Path is an ordered cell route from start to goal, inclusive
type Path []Cell

// 4-connected, fixed expansion order keeps results deterministic
var neighborOffsets = [...]Cell{
	{X: 1, Z: 0},
	{X: -1, Z: 0},
	{X: 0, Z: 1},
	{X: 0, Z: -1},
}

func manhattan(a, b Cell) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dz := a.Z - b.Z
	if dz < 0 {
		dz = -dz
	}
	return dx + dz
}

type pathNode struct {
	cell  Cell
	g     int
	f     int
	seq   int
	index int
}

// pathQueue orders by f; equal f pops in insertion order
type pathQueue []*pathNode

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *pathQueue) Push(x any) {
	item := x.(*pathNode)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *pathQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// FindPath runs A* from start to goal and returns the cell route, or nil
// when goal cannot be reached. Only neighbor cells are checked for
// blocking: a blocked start can still be left, and a blocked goal is
// unreachable unless it equals start.
func (g *Grid) FindPath(start, goal Cell) Path {
	if !g.InBounds(start) || !g.InBounds(goal) {
		return nil
	}
	if start == goal {
		return Path{start}
	}

	seq := 0
	open := &pathQueue{}
	heap.Push(open, &pathNode{cell: start, g: 0, f: manhattan(start, goal), seq: seq})
	gScore := map[Cell]int{start: 0}
	cameFrom := make(map[Cell]Cell)
	closed := make(map[Cell]struct{})

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if _, done := closed[current.cell]; done {
			continue
		}
		if current.cell == goal {
			return reconstructPath(cameFrom, start, goal)
		}
		closed[current.cell] = struct{}{}

		for _, d := range neighborOffsets {
			next := Cell{X: current.cell.X + d.X, Z: current.cell.Z + d.Z}
			if !g.InBounds(next) || g.IsBlocked(next) {
				continue
			}
			if _, done := closed[next]; done {
				continue
			}
			tentative := current.g + 1
			if prev, ok := gScore[next]; ok && tentative >= prev {
				continue
			}
			gScore[next] = tentative
			cameFrom[next] = current.cell
			seq++
			heap.Push(open, &pathNode{
				cell: next,
				g:    tentative,
				f:    tentative + manhattan(next, goal),
				seq:  seq,
			})
		}
	}
	return nil
}

func reconstructPath(cameFrom map[Cell]Cell, start, goal Cell) Path {
	path := Path{goal}
	for c := goal; c != start; {
		c = cameFrom[c]
		path = append(path, c)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
