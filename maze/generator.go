// Package maze generates walled tile layouts for the grid map.
package maze

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/raycaster/grid"
)

type Point struct {
	X, Y int
}

type Config struct {
	Cols, Rows int

	// Braiding: 0.0 (perfect maze, one route between any two cells) to 1.0 (no dead ends).
	// Loops give rays longer sight lines.
	Braiding float64

	Seed int64 // 0 = time based
}

type Result struct {
	Tiles [][]uint8 // [row][col], outer ring always wall
	Start Point
	Goal  Point // open cell farthest from Start by walking distance
}

var (
	jumps = [4]Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
	steps = [4]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
)

// Generate carves a maze with a recursive backtracker on odd cells.
// Even dimensions are rounded down so the ring stays intact.
func Generate(cfg Config) Result {
	rows, cols := oddAtLeast(cfg.Rows, 5), oddAtLeast(cfg.Cols, 5)

	tiles := make([][]uint8, rows)
	for r := range tiles {
		tiles[r] = make([]uint8, cols)
		for c := range tiles[r] {
			tiles[r][c] = grid.Wall
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	start := Point{1, 1}
	carve(tiles, start, rng)

	if cfg.Braiding > 0 {
		braid(tiles, cfg.Braiding, rng)
	}

	return Result{
		Tiles: tiles,
		Start: start,
		Goal:  farthest(tiles, start),
	}
}

func carve(tiles [][]uint8, start Point, rng *rand.Rand) {
	rows, cols := len(tiles), len(tiles[0])
	tiles[start.Y][start.X] = grid.Open
	stack := []Point{start}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]

		var candidates [4]Point
		n := 0
		for _, d := range jumps {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			// Keep a one-cell ring of walls
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && tiles[ny][nx] != grid.Open {
				candidates[n] = d
				n++
			}
		}

		if n == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(n)]
		tiles[curr.Y+d.Y/2][curr.X+d.X/2] = grid.Open
		tiles[curr.Y+d.Y][curr.X+d.X] = grid.Open
		stack = append(stack, Point{curr.X + d.X, curr.Y + d.Y})
	}
}

// braid opens a wall next to dead ends with the given probability
func braid(tiles [][]uint8, probability float64, rng *rand.Rand) {
	rows, cols := len(tiles), len(tiles[0])

	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if tiles[y][x] != grid.Open || exits(tiles, x, y) != 1 || rng.Float64() >= probability {
				continue
			}

			var candidates [4]Point
			n := 0
			for _, d := range jumps {
				nx, ny := x+d.X, y+d.Y
				wx, wy := x+d.X/2, y+d.Y/2
				if nx <= 0 || nx >= cols-1 || ny <= 0 || ny >= rows-1 {
					continue
				}
				if tiles[ny][nx] == grid.Open && tiles[wy][wx] != grid.Open && !opensPlaza(tiles, wx, wy) {
					candidates[n] = Point{wx, wy}
					n++
				}
			}

			if n > 0 {
				c := candidates[rng.Intn(n)]
				tiles[c.Y][c.X] = grid.Open
			}
		}
	}
}

func exits(tiles [][]uint8, x, y int) int {
	n := 0
	for _, d := range steps {
		if tiles[y+d.Y][x+d.X] == grid.Open {
			n++
		}
	}
	return n
}

// opensPlaza reports whether opening (x, y) would create a 2x2 open block
func opensPlaza(tiles [][]uint8, x, y int) bool {
	open := func(tx, ty int) bool {
		if ty < 0 || ty >= len(tiles) || tx < 0 || tx >= len(tiles[0]) {
			return false
		}
		return tiles[ty][tx] == grid.Open
	}

	for _, q := range [4]Point{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		if open(x+q.X, y) && open(x, y+q.Y) && open(x+q.X, y+q.Y) {
			return true
		}
	}
	return false
}

// farthest runs a BFS from start and returns the last cell reached
func farthest(tiles [][]uint8, start Point) Point {
	rows, cols := len(tiles), len(tiles[0])
	visited := make([]bool, rows*cols)
	visited[start.Y*cols+start.X] = true

	queue := []Point{start}
	last := start
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		last = curr

		for _, d := range steps {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			if nx < 0 || nx >= cols || ny < 0 || ny >= rows {
				continue
			}
			if tiles[ny][nx] == grid.Open && !visited[ny*cols+nx] {
				visited[ny*cols+nx] = true
				queue = append(queue, Point{nx, ny})
			}
		}
	}
	return last
}

func oddAtLeast(n, least int) int {
	if n < least {
		n = least
	}
	if n%2 == 0 {
		n--
	}
	return n
}
