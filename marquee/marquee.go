// Package marquee builds the scrolling "recent winners" list shown on the
// home page. Entries are synthetic: usernames and amounts are random, the
// game images come from a fixed list.
package marquee

import (
	"fmt"
	"math/rand/v2"
)

const (
	DefaultCount = 20

	maxShuffleAttempts = 100
	minAmount          = 30
	maxAmount          = 500
)

// Images is the built-in game image list.
var Images = []string{
	"lunbo/1.png", "lunbo/2.png", "lunbo/3.png", "lunbo/4.png", "lunbo/5.png",
	"lunbo/6.png", "lunbo/7.png", "lunbo/8.png", "lunbo/9.png", "lunbo/10.png",
	"lunbo/11.png", "lunbo/a.png", "lunbo/b.png", "lunbo/c.png", "lunbo/d.jpg",
	"lunbo/e.png", "lunbo/f.png", "lunbo/g.png",
}

type Winner struct {
	GameImage string `json:"gameImage"`
	Username  string `json:"username"`
	Amount    string `json:"amount"`
}

// Generator is not safe for concurrent use when built WithRand.
type Generator struct {
	images []string
	rnd    *rand.Rand
}

type Option func(*Generator)

// WithRand fixes the random source, mainly for tests.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		g.rnd = r
	}
}

func WithImages(images []string) Option {
	return func(g *Generator) {
		g.images = append([]string(nil), images...)
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{images: Images}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) intN(n int) int {
	if g.rnd != nil {
		return g.rnd.IntN(n)
	}
	return rand.IntN(n)
}

// Winners returns count entries in which no two neighbours share an image.
func (g *Generator) Winners(count int) []Winner {
	if count <= 0 || len(g.images) == 0 {
		return []Winner{}
	}

	copies := (count + len(g.images) - 1) / len(g.images)
	list := make([]Winner, 0, copies*len(g.images))
	for range copies {
		for _, img := range g.images {
			list = append(list, Winner{
				GameImage: img,
				Username:  g.username(),
				Amount:    g.amount(),
			})
		}
	}

	g.shuffle(list)
	return list[:count]
}

// username renders as d***dd.
func (g *Generator) username() string {
	return fmt.Sprintf("%d***%02d", g.intN(9)+1, g.intN(99)+1)
}

func (g *Generator) amount() string {
	return fmt.Sprintf("%dK", g.intN(maxAmount-minAmount+1)+minAmount)
}

func (g *Generator) shuffle(list []Winner) {
	for attempt := 0; attempt < maxShuffleAttempts; attempt++ {
		for i := len(list) - 1; i > 0; i-- {
			j := g.intN(i + 1)
			list[i], list[j] = list[j], list[i]
		}
		if firstAdjacentDuplicate(list) < 0 {
			return
		}
	}
	repair(list)
}

func firstAdjacentDuplicate(list []Winner) int {
	for i := 0; i+1 < len(list); i++ {
		if list[i].GameImage == list[i+1].GameImage {
			return i
		}
	}
	return -1
}

// repair swaps the second of each duplicate pair with an element that fits
// both positions, searching forward first and then backward.
func repair(list []Winner) {
	for i := 0; i+1 < len(list); i++ {
		if list[i].GameImage != list[i+1].GameImage {
			continue
		}
		if j := swapCandidate(list, i+1, i+2, len(list)); j >= 0 {
			list[i+1], list[j] = list[j], list[i+1]
			continue
		}
		if j := swapCandidate(list, i+1, 0, i); j >= 0 {
			list[i+1], list[j] = list[j], list[i+1]
		}
	}
}

// swapCandidate finds j in [from, to) such that exchanging list[pos] and
// list[j] leaves neither position next to an equal image.
func swapCandidate(list []Winner, pos, from, to int) int {
	for j := from; j < to; j++ {
		if fits(list, pos, j, list[j].GameImage) && fits(list, j, pos, list[pos].GameImage) {
			return j
		}
	}
	return -1
}

// fits reports whether img can sit at pos once list[other] has been swapped
// into pos.
func fits(list []Winner, pos, other int, img string) bool {
	for _, n := range []int{pos - 1, pos + 1} {
		if n < 0 || n >= len(list) {
			continue
		}
		neighbour := list[n].GameImage
		if n == other {
			neighbour = list[pos].GameImage
		}
		if neighbour == img {
			return false
		}
	}
	return true
}
