package leagues

import (
	"errors"
	"fmt"
)

// Fixture is one generated pairing before it is stored as a match.
type Fixture struct {
	Round         int   `json:"round"`
	HomeTeamID    int64 `json:"homeTeamId"`
	VisitorTeamID int64 `json:"visitorTeamId"`
}

var ErrInvalidLegs = errors.New("legs must be 1 or 2")

// GenerateRoundRobin pairs every team with every other team once per leg.
// Home and visitor are oriented so that no team's home and away counts differ
// by more than one within a leg. The second leg replays the first with sides
// swapped, continuing the round numbers.
func GenerateRoundRobin(teams []Team, legs int) ([]Fixture, error) {
	if legs != 1 && legs != 2 {
		return nil, ErrInvalidLegs
	}
	if len(teams) < 2 {
		return nil, errors.New("at least two teams are required")
	}
	seen := make(map[int64]struct{}, len(teams))
	for _, team := range teams {
		if _, ok := seen[team.ID]; ok {
			return nil, fmt.Errorf("team %d is listed twice", team.ID)
		}
		seen[team.ID] = struct{}{}
	}

	pairs, rounds := buildRoundRobinPairs(len(teams))
	orientPairs(len(teams), pairs)

	fixtures := make([]Fixture, 0, len(pairs)*legs)
	for _, p := range pairs {
		fixtures = append(fixtures, Fixture{
			Round:         p.round,
			HomeTeamID:    teams[p.home].ID,
			VisitorTeamID: teams[p.away].ID,
		})
	}
	if legs == 2 {
		for _, p := range pairs {
			fixtures = append(fixtures, Fixture{
				Round:         p.round + rounds,
				HomeTeamID:    teams[p.away].ID,
				VisitorTeamID: teams[p.home].ID,
			})
		}
	}
	return fixtures, nil
}

type roundPair struct {
	round int
	home  int
	away  int
}

// buildRoundRobinPairs runs the circle method over team indexes. A bye is
// added for odd counts and never produces a pair.
func buildRoundRobinPairs(n int) ([]roundPair, int) {
	working := make([]int, 0, n+1)
	for i := 0; i < n; i++ {
		working = append(working, i)
	}
	if len(working)%2 == 1 {
		working = append(working, -1)
	}

	rounds := len(working) - 1
	pairs := make([]roundPair, 0, rounds*len(working)/2)

	for round := 0; round < rounds; round++ {
		for i := 0; i < len(working)/2; i++ {
			left := working[i]
			right := working[len(working)-1-i]
			if left < 0 || right < 0 {
				continue
			}
			pairs = append(pairs, roundPair{round: round + 1, home: left, away: right})
		}
		rotateTeams(working)
	}

	return pairs, rounds
}

func rotateTeams(teams []int) {
	if len(teams) <= 2 {
		return
	}
	last := teams[len(teams)-1]
	copy(teams[2:], teams[1:len(teams)-1])
	teams[1] = last
}

// orientPairs sets home/away along an Euler circuit of the pairing graph.
// Odd-degree teams are joined to an extra vertex first so every degree is
// even; walking a closed trail gives each vertex equal in and out edges, and
// dropping the extra edges moves any team by at most one.
func orientPairs(n int, pairs []roundPair) {
	type edge struct {
		a, b int
		pair int // index into pairs, -1 for edges to the extra vertex
	}

	extra := n
	var edges []edge
	adj := make([][]int, n+1)
	degree := make([]int, n)
	for i, p := range pairs {
		adj[p.home] = append(adj[p.home], len(edges))
		adj[p.away] = append(adj[p.away], len(edges))
		edges = append(edges, edge{a: p.home, b: p.away, pair: i})
		degree[p.home]++
		degree[p.away]++
	}
	for v := 0; v < n; v++ {
		if degree[v]%2 == 1 {
			adj[v] = append(adj[v], len(edges))
			adj[extra] = append(adj[extra], len(edges))
			edges = append(edges, edge{a: v, b: extra, pair: -1})
		}
	}

	used := make([]bool, len(edges))
	next := make([]int, n+1)
	for start := 0; start <= n; start++ {
		stack := []int{start}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			for next[v] < len(adj[v]) && used[adj[v][next[v]]] {
				next[v]++
			}
			if next[v] == len(adj[v]) {
				stack = stack[:len(stack)-1]
				continue
			}
			idx := adj[v][next[v]]
			used[idx] = true
			e := edges[idx]
			to := e.b
			if to == v {
				to = e.a
			}
			if e.pair >= 0 {
				pairs[e.pair].home = v
				pairs[e.pair].away = to
			}
			stack = append(stack, to)
		}
	}
}
