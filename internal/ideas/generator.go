// Package ideas serves research project ideas from a static curated table and
// builds templated suggestions from a free-text interest.
package ideas

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

const (
	// MaxSampled caps ideas drawn from the whole table when no domain is selected.
	MaxSampled = 6
	// MaxCurated caps every curated response.
	MaxCurated = 8
)

// Idea is a single project idea.
type Idea struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Skills      []string `json:"skills"`
	Duration    string   `json:"duration"`
	AIGenerated bool     `json:"aiGenerated,omitempty"`
}

// Generator draws ideas using its random source. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator returns a Generator. A nil source seeds one from the clock.
func NewGenerator(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rnd: rnd}
}

// Curated collects ideas for the selected domains, filters them by difficulty
// when one is given, shuffles the result and returns at most MaxCurated.
// With no domains selected it samples up to MaxSampled ideas from the table.
func (g *Generator) Curated(domains []string, difficulty string) []Idea {
	difficulty = strings.TrimSpace(difficulty)

	var pool []Idea
	if len(domains) == 0 {
		pool = g.shuffle(allIdeas())
		if len(pool) > MaxSampled {
			pool = pool[:MaxSampled]
		}
	} else {
		seen := make(map[string]struct{}, len(domains))
		for _, domain := range domains {
			if _, ok := seen[domain]; ok {
				continue
			}
			seen[domain] = struct{}{}
			for _, idea := range catalog[domain] {
				if difficulty != "" && idea.Difficulty != difficulty {
					continue
				}
				pool = append(pool, cloneIdea(idea))
			}
		}
	}

	pool = g.shuffle(pool)
	if len(pool) > MaxCurated {
		pool = pool[:MaxCurated]
	}
	if pool == nil {
		pool = []Idea{}
	}
	return pool
}

// Suggest builds three templated ideas around the given interest.
func (g *Generator) Suggest(interest, difficulty string) []Idea {
	interest = strings.TrimSpace(interest)
	difficulty = strings.TrimSpace(difficulty)

	subject := func(fallback string) string {
		if interest == "" {
			return fallback
		}
		return interest
	}
	level := func(fallback string) string {
		if difficulty == "" {
			return fallback
		}
		return difficulty
	}

	return []Idea{
		{
			Title:       fmt.Sprintf("Smart %s Monitoring System", subject("Healthcare")),
			Description: fmt.Sprintf("Develop an intelligent monitoring system for %s using IoT sensors and machine learning to predict and prevent issues before they occur.", subject("healthcare")),
			Difficulty:  level("Intermediate"),
			Skills:      []string{"IoT", "Machine Learning", "Data Analysis", "Mobile Development"},
			Duration:    "6-8 months",
			AIGenerated: true,
		},
		{
			Title:       fmt.Sprintf("%s Analytics Platform", subject("Education")),
			Description: fmt.Sprintf("Create a comprehensive analytics platform for %s that uses big data to provide insights and improve outcomes.", subject("education")),
			Difficulty:  level("Intermediate"),
			Skills:      []string{"Data Science", "Web Development", "Statistics", "Visualization"},
			Duration:    "5-7 months",
			AIGenerated: true,
		},
		{
			Title:       fmt.Sprintf("Blockchain-based %s Solution", subject("Supply Chain")),
			Description: fmt.Sprintf("Build a transparent and secure %s management system using blockchain technology for enhanced traceability.", subject("supply chain")),
			Difficulty:  level("Advanced"),
			Skills:      []string{"Blockchain", "Smart Contracts", "Web3", "Cryptography"},
			Duration:    "7-9 months",
			AIGenerated: true,
		},
	}
}

func (g *Generator) shuffle(ideas []Idea) []Idea {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rnd.Shuffle(len(ideas), func(i, j int) { ideas[i], ideas[j] = ideas[j], ideas[i] })
	return ideas
}

func allIdeas() []Idea {
	var out []Idea
	for _, domain := range catalogOrder {
		for _, idea := range catalog[domain] {
			out = append(out, cloneIdea(idea))
		}
	}
	return out
}

func cloneIdea(idea Idea) Idea {
	idea.Skills = append([]string(nil), idea.Skills...)
	return idea
}
