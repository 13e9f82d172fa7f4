package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Iterations   int
	Duration     time.Duration
	Episodes     int
	FullPlayouts int
	IsTreeReused bool
	TreeSize     int
}

type MoveMetric struct {
	Step   int
	Player string
	Action int
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // "" on a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(iterations int)
	SetTreeReused(value bool)
	AddFullPlayout()
	AddEpisode()
	Complete(treeSize int) SearchMetric
}

type collector struct {
	iterations   int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	isTreeReused atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) SetTreeReused(value bool) {
	m.isTreeReused.Store(value)
}

// Start resets the counters for a new move search.
func (m *collector) Start(iterations int) {
	m.startTime = time.Now()
	m.iterations = iterations
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete(treeSize int) SearchMetric {
	return SearchMetric{
		Iterations:   m.iterations,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		IsTreeReused: m.isTreeReused.Load(),
		TreeSize:     treeSize,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(iterations int)               {}
func (m *dummyCollector) SetTreeReused(value bool)           {}
func (m *dummyCollector) AddFullPlayout()                    {}
func (m *dummyCollector) AddEpisode()                        {}
func (m *dummyCollector) Complete(treeSize int) SearchMetric { return SearchMetric{} }
