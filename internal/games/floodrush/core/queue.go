package core

import (
	"math"
	"slices"
)

// Queue defaults.
const (
	DefaultQueueCapacity = 20
	DefaultMinPoints     = 10
	DefaultMaxPoints     = 100 // exclusive
	DefaultMinSpeed      = 0.5
	DefaultMaxSpeed      = 1.0
)

// QueueOptions configures piece generation. Zero values use the defaults.
type QueueOptions struct {
	Capacity      int
	MinPoints     int
	MaxPoints     int // exclusive
	MinSpeed      float64
	MaxSpeed      float64
	ExcludedTypes []PipeType
}

func (o QueueOptions) normalized() QueueOptions {
	if o.Capacity <= 0 {
		o.Capacity = DefaultQueueCapacity
	}
	if o.MinPoints <= 0 && o.MaxPoints <= 0 {
		o.MinPoints, o.MaxPoints = DefaultMinPoints, DefaultMaxPoints
	}
	o.MinPoints = max(o.MinPoints, 0)
	if o.MaxPoints <= o.MinPoints {
		o.MaxPoints = o.MinPoints + 1
	}
	if o.MinSpeed == 0 && o.MaxSpeed == 0 {
		o.MinSpeed, o.MaxSpeed = DefaultMinSpeed, DefaultMaxSpeed
	}
	o.MinSpeed = math.Min(math.Max(o.MinSpeed, 0), 1)
	o.MaxSpeed = math.Min(math.Max(o.MaxSpeed, 0), 1)
	if o.MaxSpeed < o.MinSpeed {
		o.MinSpeed, o.MaxSpeed = o.MaxSpeed, o.MinSpeed
	}
	return o
}

// cornerPairs are the four unordered corners in generation order.
var cornerPairs = [4][2]Connection{
	{North, East},
	{North, West},
	{South, East},
	{South, West},
}

// PieceQueue holds the upcoming pieces. After Initialize its length is
// always exactly its capacity; TakeNext refills immediately.
type PieceQueue struct {
	rng    RNG
	opts   QueueOptions
	types  []PipeType
	pieces []*PipeSection
}

// NewPieceQueue creates an empty queue drawing from rng.
// Call Initialize before taking pieces.
func NewPieceQueue(rng RNG, opts QueueOptions) *PieceQueue {
	opts = opts.normalized()

	types := make([]PipeType, 0, len(PipeTypes))
	for _, t := range PipeTypes {
		if !slices.Contains(opts.ExcludedTypes, t) {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		types = PipeTypes[:]
	}

	return &PieceQueue{
		rng:    rng,
		opts:   opts,
		types:  types,
		pieces: make([]*PipeSection, 0, opts.Capacity),
	}
}

// Initialize clears the queue and fills it to capacity.
func (q *PieceQueue) Initialize() {
	q.pieces = q.pieces[:0]
	for i := 0; i < q.opts.Capacity; i++ {
		q.pieces = append(q.pieces, q.GenerateNext())
	}
}

// GenerateNext creates a fresh Idle piece at (0,0) without enqueueing it.
// Draw order: type, shape, speed, points.
func (q *PieceQueue) GenerateNext() *PipeSection {
	t := q.types[q.rng.Intn(len(q.types))]

	var entry, exit Connection
	var secondary *int
	switch t {
	case Straight:
		if q.rng.Intn(2) == 0 {
			entry, exit = West, East
		} else {
			entry, exit = North, South
		}
	case Corner:
		pair := cornerPairs[q.rng.Intn(len(cornerPairs))]
		entry, exit = pair[0], pair[1]
	case CrossSection:
		entry, exit = North, South
		sp := q.drawPoints()
		secondary = &sp
	}

	speed := q.opts.MinSpeed + q.rng.Float64()*(q.opts.MaxSpeed-q.opts.MinSpeed)
	points := q.drawPoints()

	piece, err := NewPipeSection(Position{}, t, entry, exit, speed, points, secondary)
	if err != nil {
		// Options are normalized, so this only fires on a broken RNG.
		panic(err)
	}
	return piece
}

func (q *PieceQueue) drawPoints() int {
	return q.opts.MinPoints + q.rng.Intn(q.opts.MaxPoints-q.opts.MinPoints)
}

// Peek returns the head piece without removing it.
func (q *PieceQueue) Peek() (*PipeSection, error) {
	if len(q.pieces) == 0 {
		return nil, invalid(CodeEmptyQueue, "", "piece queue is empty")
	}
	return q.pieces[0], nil
}

// TakeNext removes the head piece, appends a new one and returns the head.
// The caller owns the returned piece.
func (q *PieceQueue) TakeNext() (*PipeSection, error) {
	head, err := q.Peek()
	if err != nil {
		return nil, err
	}
	q.pieces[0] = nil
	q.pieces = append(q.pieces[1:], q.GenerateNext())
	return head, nil
}

// Len returns the number of queued pieces.
func (q *PieceQueue) Len() int { return len(q.pieces) }

// Capacity returns the configured queue size.
func (q *PieceQueue) Capacity() int { return q.opts.Capacity }

// Pieces returns a copy of the queue in order, head first.
func (q *PieceQueue) Pieces() []*PipeSection {
	return slices.Clone(q.pieces)
}
