package engine

// MeldKind distinguishes sequences from triples.
type MeldKind uint8

const (
	MeldSequence MeldKind = iota
	MeldTriple
)

func (k MeldKind) String() string {
	if k == MeldTriple {
		return "triple"
	}
	return "sequence"
}

// Canastra classifies a meld of seven or more cards.
type Canastra uint8

const (
	CanastraNone Canastra = iota
	CanastraDirty
	CanastraClean
)

func (c Canastra) String() string {
	switch c {
	case CanastraClean:
		return "clean"
	case CanastraDirty:
		return "dirty"
	}
	return "none"
}

// Meld is a table-side group of 3+ cards: a single-suit run or a single-rank
// triple. Melds are created by a lay action and only ever grow.
type Meld struct {
	Kind  MeldKind
	Suit  Suit // sequences only
	Cards []Card
}

// NewSequence validates cards as a run of the given suit and returns the meld.
func NewSequence(cards []Card, suit Suit) (*Meld, error) {
	if !CanFormSequence(cards, suit) {
		return nil, ErrIllegalMeld
	}
	m := &Meld{Kind: MeldSequence, Suit: suit, Cards: append([]Card(nil), cards...)}
	return m, nil
}

// NewTriple validates cards as a single-rank triple and returns the meld.
func NewTriple(cards []Card) (*Meld, error) {
	if !CanFormTriple(cards) {
		return nil, ErrIllegalMeld
	}
	m := &Meld{Kind: MeldTriple, Cards: append([]Card(nil), cards...)}
	return m, nil
}

// CanAdd reports whether card may legally extend the meld: a natural at an
// open end (or filling the remaining gap), or a wildcard when the meld holds
// none yet.
func (m *Meld) CanAdd(card Card) bool {
	candidate := make([]Card, 0, len(m.Cards)+1)
	candidate = append(candidate, m.Cards...)
	candidate = append(candidate, card)
	if m.Kind == MeldSequence {
		return sequenceValid(candidate, m.Suit)
	}
	return tripleValid(candidate)
}

// Add appends card to the meld, failing with ErrIllegalAddition when CanAdd
// rejects it.
func (m *Meld) Add(card Card) error {
	if !m.CanAdd(card) {
		return ErrIllegalAddition
	}
	m.Cards = append(m.Cards, card)
	return nil
}

// Wildcards returns the number of wildcard-acting cards in the meld (0 or 1).
// A 2 of the sequence's suit counts only when it is acting as a substitute
// rather than as the natural 2.
func (m *Meld) Wildcards() int {
	if m.Kind == MeldTriple {
		rank := tripleRank(m.Cards)
		n := 0
		for _, c := range m.Cards {
			if c.Rank == RankJoker || (c.Rank == RankTwo && rank != RankTwo) {
				n++
			}
		}
		return n
	}
	_, wilds, ok := resolveSequence(m.Cards, m.Suit)
	if !ok {
		return 0
	}
	return len(wilds)
}

// Classify returns the canastra status: CLEAN for 7+ cards with no wildcard,
// DIRTY for 7+ with one, NONE below seven cards.
func (m *Meld) Classify() Canastra {
	if len(m.Cards) < 7 {
		return CanastraNone
	}
	if m.Wildcards() == 0 {
		return CanastraClean
	}
	return CanastraDirty
}

// Points returns the meld's score: 10 per card plus the canastra bonus.
func (m *Meld) Points() int {
	pts := 0
	for _, c := range m.Cards {
		pts += c.Value()
	}
	switch m.Classify() {
	case CanastraClean:
		pts += 200
	case CanastraDirty:
		pts += 100
	}
	return pts
}

// CanFormSequence reports whether cards (3+) can be arranged into a single
// contiguous run of the given suit, with at most one wildcard filling at most
// one gap and the Ace usable before the Two or after the King.
func CanFormSequence(cards []Card, suit Suit) bool {
	if len(cards) < 3 || suit == SuitNone {
		return false
	}
	return sequenceValid(cards, suit)
}

// SequenceSuits returns every suit under which cards form a valid sequence.
func SequenceSuits(cards []Card) []Suit {
	var out []Suit
	for _, suit := range Suits {
		if CanFormSequence(cards, suit) {
			out = append(out, suit)
		}
	}
	return out
}

// CanFormTriple reports whether cards (3+) share one rank with at most one
// wildcard-acting substitute.
func CanFormTriple(cards []Card) bool {
	if len(cards) < 3 {
		return false
	}
	return tripleValid(cards)
}

// ---------------------------------------------------------------------------
// Sequence validation pipeline
// ---------------------------------------------------------------------------

// actsAsWildcard reports whether card counts toward the one-wildcard limit in
// a sequence of the given suit: jokers and off-suit twos.
func actsAsWildcard(card Card, suit Suit) bool {
	return card.Wild() && !(card.Rank == RankTwo && card.Suit == suit)
}

// naturalInSequence reports whether card can play as a natural in a sequence
// of the given suit. A 2 of the suit qualifies.
func naturalInSequence(card Card, suit Suit) bool {
	return card.Suit == suit && card.Rank != RankJoker
}

// sequenceValid runs the full pipeline. The suit's own 2 is tried as the
// natural 2 first and retried as the wildcard when that fails.
func sequenceValid(cards []Card, suit Suit) bool {
	naturals, wilds, ok := resolveSequence(cards, suit)
	if !ok {
		return false
	}
	return len(naturals) >= 2 && len(wilds) <= 1
}

// resolveSequence splits cards into naturals and wildcard-acting cards under
// the interpretation that validates, preferring the 2-of-suit as natural.
// ok is false when no interpretation forms a contiguous run.
func resolveSequence(cards []Card, suit Suit) (naturals, wilds []Card, ok bool) {
	for _, c := range cards {
		switch {
		case actsAsWildcard(c, suit):
			wilds = append(wilds, c)
		case naturalInSequence(c, suit):
			naturals = append(naturals, c)
		default:
			return nil, nil, false
		}
	}
	if len(wilds) > 1 || len(naturals) < 2 {
		return nil, nil, false
	}
	if !distinctRanks(naturals) {
		return nil, nil, false
	}
	if ranksContiguous(naturalRanks(naturals), len(wilds)) {
		return naturals, wilds, true
	}
	// Retry with the suit's own 2 acting as the wildcard instead.
	if len(wilds) == 0 {
		for i, c := range naturals {
			if c.Rank == RankTwo {
				retry := append(append([]Card(nil), naturals[:i]...), naturals[i+1:]...)
				if len(retry) >= 2 && ranksContiguous(naturalRanks(retry), 1) {
					return retry, []Card{c}, true
				}
				break
			}
		}
	}
	return nil, nil, false
}

func distinctRanks(cards []Card) bool {
	var seen [14]bool
	for _, c := range cards {
		if seen[c.Rank] {
			return false
		}
		seen[c.Rank] = true
	}
	return true
}

func naturalRanks(cards []Card) []Rank {
	ranks := make([]Rank, len(cards))
	for i, c := range cards {
		ranks[i] = c.Rank
	}
	return ranks
}

// ranksContiguous reports whether the ranks admit a gapless arrangement once
// up to `wilds` missing positions are filled. Both canonical orderings are
// tried: ace-low first, then ace-high for wraparound runs.
func ranksContiguous(ranks []Rank, wilds int) bool {
	if gapSum(ranks, rankPos) <= wilds {
		return true
	}
	return gapSum(ranks, rankPosAceHigh) <= wilds
}

// gapSum returns the total number of missing positions between consecutive
// ranks under the given position function.
func gapSum(ranks []Rank, pos func(Rank) int) int {
	positions := make([]int, len(ranks))
	for i, r := range ranks {
		positions[i] = pos(r)
	}
	for i := 1; i < len(positions); i++ {
		for j := i; j > 0 && positions[j] < positions[j-1]; j-- {
			positions[j], positions[j-1] = positions[j-1], positions[j]
		}
	}
	total := 0
	for i := 1; i < len(positions); i++ {
		total += positions[i] - positions[i-1] - 1
	}
	return total
}

// ---------------------------------------------------------------------------
// Triple validation
// ---------------------------------------------------------------------------

// tripleRank returns the natural rank of a triple's cards: the first rank
// that is not wildcard-only. Twos are natural only in a triple of twos.
func tripleRank(cards []Card) Rank {
	hasTwo := false
	for _, c := range cards {
		switch c.Rank {
		case RankJoker:
		case RankTwo:
			hasTwo = true
		default:
			return c.Rank
		}
	}
	if hasTwo {
		return RankTwo
	}
	return RankJoker
}

func tripleValid(cards []Card) bool {
	rank := tripleRank(cards)
	if rank == RankJoker {
		return false
	}
	naturals, wilds := 0, 0
	for _, c := range cards {
		switch {
		case c.Rank == rank:
			naturals++
		case c.Rank == RankJoker || c.Rank == RankTwo:
			wilds++
		default:
			return false
		}
	}
	return naturals >= 2 && wilds <= 1
}
