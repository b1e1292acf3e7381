package ly

import (
	"math/big"
	"strconv"
	"strings"
)

// Parse reads LilyPond-style source into a document tree. The reader is
// deliberately lenient: unknown commands, articulations and stray characters
// are skipped, unterminated groups close at end of input. Whether the result
// contains playable music at all is decided later by FindMusic.
func Parse(text string) *Node {
	r := &reader{
		src:      []byte(text),
		lastLen:  big.NewRat(1, 4),
		lastMult: big.NewRat(1, 1),
	}
	doc := &Node{Kind: KindDocument}
	for {
		r.skipSpace()
		if r.eof() {
			return doc
		}
		switch b := r.peek(); {
		case b == '%':
			r.skipComment()
		case b == '{' || b == '<' || b == '\\':
			if n := r.parseMusic(false); n != nil {
				doc.Children = append(doc.Children, n)
			}
		case isWordByte(b):
			if n := r.parseAssignment(); n != nil {
				doc.Children = append(doc.Children, n)
			}
		default:
			r.pos++
		}
	}
}

type reader struct {
	src []byte
	pos int

	// lastLen/lastMult implement sticky durations: a durable without a
	// written length reuses the previous one, multiplier included.
	lastLen  *big.Rat
	lastMult *big.Rat
}

// parseAssignment handles a top-level `name = value` binding. Non-music
// values (header strings, numbers) are consumed and dropped; the assignment
// node then has no value.
func (r *reader) parseAssignment() *Node {
	name := r.word()
	r.skipSpace()
	if r.peek() != '=' {
		return nil
	}
	r.pos++
	r.skipSpace()
	n := &Node{Kind: KindAssignment, Name: name}
	switch b := r.peek(); {
	case b == '{' || b == '<' || b == '\\':
		if v := r.parseMusic(false); v != nil {
			n.Children = append(n.Children, v)
		}
	case b == '"':
		r.skipString()
	default:
		r.skipToken()
	}
	return n
}

// parseMusic reads one music expression: a braced list, a simultaneous
// list, a chord, a command form, or a single item.
func (r *reader) parseMusic(drums bool) *Node {
	r.skipSpace()
	switch {
	case r.eof():
		return nil
	case r.peekIs("<<"):
		return r.parseList("<<", ">>", drums)
	case r.peek() == '{':
		return r.parseList("{", "}", drums)
	case r.peek() == '<':
		return r.parseChord(drums)
	case r.peek() == '\\':
		return r.parseCommand(drums)
	default:
		return r.parseItem(drums)
	}
}

func (r *reader) parseList(open, close string, drums bool) *Node {
	r.pos += len(open)
	n := &Node{Kind: KindMusic, Simultaneous: open == "<<"}
	for {
		r.skipSpace()
		if r.eof() || r.have(close) {
			return n
		}
		if child := r.parseItem(drums); child != nil {
			n.Children = append(n.Children, child)
		}
	}
}

// parseItem reads one element inside a music list.
func (r *reader) parseItem(drums bool) *Node {
	switch b := r.peek(); {
	case b == '%':
		r.skipComment()
		return nil
	case r.peekIs("<<"):
		return r.parseList("<<", ">>", drums)
	case b == '{':
		return r.parseList("{", "}", drums)
	case b == '<':
		return r.parseChord(drums)
	case b == '\\':
		return r.parseCommand(drums)
	case b == '|' || b == '~' || b == '(' || b == ')' || b == '[' || b == ']':
		r.pos++
		return nil
	case b == '^' || b == '_' || b == '-':
		r.pos++
		r.skipAttached()
		return nil
	case b == '"':
		r.skipString()
		return nil
	case isWordByte(b):
		return r.parseWord(drums)
	default:
		r.pos++
		return nil
	}
}

func (r *reader) parseWord(drums bool) *Node {
	word := r.word()
	switch word {
	case "r", "R":
		return r.finishDurable(&Node{Kind: KindRest})
	case "s":
		return r.finishDurable(&Node{Kind: KindSkip})
	case "q":
		return r.finishDurable(&Node{Kind: KindChordRepeat})
	}
	if drums {
		return r.finishDurable(&Node{Kind: KindDrumNote, DrumName: word})
	}
	p, ok := parsePitchWord(word)
	if !ok {
		return nil
	}
	p.Octave = r.octaveMarks()
	return r.finishDurable(&Node{Kind: KindNote, Pitch: p, HasPitch: true})
}

func (r *reader) parseChord(drums bool) *Node {
	r.pos++
	n := &Node{Kind: KindChord}
	for {
		r.skipSpace()
		if r.eof() {
			break
		}
		if r.peek() == '>' {
			r.pos++
			break
		}
		if !isWordByte(r.peek()) {
			r.pos++
			continue
		}
		word := r.word()
		if drums {
			n.Children = append(n.Children, &Node{Kind: KindDrumNote, DrumName: word})
			continue
		}
		if p, ok := parsePitchWord(word); ok {
			p.Octave = r.octaveMarks()
			// members carry no duration of their own; the chord does
			n.Children = append(n.Children, &Node{Kind: KindNote, Pitch: p, HasPitch: true})
		}
	}
	return r.finishDurable(n)
}

func (r *reader) parseCommand(drums bool) *Node {
	r.pos++
	if r.eof() {
		return nil
	}
	if !isWordByte(r.peek()) {
		// voice separators, phrasing slurs and similar one-char commands
		r.pos++
		return nil
	}
	switch word := r.word(); word {
	case "relative":
		return r.parseRelative(drums)
	case "times", "scaleDurations":
		return r.parseScaler(drums, false)
	case "tuplet":
		return r.parseScaler(drums, true)
	case "repeat":
		return r.parseRepeat(drums)
	case "drummode", "drums":
		n := &Node{Kind: KindDrumMode}
		if inner := r.parseMusic(true); inner != nil {
			n.Children = append(n.Children, inner)
		}
		return n
	case "tempo":
		return r.parseTempo()
	case "new", "context":
		r.skipSpace()
		r.word()
		r.skipSpace()
		if r.peek() == '=' {
			r.pos++
			r.skipSpace()
			if r.peek() == '"' {
				r.skipString()
			} else {
				r.word()
			}
		}
		return r.parseMusic(drums)
	case "score":
		return r.parseMusic(drums)
	case "version", "clef", "bar":
		r.skipSpace()
		if r.peek() == '"' {
			r.skipString()
		} else {
			r.word()
		}
		return nil
	case "time":
		r.skipSpace()
		r.integer()
		if r.peek() == '/' {
			r.pos++
			r.integer()
		}
		return nil
	case "key":
		r.skipSpace()
		r.word()
		r.skipSpace()
		if r.peek() == '\\' {
			r.pos++
			r.word()
		}
		return nil
	case "midi", "layout", "header", "paper", "with":
		r.skipSpace()
		if r.peek() == '{' {
			r.skipBraces()
		}
		return nil
	default:
		return nil
	}
}

func (r *reader) parseRelative(drums bool) *Node {
	n := &Node{Kind: KindRelative}
	r.skipSpace()
	if isWordByte(r.peek()) {
		save := r.pos
		if p, ok := parsePitchWord(r.word()); ok {
			p.Octave = r.octaveMarks()
			n.Pitch = p
			n.HasPitch = true
		} else {
			r.pos = save
		}
	}
	if inner := r.parseMusic(drums); inner != nil {
		n.Children = append(n.Children, inner)
	}
	return n
}

func (r *reader) parseScaler(drums bool, invert bool) *Node {
	r.skipSpace()
	factor := big.NewRat(1, 1)
	if num, ok := r.integer(); ok {
		den := 1
		if r.peek() == '/' {
			r.pos++
			if d, ok := r.integer(); ok {
				den = d
			}
		}
		factor = big.NewRat(int64(num), int64(den))
		if invert {
			factor.Inv(factor)
		}
	}
	n := &Node{Kind: KindScaler, Factor: factor}
	if inner := r.parseMusic(drums); inner != nil {
		n.Children = append(n.Children, inner)
	}
	return n
}

func (r *reader) parseRepeat(drums bool) *Node {
	r.skipSpace()
	kind := r.word()
	r.skipSpace()
	count, ok := r.integer()
	if !ok || kind != "unfold" {
		// volta and percent repeats play through once here
		count = 1
	}
	n := &Node{Kind: KindRepeat, Count: count}
	if inner := r.parseMusic(drums); inner != nil {
		n.Children = append(n.Children, inner)
	}
	return n
}

// parseTempo reads `\tempo [text] [unit = bpm]`. Markings that carry no
// number (pure text) yield a node with TempoBPM 0, which extraction skips.
// Tempo ranges keep the lower bound.
func (r *reader) parseTempo() *Node {
	n := &Node{Kind: KindTempo}
	r.skipSpace()
	if r.peek() == '"' {
		r.skipString()
		r.skipSpace()
	}
	unitDen, ok := r.integer()
	if !ok {
		return n
	}
	unit := big.NewRat(1, int64(unitDen))
	dot := new(big.Rat).Set(unit)
	for r.peek() == '.' {
		r.pos++
		dot.Quo(dot, big.NewRat(2, 1))
		unit.Add(unit, dot)
	}
	r.skipSpace()
	if r.peek() != '=' {
		return n
	}
	r.pos++
	r.skipSpace()
	bpm, ok := r.integer()
	if !ok {
		return n
	}
	if r.peek() == '-' {
		r.pos++
		r.integer()
	}
	n.TempoBPM = bpm
	n.TempoUnit = unit
	return n
}

// finishDurable attaches a duration to a just-read durable and keeps the
// sticky-duration state current.
func (r *reader) finishDurable(n *Node) *Node {
	length, mult, written := r.parseDuration()
	if written {
		r.lastLen = length
		r.lastMult = mult
	}
	n.Duration = length
	n.DurMult = mult
	return n
}

// parseDuration reads an optional written length (digits plus dots) and any
// *n/m multiplier suffixes. Without a written length the previous duration
// applies, multiplier included.
func (r *reader) parseDuration() (length, mult *big.Rat, written bool) {
	length, mult = r.lastLen, r.lastMult
	if den, ok := r.integer(); ok {
		written = true
		length = big.NewRat(1, int64(den))
		dot := new(big.Rat).Set(length)
		for r.peek() == '.' {
			r.pos++
			dot.Quo(dot, big.NewRat(2, 1))
			length = new(big.Rat).Add(length, dot)
		}
		mult = big.NewRat(1, 1)
	}
	for r.peek() == '*' {
		r.pos++
		num, ok := r.integer()
		if !ok {
			break
		}
		den := 1
		if r.peek() == '/' {
			r.pos++
			if d, ok := r.integer(); ok {
				den = d
			}
		}
		mult = new(big.Rat).Mul(mult, big.NewRat(int64(num), int64(den)))
	}
	return length, mult, written
}

func (r *reader) octaveMarks() int {
	oct := 0
	for {
		switch r.peek() {
		case '\'':
			oct++
		case ',':
			oct--
		default:
			return oct
		}
		r.pos++
	}
}

var letterIndex = map[byte]int{'c': 0, 'd': 1, 'e': 2, 'f': 3, 'g': 4, 'a': 5, 'b': 6}

// parsePitchWord reads a Dutch note name: a letter, optional is/es groups
// for sharp and flat, ih/eh for quarter tones, and the contracted flats
// `as` and `es`. Words that are not note names report false.
func parsePitchWord(word string) (Pitch, bool) {
	if word == "" {
		return Pitch{}, false
	}
	letter, ok := letterIndex[word[0]]
	if !ok {
		return Pitch{}, false
	}
	p := Pitch{Letter: letter}
	rest := word[1:]
	alter := new(big.Rat)
	if (word[0] == 'a' || word[0] == 'e') && strings.HasPrefix(rest, "s") {
		alter.Sub(alter, big.NewRat(1, 2))
		rest = rest[1:]
	}
	for len(rest) >= 2 {
		switch rest[:2] {
		case "is":
			alter.Add(alter, big.NewRat(1, 2))
		case "es":
			alter.Sub(alter, big.NewRat(1, 2))
		case "ih":
			alter.Add(alter, big.NewRat(1, 4))
		case "eh":
			alter.Sub(alter, big.NewRat(1, 4))
		default:
			return Pitch{}, false
		}
		rest = rest[2:]
	}
	if rest != "" {
		return Pitch{}, false
	}
	if alter.Sign() != 0 {
		p.Alter = alter
	}
	return p, true
}

func (r *reader) word() string {
	start := r.pos
	for !r.eof() && isWordByte(r.src[r.pos]) {
		r.pos++
	}
	return string(r.src[start:r.pos])
}

func (r *reader) integer() (int, bool) {
	start := r.pos
	for !r.eof() && isDigit(r.src[r.pos]) {
		r.pos++
	}
	if r.pos == start {
		return 0, false
	}
	n, err := strconv.Atoi(string(r.src[start:r.pos]))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func (r *reader) skipToken() {
	switch {
	case r.eof():
	case isWordByte(r.peek()):
		r.word()
	case isDigit(r.peek()):
		r.integer()
	default:
		r.pos++
	}
}

// skipAttached drops the target of an articulation or markup mark: the
// string, command or word glued to ^, _ or -.
func (r *reader) skipAttached() {
	switch {
	case r.eof():
	case r.peek() == '"':
		r.skipString()
	case r.peek() == '\\':
		r.pos++
		r.word()
	case isWordByte(r.peek()):
		r.word()
	default:
		r.pos++
	}
}

func (r *reader) skipString() {
	r.pos++
	for !r.eof() {
		switch r.src[r.pos] {
		case '\\':
			r.pos += 2
		case '"':
			r.pos++
			return
		default:
			r.pos++
		}
	}
}

func (r *reader) skipComment() {
	if r.peekIs("%{") {
		for !r.eof() && !r.peekIs("%}") {
			r.pos++
		}
		r.pos += 2
		if r.pos > len(r.src) {
			r.pos = len(r.src)
		}
		return
	}
	for !r.eof() && r.src[r.pos] != '\n' {
		r.pos++
	}
}

func (r *reader) skipBraces() {
	depth := 0
	for !r.eof() {
		switch r.src[r.pos] {
		case '"':
			r.skipString()
			continue
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				r.pos++
				return
			}
		}
		r.pos++
	}
}

func (r *reader) skipSpace() {
	for !r.eof() {
		switch r.src[r.pos] {
		case ' ', '\t', '\n', '\r':
			r.pos++
		default:
			return
		}
	}
}

func (r *reader) have(s string) bool {
	if r.peekIs(s) {
		r.pos += len(s)
		return true
	}
	return false
}

func (r *reader) peekIs(s string) bool {
	return strings.HasPrefix(string(r.src[r.pos:]), s)
}

func (r *reader) peek() byte {
	if r.eof() {
		return 0
	}
	return r.src[r.pos]
}

func (r *reader) eof() bool {
	return r.pos >= len(r.src)
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
