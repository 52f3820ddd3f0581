package morph

const (
	alphabet   = "abcdefghijklmnopqrstuvwxyz"
	minWordLen = 3
)

// The generators below hand every candidate to accept in position-major,
// letter-minor order and stop at the first new best match of the target.
// cost already includes the price of the operation.

func (r *runner) insertOp(word string, cost int) bool {
	buf := make([]byte, len(word)+1)
	for i := 0; i <= len(word); i++ {
		copy(buf, word[:i])
		copy(buf[i+1:], word[i:])
		for j := 0; j < len(alphabet); j++ {
			buf[i] = alphabet[j]
			r.stats.Generated[OpInsert]++
			if r.accept(string(buf), cost, false) {
				return true
			}
		}
	}
	return false
}

func (r *runner) deleteOp(word string, cost int) bool {
	for i := 0; i < len(word); i++ {
		r.stats.Generated[OpDelete]++
		if r.accept(word[:i]+word[i+1:], cost, false) {
			return true
		}
	}
	return false
}

func (r *runner) changeOp(word string, cost int) bool {
	buf := []byte(word)
	for i := range buf {
		orig := buf[i]
		for j := 0; j < len(alphabet); j++ {
			buf[i] = alphabet[j]
			r.stats.Generated[OpChange]++
			if r.accept(string(buf), cost, false) {
				return true
			}
		}
		buf[i] = orig
	}
	return false
}

// anagramOp skips the dictionary gate: every candidate comes from it.
func (r *runner) anagramOp(word string, cost int) bool {
	for _, w := range r.lex.AnagramsOf(word) {
		r.stats.Generated[OpAnagram]++
		if r.accept(w, cost, true) {
			return true
		}
	}
	return false
}
