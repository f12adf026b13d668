package linker

import "sync"

// claims tracks which source owns each target path within one run, so two
// sources resolving to the same target never both attempt the link. The
// first claimant wins; a claim is dropped again only when its link attempt
// fails. All methods are goroutine-safe.
type claims struct {
	mu     sync.Mutex
	owners map[string]string // target path → source path that owns it
}

func newClaims() *claims {
	return &claims{owners: make(map[string]string)}
}

// claim registers source as the owner of target. It returns the current
// owner and false if another source already holds target. Re-claiming by
// the same source succeeds.
func (c *claims) claim(source, target string) (owner string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	owner, exists := c.owners[target]
	if exists && owner != source {
		return owner, false
	}
	c.owners[target] = source
	return source, true
}

// release drops source's claim on target, if it still holds it.
func (c *claims) release(source, target string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.owners[target] == source {
		delete(c.owners, target)
	}
}
