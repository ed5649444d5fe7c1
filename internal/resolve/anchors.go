package resolve

import "splice/internal/decl"

// anchors tracks the first contiguous runs of simple typedefs and simple
// defines among the units seen so far in a pass. A last index is -1 while
// its run is still open.
type anchors struct {
	firstTypedef, lastTypedef int
	firstDefine, lastDefine   int
}

func newAnchors() anchors {
	return anchors{-1, -1, -1, -1}
}

// observe updates the runs with unit i.
func (a *anchors) observe(i int, u decl.Unit) {
	if u.IsSimpleTypedef() {
		if a.firstTypedef == -1 {
			a.firstTypedef = i
		}
	} else if a.firstTypedef != -1 && a.lastTypedef == -1 {
		a.lastTypedef = i - 1
	}
	if u.IsSimpleDefine() {
		if a.firstDefine == -1 {
			a.firstDefine = i
		}
	} else if a.firstDefine != -1 && a.lastDefine == -1 {
		a.lastDefine = i - 1
	}
}

// place decides where d goes while unit i is being scanned. separate means a
// blank unit must be inserted at the same index first, so it ends up right
// after d and opens a new run.
func (a anchors) place(i int, d decl.Unit, body []decl.Unit) (at int, placement string, separate bool) {
	switch {
	case d.IsSimpleTypedef():
		if a.firstTypedef == -1 {
			return 0, "new typedef run", true
		}
		if a.lastTypedef != -1 {
			return a.lastTypedef + 1, "typedef run", false
		}
	case d.IsSimpleDefine():
		if a.firstDefine == -1 {
			at = 0
			if a.lastTypedef != -1 {
				at = a.lastTypedef + 1
				if at < len(body) && body[at].IsBlank() {
					at++
				}
			}
			return at, "new define run", true
		}
		if a.lastDefine != -1 {
			return a.lastDefine + 1, "define run", false
		}
	}
	return i, "before use", false
}
