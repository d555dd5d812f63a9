package roster

import "strings"

// OfficerRef is an officer as the composer sees it. UnitCode is the unit the
// officer is rostered under, which may be empty when the directory has none.
type OfficerRef struct {
	PositionNumber string `json:"position_number"`
	Name           string `json:"name"`
	UnitCode       string `json:"unit_code,omitempty"`
}

type Source string

const (
	SourceAuto   Source = "auto"
	SourceManual Source = "manual"
)

type Entry struct {
	OfficerRef
	Source  Source `json:"source"`
	Removed bool   `json:"removed"`
}

// Selection is the user's working state for one schedule instance.
type Selection struct {
	SelectedUnits    []string
	AutoOfficers     []OfficerRef
	ManualOfficers   []OfficerRef
	RemovedPositions []string
}

// Roster is an ordered, position-keyed working set. Removal only flags an
// entry, so a removed officer can be restored with the data it had.
type Roster struct {
	order   []string
	entries map[string]*Entry
	removed map[string]bool
}

// Compose merges autos then manuals (manual wins on the same position) and
// applies the removed positions.
func Compose(sel Selection) *Roster {
	r := &Roster{entries: map[string]*Entry{}, removed: map[string]bool{}}
	for _, o := range sel.AutoOfficers {
		r.put(o, SourceAuto)
	}
	for _, o := range sel.ManualOfficers {
		r.put(o, SourceManual)
	}
	for _, p := range sel.RemovedPositions {
		r.Remove(p)
	}
	return r
}

func (r *Roster) put(o OfficerRef, src Source) {
	o.PositionNumber = strings.TrimSpace(o.PositionNumber)
	if o.PositionNumber == "" {
		return
	}
	if _, ok := r.entries[o.PositionNumber]; !ok {
		r.order = append(r.order, o.PositionNumber)
	}
	r.entries[o.PositionNumber] = &Entry{OfficerRef: o, Source: src}
}

// Add inserts or overwrites a manual entry. A previously removed position
// stays removed until restored.
func (r *Roster) Add(o OfficerRef) {
	r.put(o, SourceManual)
}

// Remove excludes a position from the included set. Unknown positions are
// remembered so that a later add of the same officer stays excluded.
func (r *Roster) Remove(position string) {
	position = strings.TrimSpace(position)
	if position == "" {
		return
	}
	r.removed[position] = true
}

func (r *Roster) Restore(position string) {
	delete(r.removed, strings.TrimSpace(position))
}

func (r *Roster) entry(p string) Entry {
	e := *r.entries[p]
	e.Removed = r.removed[p]
	return e
}

// Included lists officers that will be written, in insertion order.
func (r *Roster) Included() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, p := range r.order {
		if !r.removed[p] {
			out = append(out, r.entry(p))
		}
	}
	return out
}

// Removed lists known officers currently excluded, in insertion order.
func (r *Roster) Removed() []Entry {
	out := []Entry{}
	for _, p := range r.order {
		if r.removed[p] {
			out = append(out, r.entry(p))
		}
	}
	return out
}

func (r *Roster) IncludedPositions() []string {
	inc := r.Included()
	out := make([]string, len(inc))
	for i, e := range inc {
		out[i] = e.PositionNumber
	}
	return out
}

// HeadUnitCandidates returns the unit codes a head unit may be chosen from:
// the selected units when there are any, else the units of included officers.
func HeadUnitCandidates(selectedUnits []string, included []Entry) []string {
	seen := map[string]bool{}
	out := []string{}
	add := func(code string) {
		code = strings.TrimSpace(code)
		if code != "" && !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}
	for _, u := range selectedUnits {
		add(u)
	}
	if len(out) > 0 {
		return out
	}
	for _, e := range included {
		add(e.UnitCode)
	}
	return out
}

// CheckSubmission enforces the preconditions for handing a roster to the
// batch writer.
func CheckSubmission(r *Roster, selectedUnits []string, headUnitCode string) error {
	included := r.Included()
	if len(included) == 0 {
		return Validation("at least one officer must be included")
	}
	headUnitCode = strings.TrimSpace(headUnitCode)
	if headUnitCode == "" {
		return Validation("head_unit_code is required")
	}
	for _, c := range HeadUnitCandidates(selectedUnits, included) {
		if c == headUnitCode {
			return nil
		}
	}
	return Validation("head_unit_code %s is not among the selected units", headUnitCode)
}
