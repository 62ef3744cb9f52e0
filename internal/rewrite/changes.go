package rewrite

// Change is one entry of the migration audit trail: the description of
// a rule that matched, plus the occurrence count. Counted mirrors the
// rule's reporting mode; renderers omit the count for presence-checked
// records.
type Change struct {
	Description string
	Count       int
	Counted     bool
}

// changeLog accumulates change records in application order. Rules
// that never match leave no trace here.
type changeLog struct {
	changes []Change
}

func (l *changeLog) add(r Rule, count int) {
	l.changes = append(l.changes, Change{
		Description: r.Description,
		Count:       count,
		Counted:     r.Counted,
	})
}
