package timing

// Bucket is the display urgency of a task relative to the current date.
// It is derived on every read and never persisted on the task row.
type Bucket string

const (
	Overdue   Bucket = "overdue"
	Today     Bucket = "today"
	ThisWeek  Bucket = "this_week"
	ThisMonth Bucket = "this_month"
	Upcoming  Bucket = "upcoming"
)

func (b Bucket) String() string { return string(b) }

// Urgent reports whether the bucket belongs in the flat urgent list
// rather than a category group.
func (b Bucket) Urgent() bool { return b == Overdue || b == Today }

// rank orders buckets along the time axis, most urgent first.
func (b Bucket) rank() int {
	switch b {
	case Overdue:
		return 0
	case Today:
		return 1
	case ThisWeek:
		return 2
	case ThisMonth:
		return 3
	case Upcoming:
		return 4
	}
	return 5
}
