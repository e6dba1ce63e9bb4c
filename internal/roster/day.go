package roster

import "fmt"

// Day is a day of the roster week, Sunday first.
type Day int

const (
	Sunday Day = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var dayNames = [7]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

func (d Day) String() string {
	return dayNames[d]
}

// Next returns the following day, wrapping Saturday to Sunday.
func (d Day) Next() Day {
	return (d + 1) % 7
}

// Prev returns the previous day, wrapping Sunday to Saturday.
func (d Day) Prev() Day {
	return (d + 6) % 7
}

// offset returns the day k days away, wrapping in either direction.
func (d Day) offset(k int) Day {
	return Day(((int(d)+k)%7 + 7) % 7)
}

// ParseDay converts a three-letter day name ("SUN".."SAT") into a Day.
func ParseDay(name string) (Day, error) {
	for i, n := range dayNames {
		if n == name {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("unknown day name %q", name)
}

// allDays is handy for range loops that must visit the week in order.
var allDays = [7]Day{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
