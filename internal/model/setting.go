package model

type UserSetting struct {
	Reminder      bool
	Calendar      bool
	Purchased     bool
	CalendarNames []string
}

func (s UserSetting) SyncsCalendar(name string) bool {
	for _, n := range s.CalendarNames {
		if n == name {
			return true
		}
	}
	return false
}
