package store

// ErrorSink receives slice errors, e.g. to print them.
type ErrorSink func(slice, message string)

// ReportErrors subscribes a listener that forwards each non-empty slice error
// to sink once and then clears it. The returned function unsubscribes.
func ReportErrors(s *Store, sink ErrorSink) func() {
	return s.Subscribe(func(_ State, _ Action) {
		// read the live state: a nested dispatch may already have cleared it
		st := s.State()
		if st.Auth.Error != "" {
			sink("auth", st.Auth.Error)
			s.Dispatch(ClearAuthError{})
		}
		if st.Tickets.Error != "" {
			sink("tickets", st.Tickets.Error)
			s.Dispatch(ClearTicketsError{})
		}
		if st.Employees.Error != "" {
			sink("employees", st.Employees.Error)
			s.Dispatch(ClearEmployeesError{})
		}
	})
}
