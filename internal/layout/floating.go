package layout

// Floating preserves client-chosen positions: Arrange is a no-op.
// Grounded on src/layout/floating.c.
func Floating() *Layout {
	return &Layout{
		Name:      "floating",
		Symbol:    "><>",
		Arrange:   func(req *Request) {},
		FocusNext: wrappingFocusNext,
	}
}
