package layout

// Monocle fills the entire gapped usable area with every client,
// stacked in z-order. Grounded on src/layout/monocle.c.
func Monocle() *Layout {
	return &Layout{
		Name:      "monocle",
		Symbol:    "[M]",
		Arrange:   monocleArrange,
		FocusNext: wrappingFocusNext,
	}
}

func monocleArrange(req *Request) {
	if len(req.Clients) == 0 {
		return
	}

	x := req.AreaX + req.GapOuterH
	y := req.AreaY + req.GapOuterV
	w := req.AreaWidth - 2*req.GapOuterH
	h := req.AreaHeight - 2*req.GapOuterV

	for i := range req.Clients {
		c := &req.Clients[i]
		c.X, c.Y, c.Width, c.Height = x, y, w, h
	}
}
