package layout

import "math"

// Scroller is the primary tiling model: a horizontally scrolling
// strip of columns, centered on the focused column. Grounded on
// src/layout/scroller.c.
func Scroller() *Layout {
	return &Layout{
		Name:      "scroller",
		Symbol:    "[S]",
		Arrange:   scrollerArrange,
		FocusNext: wrappingFocusNext,
	}
}

func scrollerArrange(req *Request) {
	n := len(req.Clients)
	if n == 0 {
		return
	}

	focused := req.FocusedIndex
	if focused < 0 || focused >= n {
		focused = 0
	}

	colW := make([]int, n)
	for i, c := range req.Clients {
		ratio := req.MasterFactor
		if c.ColumnRatio > 0 {
			ratio = c.ColumnRatio
		}
		colW[i] = int(math.Round(float64(req.AreaWidth) * ratio))
	}

	accX := make([]int, n)
	for i := 1; i < n; i++ {
		accX[i] = accX[i-1] + colW[i-1]
	}

	focusedCenter := accX[focused] + colW[focused]/2
	screenCenter := req.AreaX + req.AreaWidth/2
	offset := screenCenter - focusedCenter

	totalH := req.AreaHeight - 2*req.GapOuterV

	for i := range req.Clients {
		c := &req.Clients[i]
		c.X = offset + accX[i] + req.GapOuterH
		c.Y = req.AreaY + req.GapOuterV
		c.Width = colW[i] - req.GapInnerH
		c.Height = totalH
	}
}

func wrappingFocusNext(req *Request, current, direction int) int {
	n := len(req.Clients)
	if n == 0 {
		return -1
	}
	next := current + direction
	if next < 0 {
		next = n - 1
	} else if next >= n {
		next = 0
	}
	return next
}
