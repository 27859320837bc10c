package layout

// Tile is the classic master/stack layout: the first NMaster clients
// fill a left column, the rest stack in a right column; each
// column's members share remaining height with the last absorbing
// any remainder. Grounded on src/layout/tile.c.
func Tile() *Layout {
	return &Layout{
		Name:      "tile",
		Symbol:    "[]=",
		Arrange:   tileArrange,
		FocusNext: wrappingFocusNext,
	}
}

func tileArrange(req *Request) {
	n := len(req.Clients)
	if n == 0 {
		return
	}

	x := req.AreaX + req.GapOuterH
	y := req.AreaY + req.GapOuterV
	w := req.AreaWidth - 2*req.GapOuterH
	h := req.AreaHeight - 2*req.GapOuterV

	nmaster := req.NMaster

	var mw int
	if n > nmaster {
		if nmaster > 0 {
			mw = int(float64(w) * req.MasterFactor)
		}
	} else {
		mw = w
	}

	my, ty := 0, 0
	for i := range req.Clients {
		c := &req.Clients[i]
		if i < nmaster {
			nh := (h-my)/(nmaster-i) - req.GapInnerV
			c.X = x
			c.Y = y + my
			c.Width = mw - req.GapInnerH
			c.Height = nh
			my += nh + req.GapInnerV
		} else {
			nw := w
			if n > nmaster {
				nw = w - mw
			}
			nh := (h-ty)/(n-i) - req.GapInnerV
			c.X = x + mw
			if nmaster > 0 {
				c.X += req.GapInnerH
			}
			c.Y = y + ty
			c.Width = nw - req.GapInnerH
			c.Height = nh
			ty += nh + req.GapInnerV
		}
	}
}
