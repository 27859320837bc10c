package monitor

import (
	"github.com/swl-wm/swl/internal/client"
	"github.com/swl-wm/swl/internal/handle"
	"github.com/swl-wm/swl/internal/layout"
)

// ArrangeMonitor collects a Monitor's tiled (mapped, non-floating,
// non-fullscreen) Clients, reduces them to column heads, invokes the
// active layout's arrange function, then subdivides each head's
// result rectangle among its column's members. Grounded on the
// "Arrange" step of §4.6 (swl_monitor_arrange in monitor.c).
//
// This Client model has no multi-member column grouping (the source's
// column-chain concept isn't part of the data model §3 describes), so
// every tiled Client is its own one-member column; the member-splitting
// branch below is not reached while groupIntoColumns returns only
// one-member columns.
func (m *Manager) ArrangeMonitor(h handle.Handle) error {
	mon, ok := m.arena.Get(h)
	if !ok || m.clients == nil || m.layouts == nil {
		return nil
	}

	tiled := m.clients.MonitorClients(h, true)
	if len(tiled) == 0 {
		return nil
	}

	columns := m.groupIntoColumns(tiled)

	focusedIdx := -1
	if fh, _, ok := m.clients.Focused(); ok {
		for i, col := range columns {
			for _, ch := range col {
				if ch == fh {
					focusedIdx = i
					break
				}
			}
			if focusedIdx >= 0 {
				break
			}
		}
	}

	l, ok := m.layouts.Get(mon.LayoutName)
	if !ok {
		return nil
	}

	masterFactor := mon.MasterFactor
	isScroller := mon.LayoutName == "scroller"
	if isScroller {
		masterFactor = mon.ScrollerRatio
	}

	req := &layout.Request{
		AreaX:        mon.UsableX,
		AreaY:        mon.UsableY,
		AreaWidth:    mon.UsableWidth,
		AreaHeight:   mon.UsableHeight,
		GapInnerH:    mon.GapInnerH,
		GapInnerV:    mon.GapInnerV,
		GapOuterH:    mon.GapOuterH,
		GapOuterV:    mon.GapOuterV,
		MasterFactor: masterFactor,
		NMaster:      mon.NMaster,
		FocusedIndex: focusedIdx,
		Clients:      make([]layout.ClientGeom, len(columns)),
	}

	if isScroller {
		for i, col := range columns {
			if c, ok := m.clients.Get(col[0]); ok {
				req.Clients[i].ColumnRatio = c.ColumnRatio
			}
		}
	}

	l.Arrange(req)

	area := client.UsableArea{X: mon.UsableX, Y: mon.UsableY, Width: mon.UsableWidth, Height: mon.UsableHeight}

	for i, col := range columns {
		rect := req.Clients[i]
		if len(col) <= 1 {
			m.clients.Resize(col[0], rect.X, rect.Y, rect.Width, rect.Height, area)
			continue
		}

		members := len(col)
		totalGaps := (members - 1) * mon.GapInnerV
		availH := rect.Height - totalGaps
		memberH := availH / members
		remainder := availH - memberH*members

		y := rect.Y
		for idx, ch := range col {
			hgt := memberH
			if idx < remainder {
				hgt++
			}
			m.clients.Resize(ch, rect.X, y, rect.Width, hgt, area)
			y += hgt + mon.GapInnerV
		}
	}

	if fh, _, ok := m.clients.Focused(); ok {
		m.clients.Focus(fh)
	}

	return nil
}

// groupIntoColumns reduces a flat tiled-client list into column
// groups. Absent a column-chain concept on Client, each client is its
// own single-member column, in list order.
func (m *Manager) groupIntoColumns(tiled []handle.Handle) [][]handle.Handle {
	cols := make([][]handle.Handle, len(tiled))
	for i, h := range tiled {
		cols[i] = []handle.Handle{h}
	}
	return cols
}
