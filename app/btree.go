package main

// leafCells returns every table-leaf cell reachable from the page
// numbered rootPage, recursing through interior pages to any depth.
// A TableLeaf root yields its own cells; a TableInterior root visits
// every cell's left child plus the header's right-child pointer, each
// recursively, so a multi-level B-tree is fully expanded rather than
// stopping one level down.
func leafCells(pager *Pager, rootPage int) ([]TableLeafCell, error) {
	page, err := pager.PageAt(rootPage)
	if err != nil {
		return nil, err
	}

	switch page.Head.Kind {
	case TableLeaf:
		return page.TableLeafCells()

	case TableInterior:
		interior, err := page.TableInteriorCells()
		if err != nil {
			return nil, err
		}

		var all []TableLeafCell
		for _, cell := range interior {
			child, err := leafCells(pager, int(cell.LeftChildPage))
			if err != nil {
				return nil, err
			}
			all = append(all, child...)
		}

		right, err := leafCells(pager, int(page.Head.RightChildPage))
		if err != nil {
			return nil, err
		}
		return append(all, right...), nil

	default:
		return nil, nil
	}
}
