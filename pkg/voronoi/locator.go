package voronoi

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// siteEntry adapts a site to the rtreego.Spatial interface.
type siteEntry struct {
	site *Site
	bbox rtreego.Rect
}

func (s *siteEntry) Bounds() rtreego.Rect { return s.bbox }

// Locator answers nearest-site queries against a finished diagram, which is
// the same as asking which cell a point belongs to. Consumers use it to map
// sample positions to cells without walking the whole site list.
type Locator struct {
	tree *rtreego.Rtree
}

// NewLocator indexes the diagram's sites.
func NewLocator(d *Diagram) *Locator {
	tree := rtreego.NewTree(2, 25, 50)
	for _, s := range d.Sites {
		bbox, err := rtreego.NewRect(
			rtreego.Point{s.Point.X(), s.Point.Y()},
			[]float64{1e-9, 1e-9},
		)
		if err != nil {
			continue
		}
		tree.Insert(&siteEntry{site: s, bbox: bbox})
	}
	return &Locator{tree: tree}
}

// Nearest returns the site whose cell contains p, or nil for an empty
// locator.
func (l *Locator) Nearest(p orb.Point) *Site {
	obj := l.tree.NearestNeighbor(rtreego.Point{p.X(), p.Y()})
	if obj == nil {
		return nil
	}
	return obj.(*siteEntry).site
}
