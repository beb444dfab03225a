// Package whitespace finds large empty rectangles between page content.
//
// The search is the branch-and-bound cover described by Breuel in "Two
// Geometric Algorithms for Layout Analysis". Candidates wait in a max-queue
// ordered by area weighted toward tall, narrow shapes. A candidate that
// overlaps too much content is split around the obstacle nearest its centre;
// a candidate that is empty enough is accepted when it touches the region
// edge or earlier whitespace and every caller filter agrees.
//
// # Basic Usage
//
//	ix := spatial.NewWithItems(0, page.Items)
//	finder := whitespace.NewFinder(whitespace.DefaultConfig(glyph),
//		whitespace.WithFilters(whitespace.RejectThinSides(3*glyph, 2)))
//	res := finder.Find(page.BBox(), ix)
//	for _, ws := range res.Rects {
//		fmt.Println(ws.BBox, ws.Quality)
//	}
//
// # Limits
//
// The search stops once MaxRects rectangles are accepted or the queue runs
// dry. MaxQueueSize and MaxIterations bound pathological pages; hitting one
// returns the rectangles found so far with Result.Partial set and logs a
// warning. Find never returns an error.
//
// Accepted rectangles become obstacles for candidates queued before them,
// so no two accepted rectangles overlap by more than OverlapTolerance.
package whitespace
