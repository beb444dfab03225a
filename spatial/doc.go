// Package spatial provides the spatial index used by page segmentation.
//
// An [Index] holds the content items of one region and answers the queries
// the whitespace search, block detection and region splitting rely on:
//
//	ix := spatial.New(spatial.DefaultCellSize)
//	ix.Add(items...)
//	row := ix.ContentAtRow(120)                    // left to right
//	col := ix.ContentAtColumn(300)                 // top to bottom
//	hits := ix.ItemsIntersecting(rect)             // positive-area overlap
//	left := ix.ItemsSurrounding(rect, 20, spatial.Left)
//
// Each axis is bucketed into fixed-width cells so lookups touch only the cells
// they fall in. Queries outside the indexed content return empty results.
//
// Every Add or Remove changes [Index.Version]; owners cache derived values
// against the version instead of being notified.
package spatial
