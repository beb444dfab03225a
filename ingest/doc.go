// Package ingest builds model pages from upstream extractor output.
//
// Two sources are supported: fixture documents in JSON or YAML, and hOCR
// HTML as produced by OCR engines.
//
//	pages, err := ingest.LoadFile("page.yaml")
//	if err != nil {
//		return err
//	}
//
// A fixture lists pages with their items:
//
//	pages:
//	  - number: 1
//	    width: 612
//	    height: 792
//	    items:
//	      - {id: 1, kind: text, x: 72, y: 90, width: 120, height: 11, text: Results}
//	      - {id: 2, kind: graphic, class: horizontal-separator, x: 72, y: 110, width: 468, height: 1}
//
// Text is normalized to Unicode NFC. Item geometry is checked by the model
// constructors, so a fixture with a non-positive width or height fails with
// an error wrapping model.ErrInvalidGeometry.
package ingest
