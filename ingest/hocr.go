package ingest

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pageseg/model"
)

// hocrProps holds the properties parsed from an hOCR title attribute
type hocrProps struct {
	bbox     model.BBox
	hasBBox  bool
	baseline []float64
	pageNo   int
	hasPage  bool
}

// parseTitle reads the semicolon separated properties of an hOCR title,
// e.g. "bbox 10 20 110 40; baseline 0.01 -3; ppageno 0".
func parseTitle(title string) hocrProps {
	var p hocrProps
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(prop)
		if len(fields) == 0 {
			continue
		}
		nums := make([]float64, 0, len(fields)-1)
		for _, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				break
			}
			nums = append(nums, v)
		}
		switch fields[0] {
		case "bbox":
			if len(nums) == 4 {
				p.bbox = model.NewBBoxFromEdges(nums[0], nums[1], nums[2], nums[3])
				p.hasBBox = true
			}
		case "baseline":
			if len(nums) == 2 {
				p.baseline = nums
			}
		case "ppageno":
			if len(nums) == 1 {
				p.pageNo = int(nums[0])
				p.hasPage = true
			}
		}
	}
	return p
}

// hocrReader accumulates pages while walking the hOCR tree
type hocrReader struct {
	pages  []*model.Page
	page   *model.Page
	nextID int
	// line is the bbox and baseline of the enclosing ocr_line, if any
	line *hocrProps
}

// ReadHOCR parses hOCR output into pages. Every ocr_page becomes a page
// sized by its bbox; ocrx_word elements become text runs, ocr_separator
// elements become rules oriented by their aspect, ocr_photo and ocr_image
// become images, and ocr_float and ocr_linedrawing become containers.
// Elements without a usable bbox are skipped.
func ReadHOCR(r io.Reader) ([]*model.Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing hOCR")
	}
	hr := &hocrReader{}
	if err := hr.walk(doc); err != nil {
		return nil, err
	}
	if len(hr.pages) == 0 {
		return nil, errors.New("hOCR document has no ocr_page")
	}
	return hr.pages, nil
}

func (hr *hocrReader) walk(n *html.Node) error {
	if n.Type != html.ElementNode {
		return hr.walkChildren(n)
	}

	classes := strings.Fields(attr(n, "class"))
	props := parseTitle(attr(n, "title"))

	switch {
	case hasClass(classes, "ocr_page"):
		if !props.hasBBox {
			return errors.New("ocr_page without bbox")
		}
		number := len(hr.pages) + 1
		if props.hasPage {
			number = props.pageNo + 1
		}
		page, err := model.NewPage(number, props.bbox.Right(), props.bbox.Bottom())
		if err != nil {
			return err
		}
		hr.pages = append(hr.pages, page)
		hr.page, hr.nextID = page, 0
		err = hr.walkChildren(n)
		hr.page = nil
		return err

	case hr.page == nil || !props.hasBBox:
		return hr.walkChildren(n)

	case hasClass(classes, "ocr_line", "ocr_header", "ocr_caption", "ocr_textfloat"):
		saved := hr.line
		hr.line = &props
		err := hr.walkChildren(n)
		hr.line = saved
		return err

	case hasClass(classes, "ocrx_word"):
		text := norm.NFC.String(strings.TrimSpace(textContent(n)))
		if text == "" {
			return nil
		}
		hr.add(func(id int) (*model.Item, error) {
			return model.NewTextRun(id, props.bbox, text, 0, hr.baseline(props.bbox))
		})
		return nil

	case hasClass(classes, "ocr_separator"):
		class := model.GraphicHorizontalSeparator
		if props.bbox.Height > props.bbox.Width {
			class = model.GraphicVerticalSeparator
		}
		hr.addGraphic(props.bbox, class)
		return nil

	case hasClass(classes, "ocr_photo", "ocr_image"):
		hr.addGraphic(props.bbox, model.GraphicImage)
		return nil

	case hasClass(classes, "ocr_float", "ocr_linedrawing"):
		hr.addGraphic(props.bbox, model.GraphicContainer)
		return hr.walkChildren(n)
	}
	return hr.walkChildren(n)
}

func (hr *hocrReader) walkChildren(n *html.Node) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := hr.walk(c); err != nil {
			return err
		}
	}
	return nil
}

// add appends the item built by mk; items with degenerate boxes are dropped.
func (hr *hocrReader) add(mk func(id int) (*model.Item, error)) {
	it, err := mk(hr.nextID + 1)
	if err != nil {
		return
	}
	hr.nextID++
	hr.page.AddItem(it)
}

func (hr *hocrReader) addGraphic(bbox model.BBox, class model.GraphicClass) {
	hr.add(func(id int) (*model.Item, error) {
		return model.NewGraphic(id, bbox, class, false)
	})
}

// baseline derives a word baseline from the enclosing line's baseline
// property, "slope offset" relative to the line's bottom left corner.
func (hr *hocrReader) baseline(word model.BBox) float64 {
	if hr.line == nil || len(hr.line.baseline) != 2 {
		return word.Bottom()
	}
	slope, offset := hr.line.baseline[0], hr.line.baseline[1]
	lb := hr.line.bbox
	return lb.Bottom() + offset + slope*(word.Left()-lb.Left())
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(classes []string, names ...string) bool {
	for _, c := range classes {
		for _, name := range names {
			if c == name {
				return true
			}
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}
