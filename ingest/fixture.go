package ingest

import (
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/pageseg/model"
)

// Document is the fixture form of a set of pages
type Document struct {
	Pages []Page `json:"pages" yaml:"pages"`
}

// Page is the fixture form of a page
type Page struct {
	Number int     `json:"number" yaml:"number"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Items  []Item  `json:"items" yaml:"items"`
}

// Item is the fixture form of a content item. Kind is "text", "graphic" or
// "whitespace"; Class takes the names produced by model.GraphicClass.String.
type Item struct {
	ID         int      `json:"id" yaml:"id"`
	Kind       string   `json:"kind" yaml:"kind"`
	X          float64  `json:"x" yaml:"x"`
	Y          float64  `json:"y" yaml:"y"`
	Width      float64  `json:"width" yaml:"width"`
	Height     float64  `json:"height" yaml:"height"`
	Text       string   `json:"text,omitempty" yaml:"text,omitempty"`
	Style      int      `json:"style,omitempty" yaml:"style,omitempty"`
	Baseline   *float64 `json:"baseline,omitempty" yaml:"baseline,omitempty"`
	Class      string   `json:"class,omitempty" yaml:"class,omitempty"`
	Assignable *bool    `json:"assignable,omitempty" yaml:"assignable,omitempty"`
}

// ReadJSON decodes a JSON fixture document
func ReadJSON(r io.Reader) ([]*model.Page, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding JSON pages")
	}
	return doc.ToPages()
}

// ReadYAML decodes a YAML fixture document
func ReadYAML(r io.Reader) ([]*model.Page, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding YAML pages")
	}
	return doc.ToPages()
}

// LoadFile reads pages from a file, choosing the decoder by extension:
// .json, .yaml or .yml fixtures, and .hocr, .html or .htm hOCR output.
func LoadFile(path string) ([]*model.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	var pages []*model.Page
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		pages, err = ReadJSON(f)
	case ".yaml", ".yml":
		pages, err = ReadYAML(f)
	case ".hocr", ".html", ".htm":
		pages, err = ReadHOCR(f)
	default:
		return nil, errors.Errorf("%s: unsupported file type %q", path, ext)
	}
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return pages, nil
}

// ToPages converts the fixture into model pages. Page numbers default to
// the position in the document, counting from 1.
func (d Document) ToPages() ([]*model.Page, error) {
	pages := make([]*model.Page, 0, len(d.Pages))
	for i, p := range d.Pages {
		number := p.Number
		if number == 0 {
			number = i + 1
		}
		page, err := model.NewPage(number, p.Width, p.Height)
		if err != nil {
			return nil, err
		}
		for _, it := range p.Items {
			item, err := it.toModel()
			if err != nil {
				return nil, errors.WithMessagef(err, "page %d", number)
			}
			page.AddItem(item)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func (it Item) toModel() (*model.Item, error) {
	bbox := model.NewBBox(it.X, it.Y, it.Width, it.Height)
	switch strings.ToLower(it.Kind) {
	case "text", "":
		baseline := math.NaN()
		if it.Baseline != nil {
			baseline = *it.Baseline
		}
		return model.NewTextRun(it.ID, bbox, norm.NFC.String(it.Text), it.Style, baseline)
	case "graphic":
		class := model.ParseGraphicClass(it.Class)
		assignable := class == model.GraphicCharacterLike
		if it.Assignable != nil {
			assignable = *it.Assignable
		}
		return model.NewGraphic(it.ID, bbox, class, assignable)
	case "whitespace":
		return model.NewWhitespaceItem(it.ID, bbox)
	default:
		return nil, errors.Errorf("item %d: unknown kind %q", it.ID, it.Kind)
	}
}

// FromPages converts model pages into their fixture form
func FromPages(pages []*model.Page) Document {
	doc := Document{Pages: make([]Page, 0, len(pages))}
	for _, p := range pages {
		fp := Page{Number: p.Number, Width: p.Width, Height: p.Height}
		for _, it := range p.Items {
			fi := Item{
				ID:     it.ID,
				Kind:   it.Kind.String(),
				X:      it.BBox.X,
				Y:      it.BBox.Y,
				Width:  it.BBox.Width,
				Height: it.BBox.Height,
			}
			switch it.Kind {
			case model.KindText:
				baseline := it.Baseline
				fi.Text, fi.Style, fi.Baseline = it.Text, it.StyleID, &baseline
			case model.KindGraphic:
				assignable := it.Assignable
				fi.Class, fi.Assignable = it.Class.String(), &assignable
			}
			fp.Items = append(fp.Items, fi)
		}
		doc.Pages = append(doc.Pages, fp)
	}
	return doc
}
