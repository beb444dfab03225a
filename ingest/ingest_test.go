package ingest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/pageseg/model"
)

func TestLoadFile_YAML(t *testing.T) {
	pages, err := LoadFile(filepath.Join("testdata", "two_columns.yaml"))
	require.NoError(t, err)
	require.Len(t, pages, 2)

	p := pages[0]
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 400.0, p.Width)
	require.Len(t, p.Items, 6)

	first := p.Items[0]
	assert.Equal(t, model.KindText, first.Kind)
	assert.Equal(t, "Left column one", first.Text)
	assert.Equal(t, 28.0, first.Baseline)
	assert.Equal(t, 42.0, p.Items[1].Baseline, "baseline defaults to the box bottom")

	rule := p.Items[4]
	assert.Equal(t, model.GraphicVerticalSeparator, rule.Class)
	assert.False(t, rule.Assignable)
	assert.True(t, p.Items[5].Assignable, "character-like graphics join blocks")

	assert.Equal(t, 2, pages[1].Number)
	assert.Empty(t, pages[1].Items)
}

func TestReadJSON(t *testing.T) {
	input := `{"pages":[{"number":3,"width":100,"height":50,"items":[
		{"id":1,"kind":"text","x":1,"y":2,"width":30,"height":10,"text":"été","style":4},
		{"id":2,"kind":"graphic","class":"container","x":0,"y":0,"width":90,"height":40,"assignable":true},
		{"id":3,"kind":"whitespace","x":50,"y":0,"width":10,"height":40}]}]}`

	pages, err := ReadJSON(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, pages, 1)
	items := pages[0].Items
	require.Len(t, items, 3)

	assert.Equal(t, "été", items[0].Text, "text is NFC normalized")
	assert.Equal(t, 4, items[0].StyleID)
	assert.Equal(t, model.GraphicContainer, items[1].Class)
	assert.True(t, items[1].Assignable)
	assert.Equal(t, model.KindWhitespace, items[2].Kind)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name    string
		read    func() ([]*model.Page, error)
		invalid bool
	}{
		{"malformed json", func() ([]*model.Page, error) { return ReadJSON(strings.NewReader("{")) }, false},
		{"malformed yaml", func() ([]*model.Page, error) { return ReadYAML(strings.NewReader("pages: [")) }, false},
		{"unknown kind", func() ([]*model.Page, error) {
			return ReadYAML(strings.NewReader("pages: [{width: 10, height: 10, items: [{id: 1, kind: blob, width: 1, height: 1}]}]"))
		}, false},
		{"zero width item", func() ([]*model.Page, error) {
			return ReadYAML(strings.NewReader("pages: [{width: 10, height: 10, items: [{id: 1, kind: text, width: 0, height: 1}]}]"))
		}, true},
		{"zero size page", func() ([]*model.Page, error) {
			return ReadYAML(strings.NewReader("pages: [{width: 0, height: 10}]"))
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.read()
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, model.ErrInvalidGeometry))
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "page.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	_, err = LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestReadHOCR(t *testing.T) {
	pages, err := LoadFile(filepath.Join("testdata", "page.hocr"))
	require.NoError(t, err)
	require.Len(t, pages, 1)

	p := pages[0]
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1000.0, p.Width)
	assert.Equal(t, 800.0, p.Height)
	require.Len(t, p.Items, 7, "the zero-height word is skipped")

	cafe := p.Items[0]
	assert.Equal(t, "Café", cafe.Text)
	assert.Equal(t, model.NewBBox(50, 40, 70, 20), cafe.BBox)
	assert.Equal(t, 56.0, cafe.Baseline)
	assert.Equal(t, "menu", p.Items[1].Text)

	kinds := []model.GraphicClass{
		model.GraphicHorizontalSeparator,
		model.GraphicVerticalSeparator,
		model.GraphicImage,
		model.GraphicContainer,
	}
	for i, class := range kinds {
		it := p.Items[2+i]
		assert.True(t, it.IsGraphic())
		assert.Equal(t, class, it.Class, "item %d", it.ID)
	}

	boxed := p.Items[6]
	assert.Equal(t, "boxed", boxed.Text)
	assert.Equal(t, 340.0, boxed.Baseline)
	for i, it := range p.Items {
		assert.Equal(t, i+1, it.ID)
	}
	assert.NoError(t, p.Validate())
}

func TestReadHOCR_Errors(t *testing.T) {
	_, err := ReadHOCR(strings.NewReader("<html><body><p>no pages</p></body></html>"))
	assert.Error(t, err)

	_, err = ReadHOCR(strings.NewReader(`<div class="ocr_page" title="image x.png"></div>`))
	assert.Error(t, err)
}

func TestParseTitle(t *testing.T) {
	p := parseTitle("image a.png; bbox 1 2 11 22; baseline 0.015 -5; ppageno 3; x_wconf 90")
	assert.True(t, p.hasBBox)
	assert.Equal(t, model.NewBBox(1, 2, 10, 20), p.bbox)
	assert.Equal(t, []float64{0.015, -5}, p.baseline)
	assert.True(t, p.hasPage)
	assert.Equal(t, 3, p.pageNo)

	assert.False(t, parseTitle("bbox 1 2 x 4").hasBBox)
	assert.False(t, parseTitle("").hasBBox)
}

func TestFromPages(t *testing.T) {
	pages, err := LoadFile(filepath.Join("testdata", "two_columns.yaml"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, yaml.NewEncoder(&buf).Encode(FromPages(pages)))

	again, err := ReadYAML(&buf)
	require.NoError(t, err)
	require.Len(t, again, len(pages))
	for i := range pages {
		assert.Equal(t, pages[i], again[i])
	}
}
