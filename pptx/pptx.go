// Copyright 2025 Voicetask Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrNotPowerPoint indicates the input is not a PowerPoint (.pptx) archive.
var ErrNotPowerPoint = errors.New("not a powerpoint document")

var slidePathRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// Slide holds the textual content of one slide.
type Slide struct {
	// Shapes contains the text of each text-bearing shape, in the order
	// the shapes appear in the slide markup. Paragraphs within a shape
	// are joined with newlines.
	Shapes []string
}

// Deck is a parsed slide deck. Only textual content is retained.
type Deck struct {
	slides []Slide
}

// OpenDeck parses a .pptx archive from r.
// Slide order follows the numeric slide index in the archive, which is the
// presentation order for decks produced by PowerPoint and compatible tools.
func OpenDeck(r io.ReaderAt, size int64) (*Deck, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotPowerPoint, err)
	}

	type numbered struct {
		num  int
		file *zip.File
	}

	var slideFiles []numbered
	sawPresentation := false
	for _, f := range zr.File {
		if f.Name == "ppt/presentation.xml" {
			sawPresentation = true
		}
		m := slidePathRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slideFiles = append(slideFiles, numbered{num: num, file: f})
	}

	if !sawPresentation {
		return nil, ErrNotPowerPoint
	}

	sort.Slice(slideFiles, func(i, j int) bool {
		return slideFiles[i].num < slideFiles[j].num
	})

	deck := &Deck{slides: make([]Slide, 0, len(slideFiles))}
	for _, sf := range slideFiles {
		rc, err := sf.file.Open()
		if err != nil {
			return nil, fmt.Errorf("open slide %d: %w", sf.num, err)
		}
		slide, err := parseSlide(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("parse slide %d: %w", sf.num, err)
		}
		deck.slides = append(deck.slides, slide)
	}

	return deck, nil
}

// OpenDeckBytes parses a .pptx archive held in memory.
func OpenDeckBytes(content []byte) (*Deck, error) {
	return OpenDeck(bytes.NewReader(content), int64(len(content)))
}

// SlideCount returns the number of slides in the deck.
func (d *Deck) SlideCount() int {
	return len(d.slides)
}

// Slides returns the slides in presentation order.
func (d *Deck) Slides() []Slide {
	return d.slides
}

// parseSlide walks one slide's markup and collects shape text.
// A shape is any element carrying a text body (txBody); its paragraphs
// are joined with newlines and its runs concatenated.
func parseSlide(r io.Reader) (Slide, error) {
	var slide Slide

	dec := xml.NewDecoder(r)

	var (
		inBody     bool
		paragraphs []string
		run        strings.Builder
		inText     bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Slide{}, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "txBody":
				inBody = true
				paragraphs = paragraphs[:0]
			case "p":
				if inBody {
					run.Reset()
				}
			case "t":
				if inBody {
					inText = true
				}
			}
		case xml.CharData:
			if inText {
				run.Write(el)
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				if inBody {
					paragraphs = append(paragraphs, run.String())
				}
			case "txBody":
				inBody = false
				slide.Shapes = append(slide.Shapes, strings.Join(paragraphs, "\n"))
			}
		}
	}

	return slide, nil
}
