package model

import "encoding/json"

// CarouselRequest describes one carousel document to generate.
type CarouselRequest struct {
	Title  string  `json:"title"`
	Slides []Slide `json:"slides"`
	Style  string  `json:"style"` // professional / relaxed / corporate / creative / minimal
}

// Bilingual reports whether the carousel renders in bilingual mode.
// The mode is keyed on the first slide only; later slides are still
// rendered per their own content, but batched title translation runs
// only when this is true.
func (r CarouselRequest) Bilingual() bool {
	return len(r.Slides) > 0 && r.Slides[0].Content.IsBilingual()
}

// Slide is one carousel page worth of text.
type Slide struct {
	Title   string
	Content Content
}

// Content is a slide's resolved body: either a single monolingual text or an
// explicit English/Spanish pair. The form is fixed at ingestion; consumers
// never re-check raw field presence.
type Content struct {
	bilingual bool
	text      string
	en, es    string
}

// Monolingual builds single-language content.
func Monolingual(text string) Content {
	return Content{text: text}
}

// Bilingual builds paired English/Spanish content.
func Bilingual(en, es string) Content {
	return Content{bilingual: true, en: en, es: es}
}

// IsBilingual reports whether the content carries an English/Spanish pair.
func (c Content) IsBilingual() bool { return c.bilingual }

// EN returns the English side of a bilingual pair, or "" for monolingual content.
func (c Content) EN() string { return c.en }

// ES returns the Spanish side of a bilingual pair, or "" for monolingual content.
func (c Content) ES() string { return c.es }

// Text returns the monolingual text, or "" for bilingual content.
func (c Content) Text() string { return c.text }

// Primary returns the text used for prompt topics and title synthesis:
// the English side for bilingual content, the text itself otherwise.
func (c Content) Primary() string {
	if c.bilingual {
		return c.en
	}
	return c.text
}

// slideWire is the slide's JSON form as produced by upstream post tooling.
type slideWire struct {
	Title     string `json:"title,omitempty"`
	Content   string `json:"content,omitempty"`
	ContentEN string `json:"content_en,omitempty"`
	ContentES string `json:"content_es,omitempty"`
}

// UnmarshalJSON decodes the wire form and resolves the content variant:
// a slide with both content_en and content_es becomes Bilingual, anything
// else Monolingual on the first non-empty of content, content_en, content_es.
func (s *Slide) UnmarshalJSON(data []byte) error {
	var w slideWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*s = Slide{Title: w.Title, Content: resolveContent(w)}

	return nil
}

// MarshalJSON encodes the slide back into the wire form, so queued tasks
// survive a round trip unchanged.
func (s Slide) MarshalJSON() ([]byte, error) {
	w := slideWire{Title: s.Title}
	if s.Content.IsBilingual() {
		w.ContentEN = s.Content.EN()
		w.ContentES = s.Content.ES()
	} else {
		w.Content = s.Content.Text()
	}

	return json.Marshal(w)
}

func resolveContent(w slideWire) Content {
	if w.ContentEN != "" && w.ContentES != "" {
		return Bilingual(w.ContentEN, w.ContentES)
	}

	text := w.Content
	if text == "" {
		text = w.ContentEN
	}
	if text == "" {
		text = w.ContentES
	}

	return Monolingual(text)
}
