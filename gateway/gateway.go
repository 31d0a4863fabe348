package gateway

import (
	"context"
	"encoding/json"
	"log/slog"

	st "tripmate/store/store"
)

const (
	placeInfoFallback  = "Could not fetch details for this place. Please try again."
	travelTipsFallback = "Could not fetch travel tips right now. Please try again."
	captionFallback    = "A beautiful moment from the trip!"
)

var captionChoicesFallback = []string{
	"A beautiful moment from the trip!",
	"Making memories in the mountains.",
	"Good times with the best people.",
}

// Info is a grounded text answer: descriptive text plus citation sources.
type Info struct {
	Text    string      `json:"text"`
	Sources []st.Source `json:"sources"`
}

// PlaceInfo fetches a one-paragraph description of the named place with
// web/map grounding citations.
func (c *Client) PlaceInfo(ctx context.Context, placeName string) Info {
	body, err := c.generate(ctx, generateRequest{
		Contents: []content{{Parts: []part{{Text: placeInfoPrompt(placeName)}}}},
		Tools:    []tool{{GoogleSearch: &struct{}{}}},
	})
	if err != nil {
		slog.Error("place info request failed", "place", placeName, "err", err)
		return Info{Text: placeInfoFallback, Sources: []st.Source{}}
	}

	n := normalize(body)
	if n.kind != resultSuccess {
		slog.Warn("place info response unusable", "place", placeName)
		return Info{Text: placeInfoFallback, Sources: []st.Source{}}
	}
	if n.sources == nil {
		n.sources = []st.Source{}
	}
	return Info{Text: n.text, Sources: n.sources}
}

// TravelTips fetches general trip advice with grounding citations.
func (c *Client) TravelTips(ctx context.Context) Info {
	body, err := c.generate(ctx, generateRequest{
		Contents: []content{{Parts: []part{{Text: travelTipsPrompt}}}},
		Tools:    []tool{{GoogleSearch: &struct{}{}}},
	})
	if err != nil {
		slog.Error("travel tips request failed", "err", err)
		return Info{Text: travelTipsFallback, Sources: []st.Source{}}
	}

	n := normalize(body)
	if n.kind != resultSuccess {
		slog.Warn("travel tips response unusable")
		return Info{Text: travelTipsFallback, Sources: []st.Source{}}
	}
	if n.sources == nil {
		n.sources = []st.Source{}
	}
	return Info{Text: n.text, Sources: n.sources}
}

// ExtractLocations pulls an ordered list of place names out of an
// itinerary narrative. Any failure, including a non-array reply, yields
// an empty list.
func (c *Client) ExtractLocations(ctx context.Context, narrative string) []string {
	body, err := c.generate(ctx, generateRequest{
		Contents: []content{{Parts: []part{{Text: extractLocationsPrompt(narrative)}}}},
		Config: &generateConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   json.RawMessage(stringArraySchema),
		},
	})
	if err != nil {
		slog.Error("location extraction request failed", "err", err)
		return []string{}
	}

	n := normalize(body)
	if n.kind != resultSuccess {
		slog.Warn("location extraction response unusable")
		return []string{}
	}
	locations := parseStringArray(n.text)
	if locations == nil {
		slog.Warn("location extraction reply was not a string array")
		return []string{}
	}
	return locations
}

// CaptionImage generates one cleaned caption for a base64-encoded image.
func (c *Client) CaptionImage(ctx context.Context, imageB64, mimeType string) string {
	body, err := c.generate(ctx, generateRequest{
		Contents: []content{{Parts: []part{
			{InlineData: &inlineData{MimeType: mimeType, Data: imageB64}},
			{Text: captionPrompt},
		}}},
	})
	if err != nil {
		slog.Error("caption request failed", "err", err)
		return captionFallback
	}

	n := normalize(body)
	if n.kind != resultSuccess {
		slog.Warn("caption response unusable")
		return captionFallback
	}
	caption := cleanCaption(n.text)
	if caption == "" {
		return captionFallback
	}
	return caption
}

// CaptionChoices generates three candidate captions for manual selection.
func (c *Client) CaptionChoices(ctx context.Context, imageB64, mimeType string) []string {
	body, err := c.generate(ctx, generateRequest{
		Contents: []content{{Parts: []part{
			{InlineData: &inlineData{MimeType: mimeType, Data: imageB64}},
			{Text: captionChoicesPrompt},
		}}},
		Config: &generateConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   json.RawMessage(stringArraySchema),
		},
	})
	if err != nil {
		slog.Error("caption choices request failed", "err", err)
		return captionChoicesFallback
	}

	n := normalize(body)
	if n.kind != resultSuccess {
		slog.Warn("caption choices response unusable")
		return captionChoicesFallback
	}
	choices := parseStringArray(n.text)
	if len(choices) == 0 {
		return captionChoicesFallback
	}
	for i, choice := range choices {
		choices[i] = cleanCaption(choice)
	}
	return choices
}
