package server

import (
	"sort"
	"strconv"
	"strings"
)

// Media types the schema endpoint can produce.
const (
	MediaTurtle     = "text/turtle"
	MediaJSONLD     = "application/ld+json"
	MediaHTML       = "text/html"
	MediaJSONSchema = "application/schema+json"
	MediaJSON       = "application/json"
)

// acceptedType is one entry of an Accept header with its quality factor.
type acceptedType struct {
	mediaType string
	q         float64
	pos       int
}

// rankedAccept parses an Accept header into media types ordered by quality
// factor, header order breaking ties. An empty header ranks nothing; the
// caller falls back to the default representation.
func rankedAccept(header string) []string {
	var entries []acceptedType
	for pos, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		fields := strings.Split(part, ";")
		mediaType := strings.ToLower(strings.TrimSpace(fields[0]))
		q := 1.0
		for _, f := range fields[1:] {
			f = strings.TrimSpace(f)
			if v, ok := strings.CutPrefix(f, "q="); ok {
				if parsed, err := strconv.ParseFloat(v, 64); err == nil {
					q = parsed
				}
			}
		}
		if q <= 0 {
			continue
		}
		entries = append(entries, acceptedType{mediaType: mediaType, q: q, pos: pos})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].q != entries[j].q {
			return entries[i].q > entries[j].q
		}
		return entries[i].pos < entries[j].pos
	})

	ranked := make([]string, len(entries))
	for i, e := range entries {
		ranked[i] = e.mediaType
	}
	return ranked
}

// negotiate picks the best supported representation for an Accept header.
// Wildcards match the default (Turtle); text/* matches Turtle. Returns ""
// when nothing acceptable is supported.
func negotiate(header string) string {
	ranked := rankedAccept(header)
	if len(ranked) == 0 {
		return MediaTurtle
	}
	for _, mt := range ranked {
		switch mt {
		case MediaTurtle, MediaJSONLD, MediaHTML, MediaJSONSchema:
			return mt
		case MediaJSON:
			return MediaJSONLD
		case "*/*":
			return MediaTurtle
		case "text/*":
			return MediaTurtle
		case "application/*":
			return MediaJSONLD
		}
	}
	return ""
}
