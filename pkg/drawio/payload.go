package drawio

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"encoding/base64"
	"encoding/xml"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/sketchdoc/sketchdoc/pkg/errors"
)

// payloadText normalizes the raw inner bytes of a diagram element. A
// literal graph-model child comes through verbatim; character data is
// unescaped so payloads stored as escaped XML text parse the same way.
func payloadText(inner []byte) string {
	s := strings.TrimSpace(string(inner))
	if s == "" || strings.HasPrefix(s, "<") {
		return s
	}
	var wrap struct {
		Text string `xml:",chardata"`
	}
	if err := xml.Unmarshal([]byte("<payload>"+s+"</payload>"), &wrap); err == nil {
		return strings.TrimSpace(wrap.Text)
	}
	return s
}

// decodePayload recovers the graph model from a diagram payload. The
// payload is ambiguous by design: first it is parsed directly as
// graph-model XML, then as base64 wrapping a raw deflate stream, then
// as base64 wrapping a zlib stream. Exactly one interpretation must
// succeed or the page is unrecoverable.
func decodePayload(text, diagram string) (*graphModel, error) {
	var attempts []string
	if strings.HasPrefix(text, "<") {
		if gm, err := parseGraphModel([]byte(text)); err == nil {
			return gm, nil
		}
		attempts = append(attempts, "xml")
	}

	data, err := base64.StdEncoding.DecodeString(stripSpace(text))
	if err != nil {
		attempts = append(attempts, "base64")
		return nil, &errors.PayloadError{Diagram: diagram, Attempts: attempts}
	}

	fr := flate.NewReader(bytes.NewReader(data))
	raw, err := io.ReadAll(fr)
	fr.Close()
	if err == nil {
		if gm, err := parseGraphModel(raw); err == nil {
			return gm, nil
		}
	}
	attempts = append(attempts, "deflate")

	if zr, err := zlib.NewReader(bytes.NewReader(data)); err == nil {
		raw, err := io.ReadAll(zr)
		zr.Close()
		if err == nil {
			if gm, err := parseGraphModel(raw); err == nil {
				return gm, nil
			}
		}
	}
	attempts = append(attempts, "zlib")

	return nil, &errors.PayloadError{Diagram: diagram, Attempts: attempts}
}

// encodePayload compresses graph-model XML with raw deflate and wraps
// it in base64, the round-trip partner of decodePayload.
func encodePayload(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return []byte(base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

func parseGraphModel(data []byte) (*graphModel, error) {
	var gm graphModel
	if err := xml.Unmarshal(data, &gm); err != nil {
		return nil, err
	}
	return &gm, nil
}

// stripSpace removes all whitespace so line-wrapped base64 decodes.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// attrFloat parses a numeric attribute, treating absence as zero.
func attrFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// formatCoord renders a coordinate without trailing zeros.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
