package gmail

import (
	"encoding/base64"
	"mime"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	gmail "google.golang.org/api/gmail/v1"
)

// HeaderValue returns the first top-level header of m named header. Names are
// compared case-insensitively since senders disagree on "Message-ID" and
// "Message-Id".
func HeaderValue(m *gmail.Message, header string) string {
	if m == nil || m.Payload == nil {
		return ""
	}
	return partHeader(m.Payload, header)
}

func partHeader(part *gmail.MessagePart, header string) string {
	for _, h := range part.Headers {
		if strings.EqualFold(h.Name, header) {
			return h.Value
		}
	}
	return ""
}

// Headers returns the values of the requested top-level headers keyed by
// their lower-cased names. Missing headers map to "".
func Headers(m *gmail.Message, names ...string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[strings.ToLower(name)] = HeaderValue(m, name)
	}
	return out
}

// Body returns the readable text of a message payload. A text/plain part is
// preferred wherever it appears in the tree; otherwise the first text/html
// part is used; otherwise the payload's own body. Attachments are skipped.
func Body(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}

	var plain, html *gmail.MessagePart
	walkParts(payload, func(part *gmail.MessagePart) {
		if part.Filename != "" || part.Body == nil || part.Body.Data == "" {
			return
		}
		switch part.MimeType {
		case "text/plain":
			if plain == nil {
				plain = part
			}
		case "text/html":
			if html == nil {
				html = part
			}
		}
	})

	switch {
	case plain != nil:
		return decodePart(plain)
	case html != nil:
		return decodePart(html)
	case payload.Body != nil && payload.Body.Data != "":
		return decodePart(payload)
	}
	return ""
}

// walkParts visits part and all of its descendants depth-first.
func walkParts(part *gmail.MessagePart, fn func(*gmail.MessagePart)) {
	if part == nil {
		return
	}

	fn(part)

	for _, subpart := range part.Parts {
		walkParts(subpart, fn)
	}
}

// decodePart decodes the base64url body of part and converts it from the
// charset named in its Content-Type to UTF-8. Undecodable bytes are dropped.
func decodePart(part *gmail.MessagePart) string {
	data, err := base64.URLEncoding.DecodeString(part.Body.Data)
	if err != nil {
		// Try with standard or unpadded base64 if URLEncoding fails
		data, err = base64.RawURLEncoding.DecodeString(part.Body.Data)
		if err != nil {
			data, err = base64.StdEncoding.DecodeString(part.Body.Data)
			if err != nil {
				return ""
			}
		}
	}

	if cs := partCharset(part); cs != "" {
		if enc, err := ianaindex.IANA.Encoding(cs); err == nil && enc != nil {
			if decoded, err := enc.NewDecoder().Bytes(data); err == nil {
				data = decoded
			}
		}
	}

	return strings.ToValidUTF8(string(data), "")
}

func partCharset(part *gmail.MessagePart) string {
	ct := partHeader(part, "Content-Type")
	if ct == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	cs := strings.ToLower(params["charset"])
	if cs == "utf-8" || cs == "us-ascii" {
		return ""
	}
	return cs
}
