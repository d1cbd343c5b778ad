package ipv4

import (
	"strings"
)

// ParseBatch parses every whitespace-separated token of raw. The first bad
// token fails the whole batch.
func ParseBatch(raw string) ([]Network, error) {
	tokens := strings.Fields(raw)
	nets := make([]Network, 0, len(tokens))
	for _, tok := range tokens {
		n, err := Parse(tok)
		if err != nil {
			return nil, err
		}
		nets = append(nets, n)
	}
	return nets, nil
}

func AggregateText(raw string) ([]Network, error) {
	nets, err := ParseBatch(raw)
	if err != nil {
		return nil, err
	}
	return Collapse(nets), nil
}

// FormatCRLF renders nets one per line with CRLF endings, including after the
// last line. No networks renders as a lone CRLF.
func FormatCRLF(nets []Network) string {
	var b strings.Builder
	for _, n := range nets {
		b.WriteString(n.String())
		b.WriteString("\r\n")
	}
	if len(nets) == 0 {
		b.WriteString("\r\n")
	}
	return b.String()
}
