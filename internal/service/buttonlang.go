package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Rokoth/ROTGBot-sub000/internal/models"
)

// ButtonLine is one parsed line of the bulk-edit text protocol. Lines look
// like "number[:name[:parent|m][:m]]" for leaf edits, or "_:name[:parent][:m]"
// to declare a new group.
type ButtonLine struct {
	Number     int
	Group      bool
	Name       string
	Parent     *int
	Thread     *int
	IsModerate bool
}

const (
	moderateMark = "m"
	threadMark   = "t"
)

// ParseButtonLines splits the input on newlines and semicolons and parses each
// line. Malformed lines are silently dropped; an empty group title is a
// validation error; declaring the same button number twice aborts the whole
// batch.
func ParseButtonLines(input string) ([]ButtonLine, error) {
	raw := strings.FieldsFunc(input, func(r rune) bool {
		return r == '\n' || r == ';'
	})

	var lines []ButtonLine
	seen := make(map[int]struct{})
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parsed, ok, err := parseButtonLine(line)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if !parsed.Group {
			if _, dup := seen[parsed.Number]; dup {
				return nil, &DuplicateNumberError{Number: parsed.Number}
			}
			seen[parsed.Number] = struct{}{}
		}
		lines = append(lines, parsed)
	}
	return lines, nil
}

func parseButtonLine(line string) (ButtonLine, bool, error) {
	tokens := strings.Split(line, ":")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}

	head := tokens[0]
	if head == "_" {
		return parseGroupLine(tokens)
	}

	num, err := strconv.Atoi(head)
	if err != nil {
		return ButtonLine{}, false, nil
	}

	out := ButtonLine{Number: num}
	rest := tokens[1:]
	if len(rest) > 0 {
		out.Name = rest[0]
		rest = rest[1:]
	}
	for _, tok := range rest {
		switch {
		case tok == moderateMark:
			out.IsModerate = true
		case tok == "":
			// skip
		case strings.HasPrefix(tok, threadMark):
			thread, err := strconv.Atoi(tok[len(threadMark):])
			if err != nil {
				return ButtonLine{}, false, nil
			}
			out.Thread = &thread
		default:
			parent, err := strconv.Atoi(tok)
			if err != nil {
				// unrecognized trailing token, drop the line
				return ButtonLine{}, false, nil
			}
			out.Parent = &parent
		}
	}
	return out, true, nil
}

func parseGroupLine(tokens []string) (ButtonLine, bool, error) {
	if len(tokens) < 2 || tokens[1] == "" {
		return ButtonLine{}, false, fmt.Errorf("%w: empty group title", ErrValidation)
	}
	out := ButtonLine{Group: true, Name: tokens[1]}
	for _, tok := range tokens[2:] {
		switch {
		case tok == moderateMark:
			out.IsModerate = true
		case tok == "":
			// skip
		case strings.HasPrefix(tok, threadMark):
			thread, err := strconv.Atoi(tok[len(threadMark):])
			if err != nil {
				return ButtonLine{}, false, nil
			}
			out.Thread = &thread
		default:
			parent, err := strconv.Atoi(tok)
			if err != nil {
				return ButtonLine{}, false, nil
			}
			out.Parent = &parent
		}
	}
	return out, true, nil
}

// EncodeButtonLine renders a button back into the text protocol, the inverse
// of ParseButtonLines for leaf lines.
func EncodeButtonLine(b models.Button) string {
	var sb strings.Builder
	if b.IsParent {
		sb.WriteString("_")
	} else {
		sb.WriteString(strconv.Itoa(b.Number))
	}
	sb.WriteString(":")
	sb.WriteString(b.Name)
	if b.Parent != nil {
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(*b.Parent))
	}
	if b.IsModerate {
		sb.WriteString(":")
		sb.WriteString(moderateMark)
	}
	return sb.String()
}
