package scrape

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/models"
)

// Column layout of the LMS assignments table. The submission column is
// judged by anchor presence, not text: the LMS renders "Submitted" text
// even for rows without an actual download link.
const (
	colTitle      = 1
	colSubmission = 3
	colAction     = 6
	colDeadline   = 7

	minColumns = 8
)

const overduePhrase = "Deadline Exceeded"

type tableCell struct {
	text      strings.Builder
	hasAnchor bool
}

// ExtractRecords tokenizes the response body and yields one RawRecord
// per well-formed data row. It never fails: header rows, rows with too
// few cells, rows with an empty title and trailing malformed markup are
// skipped and extraction continues.
func ExtractRecords(body string) []models.RawRecord {
	tokenizer := html.NewTokenizer(strings.NewReader(body))

	var records []models.RawRecord
	var cells []*tableCell
	var current *tableCell
	inRow := false
	headerRow := false

	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			// io.EOF or broken markup; either way there is nothing
			// more to read.
			break
		}

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "tr":
				inRow = true
				headerRow = false
				cells = nil
				current = nil
			case "td":
				if inRow {
					current = &tableCell{}
				}
			case "th":
				if inRow {
					headerRow = true
				}
			case "a":
				if current != nil {
					current.hasAnchor = true
				}
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "td":
				if current != nil {
					cells = append(cells, current)
					current = nil
				}
			case "tr":
				if inRow && !headerRow {
					if rec, ok := rowRecord(cells); ok {
						records = append(records, rec)
					}
				}
				inRow = false
				cells = nil
				current = nil
			}
		case html.TextToken:
			if current != nil {
				current.text.Write(tokenizer.Text())
			}
		}
	}

	return records
}

func rowRecord(cells []*tableCell) (models.RawRecord, bool) {
	if len(cells) < minColumns {
		return models.RawRecord{}, false
	}

	title := cellText(cells[colTitle])
	if title == "" {
		return models.RawRecord{}, false
	}

	return models.RawRecord{
		Title:         title,
		Submitted:     cells[colSubmission].hasAnchor,
		OverdueMarker: strings.Contains(cellText(cells[colAction]), overduePhrase),
		DeadlineText:  cellText(cells[colDeadline]),
	}, true
}

// cellText collapses the whitespace that nested tags leave behind.
func cellText(c *tableCell) string {
	return strings.Join(strings.Fields(c.text.String()), " ")
}
