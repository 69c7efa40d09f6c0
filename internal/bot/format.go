package bot

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf16"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lueurxax/video-index-bot/internal/core/domain"
)

const (
	lineSeparator  = "\n"
	blockSeparator = "\n\n"
)

// newPrinter returns a printer that groups digits, e.g. 1,048,576.
func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

// formatBinding renders a binding with the endpoint password redacted.
func formatBinding(binding domain.UserBinding) string {
	return strings.Join([]string{
		"Endpoint: " + binding.Storage.RedactedEndpoint(),
		"Database: " + binding.Storage.Database,
		"Collection: " + binding.Storage.Collection,
		"Channel ID: " + orDefault(binding.ChannelID, notAvailable),
	}, lineSeparator)
}

// formatCatalog renders the records as message parts of at most limit
// characters. Parts break between records, never inside one that fits.
func formatCatalog(records []domain.VideoRecord, limit int) []string {
	p := newPrinter()

	blocks := make([]string, 0, len(records)+1)
	blocks = append(blocks, msgCatalogHeader)

	for _, r := range records {
		blocks = append(blocks, formatRecord(p, r))
	}

	return splitBlocks(blocks, blockSeparator, limit)
}

func formatRecord(p *message.Printer, r domain.VideoRecord) string {
	size := notAvailable
	if r.SizeBytes > 0 {
		size = p.Sprintf("%d bytes", r.SizeBytes)
	}

	return strings.Join([]string{
		"File Name: " + orDefault(r.DisplayName, notAvailable),
		"File ID: " + r.ExternalID,
		"Mime Type: " + orDefault(r.MimeType, notAvailable),
		"File Size: " + size,
		"Channel ID: " + orDefault(r.ChannelID, notAvailable),
	}, lineSeparator)
}

func formatProgress(u domain.ProgressUpdate) string {
	text := newPrinter().Sprintf("Progress: %d/%d (%.2f%%)", u.Processed, u.Total, u.PercentComplete)

	if u.Processed < u.Total && u.EstimatedRemaining > 0 {
		text += fmt.Sprintf(", about %s remaining", u.EstimatedRemaining.Round(time.Second))
	}

	return text
}

func formatCappedCompletion(reported, total int) string {
	return newPrinter().Sprintf(msgCompleteCappedFmt, reported, total)
}

// SplitMessage splits text into parts of at most limit UTF-16 code units,
// the unit Telegram counts in. It breaks at line boundaries when possible.
func SplitMessage(text string, limit int) []string {
	if text == "" {
		return nil
	}

	return splitBlocks(strings.Split(text, lineSeparator), lineSeparator, limit)
}

// splitBlocks packs blocks joined by sep into parts of at most limit units.
// A single block longer than limit is cut into limit-sized pieces.
func splitBlocks(blocks []string, sep string, limit int) []string {
	var (
		parts []string
		sb    strings.Builder
		size  int
	)

	sepLen := utf16Len(sep)

	flush := func() {
		if sb.Len() > 0 {
			parts = append(parts, sb.String())
		}

		sb.Reset()

		size = 0
	}

	for _, block := range blocks {
		for _, piece := range cutToLimit(block, limit) {
			n := utf16Len(piece)

			if sb.Len() > 0 && size+sepLen+n > limit {
				flush()
			}

			if sb.Len() > 0 {
				sb.WriteString(sep)

				size += sepLen
			}

			sb.WriteString(piece)

			size += n
		}
	}

	flush()

	return parts
}

// cutToLimit cuts s into pieces of at most limit UTF-16 units without
// splitting a rune.
func cutToLimit(s string, limit int) []string {
	if utf16Len(s) <= limit {
		return []string{s}
	}

	var (
		pieces []string
		start  int
		units  int
	)

	for i, r := range s {
		w := utf16.RuneLen(r)
		if w < 0 {
			w = 1
		}

		if units+w > limit {
			pieces = append(pieces, s[start:i])
			start = i
			units = 0
		}

		units += w
	}

	return append(pieces, s[start:])
}

func utf16Len(s string) int {
	n := 0

	for _, r := range s {
		w := utf16.RuneLen(r)
		if w < 0 {
			w = 1
		}

		n += w
	}

	return n
}
