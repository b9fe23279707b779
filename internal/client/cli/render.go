package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/gophupload/internal/client/models"
	"golang.org/x/term"
)

// termSize is a test seam for term.GetSize.
var termSize = term.GetSize

const defaultWidth = 80

func termWidth() int {
	w, _, err := termSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// barWidth leaves room for the rest of a list line.
func barWidth(width int) int {
	n := width - 60
	if n < 10 {
		return 10
	}
	if n > 40 {
		return 40
	}
	return n
}

func bar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 3; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}

// formatUpload renders one record as a single line:
//
//	1b2c3d4e  photo.jpg  progress  [####......]  40%  2.0 MiB -> 512.0 KiB (-75%)
func formatUpload(u models.Upload, width int) string {
	parts := []string{
		fmt.Sprintf("%-8s", shortID(u.ID)),
		fmt.Sprintf("%-24s", truncate(u.Name, 24)),
		fmt.Sprintf("%-8s", u.Status),
	}

	switch u.Status {
	case models.StatusProgress:
		parts = append(parts, fmt.Sprintf("%s %3d%%", bar(u.Percent(), barWidth(width)), u.Percent()))
	case models.StatusError:
		parts = append(parts, u.Err)
	}

	size := humanSize(u.OriginalSize)
	if u.CompressedSize != nil {
		size = fmt.Sprintf("%s -> %s (-%d%%)", size, humanSize(*u.CompressedSize), u.Savings())
	}
	parts = append(parts, size)
	if u.Attempt > 1 {
		parts = append(parts, fmt.Sprintf("attempt %d", u.Attempt))
	}
	return strings.Join(parts, "  ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
