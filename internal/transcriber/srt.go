package transcriber

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nmtri2104/studypipe/internal/transcript"
)

var reTiming = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})[,.](\d{3})`)

// ParseSRT parses SRT subtitle content into ordered segments. Blocks
// without a timing line are skipped; a timing line that cannot be parsed
// is an error. An empty transcript yields no segments.
func ParseSRT(content string) ([]transcript.Segment, error) {
	var segments []transcript.Segment

	blocks := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n")
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")

		timingIdx := -1
		for i, line := range lines {
			if strings.Contains(line, "-->") {
				timingIdx = i
				break
			}
		}
		if timingIdx == -1 || timingIdx+1 >= len(lines) {
			continue
		}

		start, end, err := parseTiming(lines[timingIdx])
		if err != nil {
			return nil, err
		}

		text := strings.TrimSpace(strings.Join(lines[timingIdx+1:], " "))
		if text == "" {
			continue
		}

		duration := end - start
		if duration < 0 {
			duration = 0
		}

		segments = append(segments, transcript.Segment{
			Text:     text,
			Start:    start,
			Duration: duration,
		})
	}

	return segments, nil
}

func parseTiming(line string) (start, end float64, err error) {
	m := reTiming.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return 0, 0, fmt.Errorf("malformed timing line: %q", line)
	}

	return srtTime(m[1], m[2], m[3], m[4]), srtTime(m[5], m[6], m[7], m[8]), nil
}

func srtTime(h, m, s, ms string) float64 {
	hours, _ := strconv.Atoi(h)
	minutes, _ := strconv.Atoi(m)
	seconds, _ := strconv.Atoi(s)
	millis, _ := strconv.Atoi(ms)

	return float64(hours)*3600 + float64(minutes)*60 + float64(seconds) + float64(millis)/1000
}
