package transcriber

import (
	"testing"
)

func TestParseSRT(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:04,500
Hello and welcome to the course.

2
00:00:05,200 --> 00:00:09,000
Today we talk about chunking.
And why it matters.

3
00:01:02,500 --> 00:01:05,000
See you next time.
`

	segments, err := ParseSRT(content)
	if err != nil {
		t.Fatalf("ParseSRT() error = %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(segments))
	}

	if segments[0].Start != 1.0 {
		t.Errorf("segment 0 Start = %v, want 1.0", segments[0].Start)
	}
	if segments[0].Duration != 3.5 {
		t.Errorf("segment 0 Duration = %v, want 3.5", segments[0].Duration)
	}
	if segments[0].Text != "Hello and welcome to the course." {
		t.Errorf("segment 0 Text = %q", segments[0].Text)
	}

	// Multi-line cue text is joined with a space.
	if segments[1].Text != "Today we talk about chunking. And why it matters." {
		t.Errorf("segment 1 Text = %q", segments[1].Text)
	}

	if segments[2].Start != 62.5 {
		t.Errorf("segment 2 Start = %v, want 62.5", segments[2].Start)
	}
}

func TestParseSRTDotMillisAndCRLF(t *testing.T) {
	content := "1\r\n00:00:00.000 --> 00:00:02.000\r\nDot separated millis.\r\n"

	segments, err := ParseSRT(content)
	if err != nil {
		t.Fatalf("ParseSRT() error = %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	if segments[0].Duration != 2.0 {
		t.Errorf("Duration = %v, want 2.0", segments[0].Duration)
	}
}

func TestParseSRTEmpty(t *testing.T) {
	segments, err := ParseSRT("")
	if err != nil {
		t.Fatalf("ParseSRT() error = %v", err)
	}
	if len(segments) != 0 {
		t.Errorf("got %d segments, want 0", len(segments))
	}
}

func TestParseSRTMalformedTiming(t *testing.T) {
	content := "1\n00:00:xx,000 --> 00:00:02,000\nbroken\n"
	if _, err := ParseSRT(content); err == nil {
		t.Error("ParseSRT() should reject a malformed timing line")
	}
}

func TestParseSRTSkipsEmptyCues(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:02,000


2
00:00:03,000 --> 00:00:04,000
Real text.
`
	segments, err := ParseSRT(content)
	if err != nil {
		t.Fatalf("ParseSRT() error = %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	if segments[0].Text != "Real text." {
		t.Errorf("Text = %q", segments[0].Text)
	}
}

func TestBuildResultTotalDuration(t *testing.T) {
	content := `1
00:00:00,000 --> 00:00:10,000
First.

2
00:00:12,000 --> 00:00:30,500
Last.
`
	res, err := buildResult(content)
	if err != nil {
		t.Fatalf("buildResult() error = %v", err)
	}
	if res.TotalDuration != 30.5 {
		t.Errorf("TotalDuration = %v, want 30.5", res.TotalDuration)
	}
}
