package internal

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestShowProgress(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		message string
		fn      func() error
		wantErr bool
	}{
		{
			name:    "successful function",
			message: "Testing",
			fn: func() error {
				return nil
			},
			wantErr: false,
		},
		{
			name:    "function with error",
			message: "Testing error",
			fn: func() error {
				return errors.New("test error")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ShowProgress(ctx, tt.message, tt.fn)
			if (err != nil) != tt.wantErr {
				t.Errorf("ShowProgress() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestShowProgress_LogsMessageVerbatim(t *testing.T) {
	if isTerminal(os.Stderr) {
		t.Skip("stderr is a terminal; the spinner path is used instead of the log")
	}
	original := logger
	defer func() { logger = original }()

	var buf bytes.Buffer
	ConfigureLogger(&buf, "json")
	SetLogLevel(LogLevelInfo)

	if err := ShowProgress(context.Background(), "Exporting 100%s done", func() error { return nil }); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Exporting 100%s done") {
		t.Errorf("message should be logged as-is, got: %s", buf.String())
	}
}

func TestShowProgressSimple(t *testing.T) {
	var buf bytes.Buffer
	err := showProgressSimple(context.Background(), &buf, "Scraping", func() error {
		time.Sleep(150 * time.Millisecond)
		return nil
	})
	if err != nil {
		t.Fatalf("showProgressSimple() error = %v", err)
	}
	if !strings.Contains(buf.String(), "✓") || !strings.Contains(buf.String(), "Scraping") {
		t.Errorf("output = %q, want success marker and message", buf.String())
	}
}

func TestShowProgressSimple_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	release := make(chan struct{})
	defer close(release)
	err := showProgressSimple(ctx, &buf, "Waiting", func() error {
		<-release
		return nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("showProgressSimple() error = %v, want deadline exceeded", err)
	}
}

func TestPrintSources(t *testing.T) {
	var buf bytes.Buffer
	PrintSources(&buf, []SourceRecord{
		{Title: "Target", URL: "https://example-target-site.com", Status: SourceSuccess},
		{Title: "Mirror", URL: "https://mirror.example.com", Status: SourceLoading},
	})

	want := "  [success] Target (https://example-target-site.com)\n" +
		"  [loading] Mirror (https://mirror.example.com)\n"
	if buf.String() != want {
		t.Errorf("PrintSources() = %q, want %q", buf.String(), want)
	}
}
