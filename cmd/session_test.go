package cmd

import (
	"strings"
	"testing"
)

func TestNewCommand(t *testing.T) {
	flags := emptyState(t)

	first := strings.TrimSpace(mustExecute(t, with(flags, "new", "Price", "research")...))
	second := strings.TrimSpace(mustExecute(t, with(flags, "new")...))
	if first == "" || second == "" || first == second {
		t.Fatalf("new should print distinct IDs, got %q and %q", first, second)
	}

	out := mustExecute(t, with(flags, "list")...)
	for _, want := range []string{"Price research", "New Chat", first, second} {
		if !strings.Contains(out, want) {
			t.Errorf("list should contain %q, got:\n%s", want, out)
		}
	}

	shown := mustExecute(t, with(flags, "show")...)
	if !strings.Contains(shown, "ID: "+second) {
		t.Errorf("newest session should be current, show:\n%s", shown)
	}
}

func TestUseCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "existing session", args: []string{"use", emptySessionID}, want: "Current session: " + emptySessionID},
		{name: "unknown session is accepted", args: []string{"use", "session_elsewhere"}, want: "Current session: session_elsewhere"},
		{name: "clear", args: []string{"use", "--none"}, want: "No current session"},
		{name: "missing ID", args: []string{"use"}, wantErr: true},
		{name: "ID with --none", args: []string{"use", "--none", emptySessionID}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, with(seedState(t), tt.args...)...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("useCmd.Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output should contain %q, got:\n%s", tt.want, out)
			}
		})
	}
}

func TestUseCommand_Persists(t *testing.T) {
	flags := seedState(t)
	mustExecute(t, with(flags, "use", emptySessionID)...)

	out := mustExecute(t, with(flags, "show")...)
	if !strings.Contains(out, "ID: "+emptySessionID) {
		t.Errorf("selected session should be shown, got:\n%s", out)
	}
}

func TestAddCommand(t *testing.T) {
	tests := []struct {
		name    string
		seeded  bool
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name:   "appends to current session",
			seeded: true,
			args:   []string{"add", "what", "about", "flipkart?"},
			want:   []string{"Added ", "to " + sampleSessionID},
		},
		{
			name:   "assistant role",
			seeded: true,
			args:   []string{"add", "--role", "Assistant", "Sure."},
			want:   []string{"to " + sampleSessionID},
		},
		{
			name:   "creates a session when none is current",
			seeded: false,
			args:   []string{"add", "hello"},
			want:   []string{"Added "},
		},
		{
			name:    "invalid role",
			seeded:  true,
			args:    []string{"add", "--role", "system", "hi"},
			wantErr: true,
		},
		{
			name:    "missing content",
			seeded:  true,
			args:    []string{"add"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := emptyState(t)
			if tt.seeded {
				flags = seedState(t)
			}
			out, err := executeCommand(t, with(flags, tt.args...)...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("addCmd.Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output should contain %q, got:\n%s", want, out)
				}
			}
		})
	}
}

func TestAddCommand_ShowsMessage(t *testing.T) {
	flags := seedState(t)
	mustExecute(t, with(flags, "add", "what", "about", "flipkart?")...)

	out := mustExecute(t, with(flags, "show")...)
	if !strings.Contains(out, "Messages: 3") || !strings.Contains(out, "what about flipkart?") {
		t.Errorf("added message missing from show:\n%s", out)
	}
}

func TestDeleteCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name: "current session moves to the newest remaining",
			args: []string{"delete", sampleSessionID},
			want: []string{"Deleted " + sampleSessionID, "Current session: " + emptySessionID},
		},
		{
			name: "other session",
			args: []string{"rm", emptySessionID},
			want: []string{"Deleted " + emptySessionID, "Current session: " + sampleSessionID},
		},
		{
			name: "unknown session",
			args: []string{"delete", "session_missing"},
			want: []string{"No session session_missing"},
		},
		{
			name:    "missing ID",
			args:    []string{"delete"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, with(seedState(t), tt.args...)...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("deleteCmd.Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output should contain %q, got:\n%s", want, out)
				}
			}
		})
	}
}

func TestPrefsCommand(t *testing.T) {
	flags := seedState(t)

	out := mustExecute(t, with(flags, "prefs")...)
	if !strings.Contains(out, "theme: dark") || !strings.Contains(out, "sidebar_collapsed: false") {
		t.Errorf("prefs output = %q", out)
	}

	mustExecute(t, with(flags, "prefs", "--sidebar-collapsed")...)
	out = mustExecute(t, with(flags, "prefs")...)
	if !strings.Contains(out, "sidebar_collapsed: true") {
		t.Errorf("preference should persist, got %q", out)
	}

	mustExecute(t, with(flags, "prefs", "--sidebar-collapsed=false")...)
	out = mustExecute(t, with(flags, "prefs")...)
	if !strings.Contains(out, "sidebar_collapsed: false") {
		t.Errorf("preference should reset, got %q", out)
	}
}

func TestClearCommand(t *testing.T) {
	flags := seedState(t)

	if _, err := executeCommand(t, with(flags, "clear")...); err == nil {
		t.Error("clear without --yes should fail")
	}

	out := mustExecute(t, with(flags, "clear", "--yes")...)
	if !strings.Contains(out, "Cleared 2 session(s)") {
		t.Errorf("clear output = %q", out)
	}

	out = mustExecute(t, with(flags, "list")...)
	if !strings.Contains(out, "No sessions found") {
		t.Errorf("list after clear = %q", out)
	}
}
