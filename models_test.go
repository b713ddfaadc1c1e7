package polly

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "RFC 3339 with offset",
			input: `"2026-01-15T10:30:00Z"`,
			want:  time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "RFC 3339 with fractional seconds",
			input: `"2026-01-15T10:30:00.123456Z"`,
			want:  time.Date(2026, 1, 15, 10, 30, 0, 123456000, time.UTC),
		},
		{
			name:  "no offset",
			input: `"2026-01-15T10:30:00"`,
			want:  time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "no offset with microseconds",
			input: `"2026-01-15T10:30:00.123456"`,
			want:  time.Date(2026, 1, 15, 10, 30, 0, 123456000, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.input), &ts); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if !ts.Time.Equal(tt.want) {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.input, ts.Time, tt.want)
			}
		})
	}
}

func TestTimestamp_UnmarshalJSON_Absent(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"null", `null`},
		{"empty string", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.input), &ts); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if !ts.IsZero() {
				t.Errorf("Unmarshal(%s) = %v, want zero time", tt.input, ts.Time)
			}
		})
	}
}

func TestTimestamp_UnmarshalJSON_Invalid(t *testing.T) {
	var ts Timestamp
	err := json.Unmarshal([]byte(`"yesterday"`), &ts)
	if err == nil {
		t.Fatal("Unmarshal(\"yesterday\") expected error, got nil")
	}
}

func TestPoll_DecodeMissingFields(t *testing.T) {
	// a sparse record decodes cleanly with zero values for absent fields
	input := `{"question":"Only a question?"}`

	var poll Poll
	if err := json.Unmarshal([]byte(input), &poll); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if poll.Question != "Only a question?" {
		t.Errorf("Question = %q, want %q", poll.Question, "Only a question?")
	}
	if poll.ID != 0 {
		t.Errorf("ID = %d, want 0", poll.ID)
	}
	if !poll.CreatedAt.IsZero() {
		t.Errorf("CreatedAt = %v, want zero", poll.CreatedAt.Time)
	}
	if poll.Options != nil {
		t.Errorf("Options = %v, want nil", poll.Options)
	}
}

func TestPoll_DecodeFull(t *testing.T) {
	input := `{
		"id": 3,
		"question": "Best language?",
		"created_at": "2026-01-15T10:30:00.500000",
		"owner_id": 7,
		"options": [
			{"id": 1, "text": "Go", "poll_id": 3},
			{"id": 2, "text": "Python", "poll_id": 3}
		]
	}`

	var poll Poll
	if err := json.Unmarshal([]byte(input), &poll); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if poll.ID != 3 || poll.OwnerID != 7 {
		t.Errorf("poll = %+v, want ID 3 owner 7", poll)
	}
	want := time.Date(2026, 1, 15, 10, 30, 0, 500000000, time.UTC)
	if !poll.CreatedAt.Time.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", poll.CreatedAt.Time, want)
	}
	if len(poll.Options) != 2 || poll.Options[1].Text != "Python" {
		t.Errorf("Options = %+v, want Go and Python", poll.Options)
	}
	if poll.Options[0].PollID != 3 {
		t.Errorf("Options[0].PollID = %d, want 3", poll.Options[0].PollID)
	}
}

func TestTimestamp_MarshalRoundTrip(t *testing.T) {
	ts := Timestamp{Time: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)}

	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var back Timestamp
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal(%s) error = %v", data, err)
	}
	if !back.Time.Equal(ts.Time) {
		t.Errorf("round trip = %v, want %v", back.Time, ts.Time)
	}
}
