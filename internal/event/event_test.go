package event

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEvent_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  ID
		wantCat Membership
	}{
		{
			name:    "multi-category list",
			input:   `{"id": 10, "title": "Jazz Night", "categoryIds": [1, 2]}`,
			wantID:  "10",
			wantCat: Membership{"1", "2"},
		},
		{
			name:    "legacy single category as number",
			input:   `{"id": 3, "title": "Gallery", "category": 2}`,
			wantID:  "3",
			wantCat: Membership{"2"},
		},
		{
			name:    "legacy single category as string",
			input:   `{"id": "a1b2", "title": "Gallery", "category": "2"}`,
			wantID:  "a1b2",
			wantCat: Membership{"2"},
		},
		{
			name:    "empty legacy category",
			input:   `{"id": 4, "title": "No Category", "category": ""}`,
			wantID:  "4",
			wantCat: Membership{},
		},
		{
			name:    "duplicates removed",
			input:   `{"id": 5, "categoryIds": [1, "1", 2, 1]}`,
			wantID:  "5",
			wantCat: Membership{"1", "2"},
		},
		{
			name:    "list wins over legacy field",
			input:   `{"id": 6, "category": 9, "categoryIds": [1]}`,
			wantID:  "6",
			wantCat: Membership{"1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var evt Event
			if err := json.Unmarshal([]byte(tt.input), &evt); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if evt.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", evt.ID, tt.wantID)
			}
			if len(evt.CategoryIDs) != len(tt.wantCat) {
				t.Fatalf("CategoryIDs = %v, want %v", evt.CategoryIDs, tt.wantCat)
			}
			for i := range tt.wantCat {
				if evt.CategoryIDs[i] != tt.wantCat[i] {
					t.Errorf("CategoryIDs[%d] = %q, want %q", i, evt.CategoryIDs[i], tt.wantCat[i])
				}
			}
		})
	}
}

func TestEvent_UnmarshalJSON_Invalid(t *testing.T) {
	var evt Event
	if err := json.Unmarshal([]byte(`{"id": true}`), &evt); err == nil {
		t.Error("expected error for boolean id")
	}
}

func TestDraft_MarshalJSON(t *testing.T) {
	draft := &Draft{Title: "Jazz Night"}

	data, err := json.Marshal(draft)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	if !strings.Contains(string(data), `"categoryIds":[]`) {
		t.Errorf("expected empty categoryIds list, got %s", data)
	}
	if strings.Contains(string(data), `"id"`) {
		t.Errorf("draft must not carry an id, got %s", data)
	}
}

func TestID_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{id: "42", want: `42`},
		{id: "a1b2", want: `"a1b2"`},
		{id: "007x", want: `"007x"`},
		{id: "007", want: `"007"`},
		{id: "01", want: `"01"`},
		{id: "+5", want: `"+5"`},
		{id: "-3", want: `-3`},
		{id: "0", want: `0`},
		{id: "99999999999999999999", want: `"99999999999999999999"`},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			data, err := json.Marshal(tt.id)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal() = %s, want %s", data, tt.want)
			}

			var back ID
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if back != tt.id {
				t.Errorf("round trip = %q, want %q", back, tt.id)
			}
		})
	}
}

func TestID_DecodeForms(t *testing.T) {
	tests := []struct {
		name string
		json string
		want ID
	}{
		{"number", `5`, "5"},
		{"numeric string", `"5"`, "5"},
		{"padded string", `"007"`, "007"},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			if err := json.Unmarshal([]byte(tt.json), &id); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.json, err)
			}
			if id != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.json, id, tt.want)
			}
		})
	}
}

func TestDraft_MarshalOpaqueCategoryIDs(t *testing.T) {
	var evt Event
	if err := json.Unmarshal([]byte(`{"id":"a1","title":"Jazz Night","categoryIds":["01","+5",7]}`), &evt); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	data, err := json.Marshal(evt.Draft())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"categoryIds":["01","+5",7]`) {
		t.Errorf("categoryIds not preserved: %s", data)
	}

	var back Draft
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.CategoryIDs.Equal(evt.CategoryIDs) {
		t.Errorf("round trip = %v, want %v", back.CategoryIDs, evt.CategoryIDs)
	}
}

func TestParseID(t *testing.T) {
	if _, err := ParseID("   "); err == nil {
		t.Error("expected error for blank identifier")
	}

	id, err := ParseID(" 7 ")
	if err != nil {
		t.Fatalf("ParseID() error = %v", err)
	}
	if id != "7" {
		t.Errorf("ParseID() = %q, want %q", id, "7")
	}

	if _, err := ParseIDs([]string{"1", ""}); err == nil {
		t.Error("expected ParseIDs to fail on empty value")
	}
}

func TestMembership(t *testing.T) {
	m := NewMembership("1", "2", "", "2")

	if len(m) != 2 {
		t.Fatalf("NewMembership() = %v, want 2 entries", m)
	}
	if !m.Contains("2") || m.Contains("3") {
		t.Errorf("Contains() gave wrong answer for %v", m)
	}
	if !m.Intersects(Membership{"3", "1"}) {
		t.Error("expected {1,2} to intersect {3,1}")
	}
	if m.Intersects(Membership{"3"}) {
		t.Error("expected {1,2} not to intersect {3}")
	}
	if !m.Equal(Membership{"2", "1"}) {
		t.Error("expected set equality to ignore order")
	}
	if m.Equal(Membership{"1"}) {
		t.Error("expected {1,2} != {1}")
	}
}

func TestDraft_Matches(t *testing.T) {
	evt := &Event{
		ID:          "1",
		Title:       "Jazz Night",
		Description: "Live music",
		StartTime:   "2026-05-01T19:00",
		CategoryIDs: Membership{"1", "2"},
	}

	draft := evt.Draft()
	if !draft.Matches(evt) {
		t.Error("draft seeded from event should match it")
	}

	draft.CategoryIDs = Membership{"2", "1"}
	if !draft.Matches(evt) {
		t.Error("category order should not matter")
	}

	draft.Title = "Other"
	if draft.Matches(evt) {
		t.Error("changed title should not match")
	}
}

func TestEvent_Clone(t *testing.T) {
	evt := &Event{ID: "1", CategoryIDs: Membership{"1"}, Categories: []Category{{ID: "1", Name: "Music"}}}
	clone := evt.Clone()

	clone.CategoryIDs[0] = "9"
	clone.Categories[0].Name = "Changed"

	if evt.CategoryIDs[0] != "1" {
		t.Error("clone shares CategoryIDs with original")
	}
	if evt.Categories[0].Name != "Music" {
		t.Error("clone shares Categories with original")
	}
}
